package content

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError describes one schema violation in an authored
// document.
type ValidationError struct {
	File    string `json:"file"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// ValidateDocument checks one YAML location document against the
// embedded CUE schema and returns any violations. A nil slice means
// the document is valid.
func ValidateDocument(filename string, data []byte) []ValidationError {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{File: "schema.cue", Message: err.Error()}}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []ValidationError{{File: filename, Message: err.Error()}}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return cueErrors(filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#LocationDoc")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueErrors(filename, err)
	}
	return nil
}

// cueErrors flattens a CUE error list into ValidationErrors with
// field paths when available.
func cueErrors(filename string, err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{File: filename, Message: e.Error()}
		if path := e.Path(); len(path) > 0 {
			ve.Field = strings.Join(path, ".")
		}
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{File: filename, Message: err.Error()})
	}
	return out
}
