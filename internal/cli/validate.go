package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/content"
)

// ValidationResult holds validation results for the JSON output.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Files  int                       `json:"files"`
	Errors []content.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <content-dir>",
		Short: "Validate authored content documents",
		Long: `Validate every YAML document in a content directory against the
routine-table schema. Checks shape and clock formats; semantic rules
(window ordering, duplicate NPCs) are checked by a full load.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(rootOpts *RootOptions, dir string, cmd *cobra.Command) error {
	f := formatter(rootOpts, cmd)

	entries, err := os.ReadDir(dir)
	if err != nil {
		f.Error("NOT_FOUND", "content directory not found: "+dir, nil)
		return WrapExitError(ExitCommandError, "read content dir", err)
	}

	result := ValidationResult{Valid: true}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			f.Error("READ_FAILED", err.Error(), nil)
			return WrapExitError(ExitCommandError, "read document", err)
		}
		result.Files++
		if errs := content.ValidateDocument(entry.Name(), data); len(errs) > 0 {
			result.Valid = false
			result.Errors = append(result.Errors, errs...)
		}
	}
	f.VerboseLog("validated %d document(s) in %s", result.Files, dir)

	// Shape is fine; a full load still catches semantic violations.
	if result.Valid {
		if _, err := content.LoadDir(dir); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, content.ValidationError{
				File: dir, Message: err.Error(),
			})
		}
	}

	if rootOpts.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		f.Textf("ok: %d document(s)", result.Files)
	} else {
		for _, ve := range result.Errors {
			f.Textf("%s", ve.Error())
		}
	}

	if !result.Valid {
		return WrapExitError(ExitFailure, "validation failed", nil)
	}
	return nil
}
