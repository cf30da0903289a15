package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/torchbearer/chronicle/internal/schedule"
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// LocationDoc is one authored per-location document.
type LocationDoc struct {
	Location string   `yaml:"location"`
	NPCs     []NPCDoc `yaml:"npcs"`
}

// NPCDoc is one NPC's authored routine table. The NPC is keyed by the
// normalized slug of its display name.
type NPCDoc struct {
	Name         string              `yaml:"name"`
	HomeLocation string              `yaml:"home_location"`
	Routine      []schedule.Entry    `yaml:"routine"`
	Overrides    []schedule.Override `yaml:"overrides,omitempty"`
}

// DirLoader loads NPC schedules from a directory of YAML location
// documents. The directory is scanned once, on first use; afterwards
// every lookup hits the in-memory index. It implements
// schedule.Loader.
type DirLoader struct {
	dir    string
	index  map[string]*schedule.Schedule
	loaded bool
}

// NewDirLoader creates a loader over a content directory.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{dir: dir}
}

// LoadSchedule returns the schedule for the given NPC slug.
func (l *DirLoader) LoadSchedule(npcID string) (*schedule.Schedule, error) {
	if err := l.ensureLoaded(); err != nil {
		return nil, err
	}
	s, ok := l.index[npcID]
	if !ok {
		return nil, simerr.New(simerr.CodeNotFound, "no routine table for npc %q", npcID)
	}
	return s, nil
}

// NPCIDs returns every known NPC slug, sorted.
func (l *DirLoader) NPCIDs() ([]string, error) {
	if err := l.ensureLoaded(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(l.index))
	for id := range l.index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (l *DirLoader) ensureLoaded() error {
	if l.loaded {
		return nil
	}
	index, err := LoadDir(l.dir)
	if err != nil {
		return err
	}
	l.index = index
	l.loaded = true
	return nil
}

// LoadDir parses and validates every *.yaml/*.yml document under dir
// and returns schedules indexed by NPC slug. Documents that fail
// schema validation fail the whole load: authored content is fixed at
// the table, not silently skipped.
func LoadDir(dir string) (map[string]*schedule.Schedule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	index := make(map[string]*schedule.Schedule)
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
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := ParseLocationDoc(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		for _, npc := range doc.NPCs {
			id := Slug(npc.Name)
			if _, dup := index[id]; dup {
				return nil, simerr.New(simerr.CodeDuplicateEvent,
					"npc %q defined twice (slug %q)", npc.Name, id)
			}
			index[id] = &schedule.Schedule{
				NPCID:        id,
				HomeLocation: npc.HomeLocation,
				Routine:      npc.Routine,
				Overrides:    npc.Overrides,
			}
		}
	}
	return index, nil
}

// ParseLocationDoc validates and decodes one location document.
func ParseLocationDoc(filename string, data []byte) (*LocationDoc, error) {
	if errs := ValidateDocument(filename, data); len(errs) > 0 {
		return nil, simerr.New(simerr.CodeInvalidFormat, "%s", errs[0].Error())
	}
	var doc LocationDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, simerr.New(simerr.CodeInvalidFormat, "%s: %v", filename, err)
	}
	for _, npc := range doc.NPCs {
		if err := checkWindows(filename, npc); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

// checkWindows enforces timeStart < timeEnd on every routine entry,
// base and override alike. The CUE schema checks shape; ordering is a
// semantic rule checked here.
func checkWindows(filename string, npc NPCDoc) error {
	check := func(entries []schedule.Entry) error {
		for _, e := range entries {
			start, err := timeline.ParseClock(e.Start)
			if err != nil {
				return err
			}
			end, err := timeline.ParseClock(e.End)
			if err != nil {
				return err
			}
			if start.MinuteOfDay() >= end.MinuteOfDay() {
				return simerr.New(simerr.CodeInvalidFormat,
					"%s: npc %q: window %s-%s must start before it ends",
					filename, npc.Name, e.Start, e.End)
			}
		}
		return nil
	}
	if err := check(npc.Routine); err != nil {
		return err
	}
	for _, ov := range npc.Overrides {
		if err := check(ov.Routine); err != nil {
			return err
		}
	}
	return nil
}
