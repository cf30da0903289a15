// Package store persists campaign state outside the engine: the
// calendar snapshot as a YAML document, and the durable advancement
// history in SQLite. The engine itself only ever sees in-memory
// snapshots; every file path and encoding decision stops in this
// package.
package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// moonDoc adapts the two moon schema versions found in saved
// calendars. Legacy documents carry a bare phase string; current
// documents carry a nested mapping. Decoding accepts both; encoding
// always writes the nested form.
type moonDoc struct {
	calendar.Moon
}

func (m *moonDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		// Legacy flat schema: moon: "waxing gibbous"
		m.Moon = calendar.Moon{Phase: value.Value}
		return nil
	}
	return value.Decode(&m.Moon)
}

func (m moonDoc) MarshalYAML() (any, error) {
	return m.Moon, nil
}

// weatherDoc adapts the two weather schema versions the same way.
type weatherDoc struct {
	calendar.Weather
}

func (w *weatherDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		// Legacy flat schema: weather: "light rain"
		w.Weather = calendar.Weather{Condition: value.Value}
		return nil
	}
	return value.Decode(&w.Weather)
}

func (w weatherDoc) MarshalYAML() (any, error) {
	return w.Weather, nil
}

// document is the on-disk shape of a calendar snapshot.
type document struct {
	Current     calendar.Current               `yaml:"current"`
	Advancement calendar.Advancement           `yaml:"advancement"`
	Moon        moonDoc                        `yaml:"moon"`
	Weather     weatherDoc                     `yaml:"weather"`
	Events      []calendar.Event               `yaml:"events"`
	NPCs        map[string]calendar.TrackedNPC `yaml:"npc_schedules"`
	History     []calendar.HistoryEntry        `yaml:"history,omitempty"`
	Metadata    calendar.Metadata              `yaml:"metadata"`
}

// DecodeSnapshot parses a calendar document. Derived fields missing
// from the document (day of week, season) are recomputed from the
// current date so older saves hydrate cleanly.
func DecodeSnapshot(data []byte) (calendar.Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return calendar.Snapshot{}, fmt.Errorf("decode calendar document: %w", err)
	}

	snap := calendar.Snapshot{
		Current:     doc.Current,
		Advancement: doc.Advancement,
		Moon:        doc.Moon.Moon,
		Weather:     doc.Weather.Weather,
		Events:      doc.Events,
		NPCs:        doc.NPCs,
		History:     doc.History,
		Metadata:    doc.Metadata,
	}

	if snap.Current.Date != "" {
		if _, err := timeline.ParseDate(snap.Current.Date); err != nil {
			return calendar.Snapshot{}, err
		}
		if snap.Current.DayOfWeek == "" {
			day, err := timeline.DayOfWeek(snap.Current.Date)
			if err != nil {
				return calendar.Snapshot{}, err
			}
			snap.Current.DayOfWeek = day
		}
		if snap.Current.Season == "" {
			season, err := timeline.Season(snap.Current.Date)
			if err != nil {
				return calendar.Snapshot{}, err
			}
			snap.Current.Season = season
		}
	}
	if snap.Current.Time != "" {
		if _, err := timeline.ParseClock(snap.Current.Time); err != nil {
			return calendar.Snapshot{}, err
		}
	}
	return snap, nil
}

// EncodeSnapshot serializes a snapshot in the current document
// schema.
func EncodeSnapshot(snap calendar.Snapshot) ([]byte, error) {
	doc := document{
		Current:     snap.Current,
		Advancement: snap.Advancement,
		Moon:        moonDoc{snap.Moon},
		Weather:     weatherDoc{snap.Weather},
		Events:      snap.Events,
		NPCs:        snap.NPCs,
		History:     snap.History,
		Metadata:    snap.Metadata,
	}
	return yaml.Marshal(doc)
}

// LoadSnapshot reads a calendar document from disk.
func LoadSnapshot(path string) (calendar.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calendar.Snapshot{}, fmt.Errorf("read calendar: %w", err)
	}
	return DecodeSnapshot(data)
}

// SaveSnapshot writes a calendar document atomically: to a temp file
// in the same directory, then renamed over the target.
func SaveSnapshot(path string, snap calendar.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace calendar: %w", err)
	}
	return nil
}
