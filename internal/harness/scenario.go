package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a campaign simulation test: an initial calendar
// document, a sequence of time advances with narrative context, and
// assertions on the resulting trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the
	// golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Calendar is the path to the initial calendar document, relative
	// to the scenario file.
	Calendar string `yaml:"calendar"`

	// Content optionally points at an authored content directory for
	// NPC schedule resolution. Without it NPC positions stay fixed.
	Content string `yaml:"content,omitempty"`

	// Steps is the sequence of time advances to execute.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and final calendar state.
	Assertions []Assertion `yaml:"assertions"`

	// TokenPrefix overrides the advance token prefix, which defaults
	// to "advance". Tokens number from 0001 either way.
	TokenPrefix string `yaml:"token_prefix,omitempty"`
}

// Step is one time advance with its narrative context.
type Step struct {
	// Advance is the duration phrase, e.g. "2 hours" or "1 day".
	Advance string `yaml:"advance"`

	// Reason annotates the advance in the history log.
	Reason string `yaml:"reason,omitempty"`

	// Location is the party's location after the advance.
	Location string `yaml:"location,omitempty"`

	// PrevLocation is the party's location before it.
	PrevLocation string `yaml:"prev_location,omitempty"`

	// Flags lists campaign flags considered true during this step.
	Flags []string `yaml:"flags,omitempty"`
}

// Assertion validates one aspect of the run.
type Assertion struct {
	// Type selects the check:
	//   - "clock_at": final date and time match
	//   - "event_fired": the event fired at least once
	//   - "fired_count": the event fired exactly Count times
	//   - "event_status": the event's final status matches
	//   - "npc_at": the tracked NPC's final location matches
	Type string `yaml:"type"`

	Date   string `yaml:"date,omitempty"`
	Time   string `yaml:"time,omitempty"`
	Event  string `yaml:"event,omitempty"`
	Status string `yaml:"status,omitempty"`
	NPC    string `yaml:"npc,omitempty"`

	// Location is the expected location (npc_at).
	Location string `yaml:"location,omitempty"`

	// Count is the expected firing count (fired_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertClockAt     = "clock_at"
	AssertEventFired  = "event_fired"
	AssertFiredCount  = "fired_count"
	AssertEventStatus = "event_status"
	AssertNPCAt       = "npc_at"
)

// LoadScenario reads and parses a scenario YAML file. Calendar and
// content paths resolve relative to the scenario file. Unknown fields
// are rejected so typos fail loudly rather than silently skipping an
// assertion.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	base := filepath.Dir(path)
	if scenario.Calendar != "" && !filepath.IsAbs(scenario.Calendar) {
		scenario.Calendar = filepath.Join(base, scenario.Calendar)
	}
	if scenario.Content != "" && !filepath.IsAbs(scenario.Content) {
		scenario.Content = filepath.Join(base, scenario.Content)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Calendar == "" {
		return fmt.Errorf("calendar is required")
	}
	if _, err := os.Stat(s.Calendar); os.IsNotExist(err) {
		return fmt.Errorf("calendar document not found: %s", s.Calendar)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Advance == "" {
			return fmt.Errorf("steps[%d]: advance is required", i)
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertClockAt:
		if a.Date == "" || a.Time == "" {
			return fmt.Errorf("assertions[%d]: date and time are required for clock_at", index)
		}
	case AssertEventFired:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for event_fired", index)
		}
	case AssertFiredCount:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for fired_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for fired_count", index)
		}
	case AssertEventStatus:
		if a.Event == "" || a.Status == "" {
			return fmt.Errorf("assertions[%d]: event and status are required for event_status", index)
		}
	case AssertNPCAt:
		if a.NPC == "" || a.Location == "" {
			return fmt.Errorf("assertions[%d]: npc and location are required for npc_at", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
