// Package calendar defines the in-memory campaign calendar state: the
// Snapshot and its parts. Snapshots are caller-owned values; every
// operation in the engine that changes state returns a new snapshot
// built with Clone and leaves its argument untouched, so two callers
// holding independent snapshots never observe each other's writes.
package calendar

// Current is the calendar's position: the timestamp plus the derived
// day-of-week and season, recomputed only when the date changes.
type Current struct {
	Date      string `yaml:"date" json:"date"`
	Time      string `yaml:"time" json:"time"`
	DayOfWeek string `yaml:"day_of_week" json:"day_of_week"`
	Season    string `yaml:"season" json:"season"`
}

// Advancement holds the table's pacing settings.
type Advancement struct {
	Mode                 string `yaml:"mode" json:"mode"` // "manual" or "action"
	DefaultActionMinutes int    `yaml:"default_action_minutes" json:"default_action_minutes"`
}

// Moon is the canonical in-memory moon state. Legacy flat documents
// are adapted to this shape at the store boundary.
type Moon struct {
	Phase      string `yaml:"phase" json:"phase"`
	DayOfCycle int    `yaml:"day_of_cycle" json:"day_of_cycle"`
}

// Weather is the canonical in-memory weather state.
type Weather struct {
	Condition   string `yaml:"condition" json:"condition"`
	Temperature string `yaml:"temperature" json:"temperature"`
	Wind        string `yaml:"wind" json:"wind"`
}

// TrackedNPC is one entry in the snapshot's NPC tracking map.
type TrackedNPC struct {
	Location string `yaml:"location" json:"location"`
	Activity string `yaml:"activity" json:"activity"`
}

// HistoryEntry is one line of the campaign's advancement history kept
// inside the snapshot document. The durable audit trail lives in the
// sqlite history store; this list is the short human-readable tail.
type HistoryEntry struct {
	Date   string `yaml:"date" json:"date"`
	Time   string `yaml:"time" json:"time"`
	Reason string `yaml:"reason" json:"reason"`
}

// Metadata carries campaign counters.
type Metadata struct {
	Campaign     string         `yaml:"campaign,omitempty" json:"campaign,omitempty"`
	ElapsedHours float64        `yaml:"elapsed_hours" json:"elapsed_hours"`
	Counters     map[string]int `yaml:"counters,omitempty" json:"counters,omitempty"`
}

// Snapshot is the complete calendar state at one instant.
type Snapshot struct {
	Current     Current               `yaml:"current" json:"current"`
	Advancement Advancement           `yaml:"advancement" json:"advancement"`
	Moon        Moon                  `yaml:"moon" json:"moon"`
	Weather     Weather               `yaml:"weather" json:"weather"`
	Events      []Event               `yaml:"events" json:"events"`
	NPCs        map[string]TrackedNPC `yaml:"npc_schedules" json:"npc_schedules"`
	History     []HistoryEntry        `yaml:"history,omitempty" json:"history,omitempty"`
	Metadata    Metadata              `yaml:"metadata" json:"metadata"`
}

// Clone returns a deep copy of the snapshot. Mutators clone first and
// edit the copy; the cost is linear in event and NPC counts, which
// the design keeps in the low hundreds.
func (s Snapshot) Clone() Snapshot {
	out := s

	if s.Events != nil {
		out.Events = make([]Event, len(s.Events))
		for i, ev := range s.Events {
			out.Events[i] = ev.Clone()
		}
	}
	if s.NPCs != nil {
		out.NPCs = make(map[string]TrackedNPC, len(s.NPCs))
		for id, npc := range s.NPCs {
			out.NPCs[id] = npc
		}
	}
	if s.History != nil {
		out.History = make([]HistoryEntry, len(s.History))
		copy(out.History, s.History)
	}
	if s.Metadata.Counters != nil {
		out.Metadata.Counters = make(map[string]int, len(s.Metadata.Counters))
		for k, v := range s.Metadata.Counters {
			out.Metadata.Counters[k] = v
		}
	}
	return out
}

// FindEvent returns the index of the event with the given id, or -1.
func (s Snapshot) FindEvent(id string) int {
	for i, ev := range s.Events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}
