// Package schedule resolves where an NPC is at any campaign instant
// from a daily routine plus conditional overrides.
//
// Schedules are loaded once and held in an explicit Cache owned by
// the caller. Resolution is pure: first override whose condition is
// true in the game state replaces the base routine wholesale, then
// the effective routine is scanned for the window containing the
// query time.
package schedule

// Entry is one scheduled window in an NPC's day. The window is
// half-open: Start <= t < End.
type Entry struct {
	Start    string `yaml:"start" json:"start"` // HH:MM
	End      string `yaml:"end" json:"end"`     // HH:MM, strictly after Start
	Location string `yaml:"location" json:"location"`
	Activity string `yaml:"activity" json:"activity"`
	Detail   string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// Override substitutes a full replacement routine while its named
// condition is true in the flat game state. Overrides never merge
// with the base routine.
type Override struct {
	Condition string  `yaml:"condition" json:"condition"`
	Routine   []Entry `yaml:"routine" json:"routine"`
}

// Schedule is one NPC's authored daily routine.
type Schedule struct {
	NPCID        string     `yaml:"npc_id" json:"npc_id"`
	HomeLocation string     `yaml:"home_location" json:"home_location"`
	Routine      []Entry    `yaml:"routine" json:"routine"`
	Overrides    []Override `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Resolved is the outcome of a location query.
type Resolved struct {
	NPCID    string `json:"npc_id"`
	Location string `json:"location"`
	Activity string `json:"activity"`
	Detail   string `json:"detail,omitempty"`
}

// GameState is the flat boolean mapping override conditions read.
type GameState map[string]bool

// effectiveRoutine applies overrides in authored order and returns
// the first whose condition holds. Unmatched conditions fall back to
// the base routine rather than failing.
func (s *Schedule) effectiveRoutine(state GameState) []Entry {
	for _, ov := range s.Overrides {
		if state[ov.Condition] {
			return ov.Routine
		}
	}
	return s.Routine
}
