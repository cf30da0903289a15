package harness

import (
	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/schedule"
)

// TraceEvent is one entry in a scenario's execution trace. Advances,
// event firings, and NPC movements share one type so the trace
// serializes as a flat ordered list.
type TraceEvent struct {
	Type     string `json:"type"` // "advance", "fired", or "npc_move"
	Seq      int64  `json:"seq"`
	Token    string `json:"token,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Minutes  int    `json:"minutes,omitempty"`
	EventID  string `json:"event_id,omitempty"`
	Priority int    `json:"priority,omitempty"`
	NPCID    string `json:"npc_id,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Activity string `json:"activity,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace lists advances, firings, and NPC movements in execution
	// order. Golden comparisons run against this.
	Trace []TraceEvent `json:"trace"`

	// Errors lists assertion failures. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the snapshot after the last step, for state assertions.
	Final calendar.Snapshot `json:"-"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []TraceEvent{}}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addAdvance(token, date, clock string, minutes int, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    "advance",
		Seq:     seq,
		Token:   token,
		Date:    date,
		Time:    clock,
		Minutes: minutes,
	})
}

func (r *Result) addFired(eventID string, priority int, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:     "fired",
		Seq:      seq,
		EventID:  eventID,
		Priority: priority,
	})
}

func (r *Result) addNPCMove(ch schedule.Change, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:     "npc_move",
		Seq:      seq,
		NPCID:    ch.NPCID,
		From:     ch.OldLocation,
		To:       ch.NewLocation,
		Activity: ch.Activity,
	})
}
