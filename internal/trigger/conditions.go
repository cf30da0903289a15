package trigger

import (
	"strconv"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// Context is the narrative state trigger conditions evaluate against.
// All fields are read-only to the engine.
type Context struct {
	// CurrentLocation is where the party is after the transition.
	CurrentLocation string

	// PreviousLocation is where the party was before it. The
	// enters_location condition is edge-triggered on the pair, so
	// standing still in a location does not retrigger it.
	PreviousLocation string

	// Flags holds global boolean campaign flags.
	Flags map[string]bool

	// NPCStatus holds per-NPC string flags, keyed npc id then flag.
	NPCStatus map[string]map[string]string
}

// Condition predicate names.
const (
	CondEntersLocation = "enters_location"
	CondNPCStatus      = "npc_status"
	CondGlobalFlag     = "global_flag"
	CondHoursElapsed   = "hours_elapsed"
)

// conditionMet evaluates one authored condition at the new timestamp.
// Unknown condition names and missing parameters evaluate to false,
// never an error: a malformed authored event must not block time
// advancement for the rest of the campaign.
func conditionMet(cond *calendar.Condition, newDate, newTime string, ctx Context) bool {
	if cond == nil {
		return false
	}
	switch cond.Name {
	case CondEntersLocation:
		loc := cond.Params["location"]
		if loc == "" {
			return false
		}
		return ctx.CurrentLocation == loc && ctx.PreviousLocation != loc

	case CondNPCStatus:
		flags, ok := ctx.NPCStatus[cond.Params["npc"]]
		if !ok {
			return false
		}
		return flags[cond.Params["flag"]] == cond.Params["value"]

	case CondGlobalFlag:
		return ctx.Flags[cond.Params["flag"]]

	case CondHoursElapsed:
		hours, err := strconv.Atoi(cond.Params["hours"])
		if err != nil || hours <= 0 {
			return false
		}
		since := cond.Params["since_date"]
		sinceTime := cond.Params["since_time"]
		if sinceTime == "" {
			sinceTime = "00:00"
		}
		elapsed, err := timeline.Elapsed(since, sinceTime, newDate, newTime)
		if err != nil {
			return false
		}
		return elapsed >= hours*60

	default:
		return false
	}
}
