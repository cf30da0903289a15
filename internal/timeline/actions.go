package timeline

// Action kinds with authored pacing durations. The set is closed on
// purpose: these feed narrative pacing, not strict rules, so unknown
// kinds fall back to the configured default instead of failing.
const (
	ActionTravel    = "travel"
	ActionSearch    = "search"
	ActionDialogue  = "dialogue"
	ActionShortRest = "short_rest"
	ActionLongRest  = "long_rest"
	ActionCombat    = "combat"
)

// DefaultActionMinutes is the baseline pacing unit. Action durations
// scale linearly with it, so a table that runs at a faster or slower
// pace adjusts one knob.
const DefaultActionMinutes = 30

// baseActionMinutes holds durations at the DefaultActionMinutes pace.
var baseActionMinutes = map[string]int{
	ActionTravel:    60,
	ActionSearch:    30,
	ActionDialogue:  10,
	ActionShortRest: 60,
	ActionLongRest:  480,
	ActionCombat:    30,
}

// ActionContext carries pacing configuration for duration lookup.
// The zero value means the standard pace.
type ActionContext struct {
	// DefaultMinutes replaces DefaultActionMinutes as the pacing unit
	// when positive. All known actions scale proportionally; unknown
	// actions resolve to exactly this value.
	DefaultMinutes int
}

// ActionDuration maps an action kind to its duration in minutes,
// scaled by the context's pacing unit. Unknown kinds return the
// pacing default rather than an error.
func ActionDuration(action string, ctx ActionContext) int {
	unit := ctx.DefaultMinutes
	if unit <= 0 {
		unit = DefaultActionMinutes
	}
	base, ok := baseActionMinutes[action]
	if !ok {
		return unit
	}
	return base * unit / DefaultActionMinutes
}
