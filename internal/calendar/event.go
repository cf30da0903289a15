package calendar

// Status is the event lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusTriggered Status = "triggered"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ValidStatuses is the closed event status enum.
var ValidStatuses = map[Status]bool{
	StatusPending:   true,
	StatusTriggered: true,
	StatusCompleted: true,
	StatusFailed:    true,
}

// Terminal reports whether the status ends the event lifecycle.
// Terminal events are skipped by trigger evaluation unless recurring.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Recurrence intervals supported by recurring events.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Condition is a named trigger predicate with its parameters, e.g.
// {Name: "enters_location", Params: {"location": "thornhaven"}}.
// Unknown names evaluate to false rather than failing the check, so
// one malformed authored event cannot block time advancement.
type Condition struct {
	Name   string            `yaml:"name" json:"name"`
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
}

// Event is one authored campaign event. An event fires on its
// date/time trigger, its condition, or either when both are set;
// an event with neither never auto-fires and is driven purely by
// explicit status updates.
type Event struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	TriggerDate string     `yaml:"trigger_date,omitempty" json:"trigger_date,omitempty"`
	TriggerTime string     `yaml:"trigger_time,omitempty" json:"trigger_time,omitempty"`
	Condition   *Condition `yaml:"condition,omitempty" json:"condition,omitempty"`
	Location    string     `yaml:"location,omitempty" json:"location,omitempty"`
	Status      Status     `yaml:"status" json:"status"`
	Priority    int        `yaml:"priority,omitempty" json:"priority,omitempty"`
	Recurrence  string     `yaml:"recurrence,omitempty" json:"recurrence,omitempty"`
}

// HasDateTrigger reports whether the event has a date/time trigger.
// An event may carry a date without a time; it then triggers against
// midnight of that date.
func (e Event) HasDateTrigger() bool {
	return e.TriggerDate != ""
}

// EffectiveTriggerTime returns the trigger time, defaulting to
// midnight for date-only triggers.
func (e Event) EffectiveTriggerTime() string {
	if e.TriggerTime == "" {
		return "00:00"
	}
	return e.TriggerTime
}

// Recurring reports whether the event has a recurrence interval.
func (e Event) Recurring() bool {
	return e.Recurrence != ""
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	out := e
	if e.Condition != nil {
		cond := Condition{Name: e.Condition.Name}
		if e.Condition.Params != nil {
			cond.Params = make(map[string]string, len(e.Condition.Params))
			for k, v := range e.Condition.Params {
				cond.Params[k] = v
			}
		}
		out.Condition = &cond
	}
	return out
}
