package cli

import (
	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/store"
	"github.com/torchbearer/chronicle/internal/trigger"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect and mutate campaign events",
	}
	cmd.AddCommand(newEventsListCommand(rootOpts))
	cmd.AddCommand(newEventsAddCommand(rootOpts))
	cmd.AddCommand(newEventsStatusCommand(rootOpts))
	cmd.AddCommand(newEventsRemoveCommand(rootOpts))
	cmd.AddCommand(newEventsRecurCommand(rootOpts))
	return cmd
}

func newEventsListCommand(rootOpts *RootOptions) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List events",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			snap, err := store.LoadSnapshot(rootOpts.Calendar)
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load calendar", err)
			}

			var events []calendar.Event
			for _, ev := range snap.Events {
				if statusFilter != "" && string(ev.Status) != statusFilter {
					continue
				}
				events = append(events, ev)
			}
			if rootOpts.Format == "json" {
				return f.Success(events)
			}
			for _, ev := range events {
				line := ev.ID + " [" + string(ev.Status) + "] " + ev.Name
				if ev.HasDateTrigger() {
					line += " @ " + ev.TriggerDate + " " + ev.EffectiveTriggerTime()
				}
				if ev.Recurring() {
					line += " (" + ev.Recurrence + ")"
				}
				f.Textf("%s", line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&statusFilter, "status", "", "filter by status")
	return cmd
}

func newEventsAddCommand(rootOpts *RootOptions) *cobra.Command {
	ev := calendar.Event{}
	var condName string
	var condParams map[string]string

	cmd := &cobra.Command{
		Use:           "add <id> <name>",
		Short:         "Add an event",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			snap, err := store.LoadSnapshot(rootOpts.Calendar)
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load calendar", err)
			}

			ev.ID, ev.Name = args[0], args[1]
			if condName != "" {
				ev.Condition = &calendar.Condition{Name: condName, Params: condParams}
			}
			out, err := trigger.AddEvent(snap, ev)
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "add event", err)
			}
			if err := store.SaveSnapshot(rootOpts.Calendar, out); err != nil {
				f.Error("SAVE_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "save calendar", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(out.Events[len(out.Events)-1])
			}
			f.Textf("added %s", ev.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ev.TriggerDate, "date", "", "trigger date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ev.TriggerTime, "time", "", "trigger time (HH:MM)")
	cmd.Flags().StringVar(&ev.Location, "location", "", "location scope")
	cmd.Flags().IntVar(&ev.Priority, "priority", 0, "firing priority")
	cmd.Flags().StringVar(&ev.Recurrence, "recurrence", "", "daily|weekly|monthly")
	cmd.Flags().StringVar(&condName, "condition", "", "condition predicate name")
	cmd.Flags().StringToStringVar(&condParams, "condition-param", nil, "condition parameters (key=value)")
	return cmd
}

func newEventsStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status <id> <pending|triggered|completed|failed>",
		Short:         "Move an event through its lifecycle",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			snap, err := store.LoadSnapshot(rootOpts.Calendar)
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load calendar", err)
			}

			out, err := trigger.UpdateEventStatus(snap, args[0], calendar.Status(args[1]))
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "update event status", err)
			}
			if err := store.SaveSnapshot(rootOpts.Calendar, out); err != nil {
				f.Error("SAVE_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "save calendar", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(out.Events[out.FindEvent(args[0])])
			}
			f.Textf("%s -> %s", args[0], args[1])
			return nil
		},
	}
}

func newEventsRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <id>",
		Short:         "Remove an event",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			snap, err := store.LoadSnapshot(rootOpts.Calendar)
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load calendar", err)
			}

			out, err := trigger.RemoveEvent(snap, args[0])
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "remove event", err)
			}
			if err := store.SaveSnapshot(rootOpts.Calendar, out); err != nil {
				f.Error("SAVE_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "save calendar", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"removed": args[0]})
			}
			f.Textf("removed %s", args[0])
			return nil
		},
	}
}

func newEventsRecurCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "recur <id>",
		Short:         "Advance a recurring event to its next occurrence",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)
			snap, err := store.LoadSnapshot(rootOpts.Calendar)
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load calendar", err)
			}

			i := snap.FindEvent(args[0])
			if i < 0 {
				err := simerr.New(simerr.CodeNotFound, "event %q not found", args[0])
				f.Error(string(simerr.CodeNotFound), err.Error(), nil)
				return WrapExitError(ExitFailure, "recur event", err)
			}
			next, err := trigger.AdvanceRecurringEventDate(snap.Events[i])
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "recur event", err)
			}

			out := snap.Clone()
			out.Events[i] = next
			if err := store.SaveSnapshot(rootOpts.Calendar, out); err != nil {
				f.Error("SAVE_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "save calendar", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(next)
			}
			f.Textf("%s next occurs %s %s", next.ID, next.TriggerDate, next.EffectiveTriggerTime())
			return nil
		},
	}
}
