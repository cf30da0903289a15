package cli

import (
	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/store"
	"github.com/torchbearer/chronicle/internal/timeline"
	"github.com/torchbearer/chronicle/internal/trigger"
)

// NewUpcomingCommand creates the upcoming command.
func NewUpcomingCommand(rootOpts *RootOptions) *cobra.Command {
	var within string

	cmd := &cobra.Command{
		Use:           "upcoming",
		Short:         "List pending events due soon",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)

			lookahead, err := timeline.ParseDuration(within)
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "invalid lookahead", err)
			}
			snap, err := store.LoadSnapshot(rootOpts.Calendar)
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load calendar", err)
			}

			events, err := trigger.UpcomingEvents(snap, lookahead)
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "upcoming events", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(events)
			}
			for _, ev := range events {
				f.Textf("%s %s  %s [%s]", ev.TriggerDate, ev.EffectiveTriggerTime(), ev.Name, ev.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&within, "within", "1 day", "lookahead window")
	return cmd
}
