package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int
	var token string

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Read the advancement history log",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)

			h, err := store.OpenHistory(rootOpts.History)
			if err != nil {
				f.Error("HISTORY_UNAVAILABLE", err.Error(), nil)
				return WrapExitError(ExitCommandError, "open history", err)
			}
			defer h.Close()

			ctx := context.Background()
			if token != "" {
				fired, err := h.FiredEvents(ctx, token)
				if err != nil {
					f.Error("QUERY_FAILED", err.Error(), nil)
					return WrapExitError(ExitFailure, "query fired events", err)
				}
				if rootOpts.Format == "json" {
					return f.Success(fired)
				}
				for _, fe := range fired {
					f.Textf("%d. %s [%s] priority=%d status=%s",
						fe.Position+1, fe.EventName, fe.EventID, fe.Priority, fe.Status)
				}
				return nil
			}

			advances, err := h.Advances(ctx, limit)
			if err != nil {
				f.Error("QUERY_FAILED", err.Error(), nil)
				return WrapExitError(ExitFailure, "query advances", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(advances)
			}
			for _, a := range advances {
				line := a.FromDate + " " + a.FromTime + " -> " + a.ToDate + " " + a.ToTime
				if a.Reason != "" {
					line += "  (" + a.Reason + ")"
				}
				f.Textf("%s  %s", a.Token, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max advances to show")
	cmd.Flags().StringVar(&token, "token", "", "show events fired by one advance")
	return cmd
}
