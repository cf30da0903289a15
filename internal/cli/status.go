package cli

import (
	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/store"
)

// StatusOutput is the status command's JSON payload.
type StatusOutput struct {
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	DayOfWeek    string  `json:"day_of_week"`
	Season       string  `json:"season"`
	MoonPhase    string  `json:"moon_phase,omitempty"`
	Weather      string  `json:"weather,omitempty"`
	ElapsedHours float64 `json:"elapsed_hours"`
	EventCount   int     `json:"event_count"`
	NPCCount     int     `json:"npc_count"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show the current campaign time",
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

			out := StatusOutput{
				Date:         snap.Current.Date,
				Time:         snap.Current.Time,
				DayOfWeek:    snap.Current.DayOfWeek,
				Season:       snap.Current.Season,
				MoonPhase:    snap.Moon.Phase,
				Weather:      snap.Weather.Condition,
				ElapsedHours: snap.Metadata.ElapsedHours,
				EventCount:   len(snap.Events),
				NPCCount:     len(snap.NPCs),
			}
			if rootOpts.Format == "json" {
				return f.Success(out)
			}

			f.Textf("%s %s (%s, %s)", out.Date, out.Time, out.DayOfWeek, out.Season)
			if out.MoonPhase != "" {
				f.Textf("moon: %s", out.MoonPhase)
			}
			if out.Weather != "" {
				f.Textf("weather: %s", out.Weather)
			}
			f.Textf("elapsed: %.1f hours, %d events, %d tracked npcs",
				out.ElapsedHours, out.EventCount, out.NPCCount)
			return nil
		},
	}
}
