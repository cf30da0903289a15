package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/calendar"
	"github.com/torchbearer/chronicle/internal/content"
	"github.com/torchbearer/chronicle/internal/schedule"
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/store"
	"github.com/torchbearer/chronicle/internal/timeline"
	"github.com/torchbearer/chronicle/internal/trigger"
)

// AdvanceOptions holds flags for the advance command.
type AdvanceOptions struct {
	Reason       string
	Location     string
	PrevLocation string
	Flags        []string
}

// AdvanceOutput is the advance command's JSON payload.
type AdvanceOutput struct {
	Token      string            `json:"token"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	DayOfWeek  string            `json:"day_of_week"`
	Season     string            `json:"season"`
	Minutes    int               `json:"minutes"`
	Fired      []calendar.Event  `json:"fired,omitempty"`
	NPCChanges []schedule.Change `json:"npc_changes,omitempty"`
}

// NewAdvanceCommand creates the advance command.
func NewAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdvanceOptions{}

	cmd := &cobra.Command{
		Use:   "advance <duration>",
		Short: "Advance the campaign clock",
		Long: `Advance the campaign clock by a duration and process the consequences.

The duration is either a bare minute count ("90") or a phrase
("1 hour 30 minutes", "2 days"). Advances are capped at one week;
chain several advances for longer skips. Firing events and NPC
movements are reported and recorded in the history log.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Reason, "reason", "", "why time passed, for the history log")
	cmd.Flags().StringVar(&opts.Location, "location", "", "party location after the advance")
	cmd.Flags().StringVar(&opts.PrevLocation, "prev-location", "", "party location before the advance")
	cmd.Flags().StringSliceVar(&opts.Flags, "flag", nil, "campaign flags considered true (repeatable)")

	return cmd
}

func runAdvance(rootOpts *RootOptions, opts *AdvanceOptions, duration string, cmd *cobra.Command) error {
	f := formatter(rootOpts, cmd)

	minutes, err := parseAdvanceDuration(duration)
	if err != nil {
		f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid duration", err)
	}

	snap, err := store.LoadSnapshot(rootOpts.Calendar)
	if err != nil {
		f.Error("LOAD_FAILED", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load calendar", err)
	}

	oldDate, oldTime := snap.Current.Date, snap.Current.Time
	advanced, err := calendar.AdvanceTime(snap, minutes, opts.Reason)
	if err != nil {
		f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "advance time", err)
	}
	slog.Debug("clock advanced",
		"from", oldDate+" "+oldTime,
		"to", advanced.Current.Date+" "+advanced.Current.Time,
		"minutes", minutes)

	ctx := trigger.Context{
		CurrentLocation:  opts.Location,
		PreviousLocation: opts.PrevLocation,
		Flags:            flagSet(opts.Flags),
	}
	res, err := trigger.CheckTriggers(advanced, oldDate, oldTime,
		advanced.Current.Date, advanced.Current.Time, ctx)
	if err != nil {
		f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "check triggers", err)
	}
	slog.Info("triggers checked", "fired", len(res.Fired))

	resolver := schedule.NewResolver(schedule.NewCache(), content.NewDirLoader(rootOpts.Content))
	state := gameState(opts.Flags)
	changes, updated, err := resolver.UpdateAll(res.Snapshot, state)
	if err != nil {
		f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "update npc positions", err)
	}

	if err := store.SaveSnapshot(rootOpts.Calendar, updated); err != nil {
		f.Error("SAVE_FAILED", err.Error(), nil)
		return WrapExitError(ExitCommandError, "save calendar", err)
	}

	token := recordHistory(rootOpts, store.Advance{
		FromDate: oldDate, FromTime: oldTime,
		ToDate: updated.Current.Date, ToTime: updated.Current.Time,
		Minutes: minutes, Reason: opts.Reason,
	}, res.Fired)

	out := AdvanceOutput{
		Token:      token,
		Date:       updated.Current.Date,
		Time:       updated.Current.Time,
		DayOfWeek:  updated.Current.DayOfWeek,
		Season:     updated.Current.Season,
		Minutes:    minutes,
		Fired:      res.Fired,
		NPCChanges: changes,
	}
	if rootOpts.Format == "json" {
		return f.Success(out)
	}

	f.Textf("%s %s (%s, %s)", out.Date, out.Time, out.DayOfWeek, out.Season)
	for _, ev := range out.Fired {
		f.Textf("  fired: %s [%s] priority=%d", ev.Name, ev.ID, ev.Priority)
	}
	for _, ch := range out.NPCChanges {
		f.Textf("  npc: %s %s -> %s (%s)", ch.NPCID, ch.OldLocation, ch.NewLocation, ch.Activity)
	}
	return nil
}

// parseAdvanceDuration accepts a bare minute count or a duration
// phrase. Bare counts still respect the positivity and one-week caps.
func parseAdvanceDuration(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, simerr.New(simerr.CodeInvalidDuration, "duration must be positive minutes, got %d", n)
		}
		if n > timeline.MaxAdvanceMinutes {
			return 0, simerr.New(simerr.CodeDurationTooLarge,
				"%d minutes exceeds the one-week cap (%d)", n, timeline.MaxAdvanceMinutes)
		}
		return n, nil
	}
	return timeline.ParseDuration(s)
}

// recordHistory appends the advance to the sqlite log. History
// failures are logged, not fatal: the calendar save already
// succeeded and the game must go on.
func recordHistory(rootOpts *RootOptions, adv store.Advance, fired []calendar.Event) string {
	h, err := store.OpenHistory(rootOpts.History)
	if err != nil {
		slog.Error("history unavailable", "error", err)
		return ""
	}
	defer h.Close()

	adv.Token = store.UUIDv7Generator{}.Generate()
	if err := h.RecordAdvance(context.Background(), adv, fired); err != nil {
		slog.Error("history write failed", "error", err)
		return ""
	}
	return adv.Token
}

func flagSet(flags []string) map[string]bool {
	if len(flags) == 0 {
		return nil
	}
	out := make(map[string]bool, len(flags))
	for _, fl := range flags {
		out[fl] = true
	}
	return out
}

func gameState(flags []string) schedule.GameState {
	if len(flags) == 0 {
		return nil
	}
	out := make(schedule.GameState, len(flags))
	for _, fl := range flags {
		out[fl] = true
	}
	return out
}
