package cli

import (
	"github.com/spf13/cobra"

	"github.com/torchbearer/chronicle/internal/content"
	"github.com/torchbearer/chronicle/internal/schedule"
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/store"
)

// NewNPCCommand creates the npc command group.
func NewNPCCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "npc",
		Short: "Resolve NPC positions",
	}
	cmd.AddCommand(newNPCWhereCommand(rootOpts))
	cmd.AddCommand(newNPCAtCommand(rootOpts))
	return cmd
}

func npcResolver(rootOpts *RootOptions) *schedule.Resolver {
	return schedule.NewResolver(schedule.NewCache(), content.NewDirLoader(rootOpts.Content))
}

func newNPCWhereCommand(rootOpts *RootOptions) *cobra.Command {
	var flags []string

	cmd := &cobra.Command{
		Use:           "where <npc-id>",
		Short:         "Resolve one NPC's current location",
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

			res, err := npcResolver(rootOpts).NPCLocation(args[0],
				snap.Current.Date, snap.Current.Time, gameState(flags))
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "resolve npc", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(res)
			}
			line := res.NPCID + ": " + res.Location + " (" + res.Activity + ")"
			if res.Detail != "" {
				line += " - " + res.Detail
			}
			f.Textf("%s", line)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&flags, "flag", nil, "game-state conditions considered true (repeatable)")
	return cmd
}

func newNPCAtCommand(rootOpts *RootOptions) *cobra.Command {
	var flags []string

	cmd := &cobra.Command{
		Use:           "at <location-id>",
		Short:         "List NPCs at a location",
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

			resolver := npcResolver(rootOpts)
			// NPCsAtLocation scans the cache, so warm it with every
			// known NPC first.
			loader := content.NewDirLoader(rootOpts.Content)
			ids, err := loader.NPCIDs()
			if err != nil {
				f.Error("LOAD_FAILED", err.Error(), nil)
				return WrapExitError(ExitCommandError, "load content", err)
			}
			for _, id := range ids {
				if _, err := resolver.NPCLocation(id, snap.Current.Date, snap.Current.Time, gameState(flags)); err != nil {
					f.VerboseLog("skipping %s: %v", id, err)
				}
			}

			res, err := resolver.NPCsAtLocation(args[0],
				snap.Current.Date, snap.Current.Time, gameState(flags))
			if err != nil {
				f.Error(string(simerr.CodeOf(err)), err.Error(), nil)
				return WrapExitError(ExitFailure, "scan location", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(res)
			}
			for _, r := range res {
				f.Textf("%s (%s)", r.NPCID, r.Activity)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&flags, "flag", nil, "game-state conditions considered true (repeatable)")
	return cmd
}
