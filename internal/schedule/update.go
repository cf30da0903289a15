package schedule

import (
	"sort"

	"github.com/torchbearer/chronicle/internal/calendar"
)

// Change records one NPC's movement during a bulk recompute.
type Change struct {
	NPCID       string `json:"npc_id"`
	OldLocation string `json:"old_location"`
	NewLocation string `json:"new_location"`
	Activity    string `json:"activity"`
}

// UpdateAll recomputes the tracked position of every NPC already
// present in the snapshot's tracking map at the snapshot's current
// time, returning the change list and a new snapshot. It is the bulk
// entry point invoked once per clock advance.
//
// Only tracked NPCs are recomputed; discovery of new NPCs is the
// content loader's business. NPCs without a resolvable schedule keep
// their tracked position. The input snapshot is not modified, and
// the change list is sorted by NPC id for deterministic output.
func (r *Resolver) UpdateAll(snap calendar.Snapshot, state GameState) ([]Change, calendar.Snapshot, error) {
	out := snap.Clone()

	ids := make([]string, 0, len(out.NPCs))
	for id := range out.NPCs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var changes []Change
	for _, id := range ids {
		tracked := out.NPCs[id]
		res, err := r.NPCLocation(id, out.Current.Date, out.Current.Time, state)
		if err != nil {
			continue
		}
		if res.Location == tracked.Location && res.Activity == tracked.Activity {
			continue
		}
		changes = append(changes, Change{
			NPCID:       id,
			OldLocation: tracked.Location,
			NewLocation: res.Location,
			Activity:    res.Activity,
		})
		out.NPCs[id] = calendar.TrackedNPC{Location: res.Location, Activity: res.Activity}
	}
	return changes, out, nil
}
