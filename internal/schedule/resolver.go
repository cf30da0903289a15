package schedule

import (
	"github.com/torchbearer/chronicle/internal/simerr"
	"github.com/torchbearer/chronicle/internal/timeline"
)

// AtHomeActivity is the activity reported before an NPC's day starts
// and inside routine gaps.
const AtHomeActivity = "At home"

// Resolver answers location queries from a cache plus a loader for
// misses.
type Resolver struct {
	cache  *Cache
	loader Loader
}

// NewResolver creates a resolver over the given cache. The loader may
// be nil when the cache is fully pre-seeded; misses then resolve to
// NOT_FOUND.
func NewResolver(cache *Cache, loader Loader) *Resolver {
	return &Resolver{cache: cache, loader: loader}
}

// schedule fetches from the cache, loading on a miss.
func (r *Resolver) schedule(npcID string) (*Schedule, error) {
	if s := r.cache.Get(npcID); s != nil {
		return s, nil
	}
	if r.loader == nil {
		return nil, simerr.New(simerr.CodeNotFound, "no schedule for npc %q", npcID)
	}
	s, err := r.loader.LoadSchedule(npcID)
	if err != nil {
		return nil, simerr.Wrap(err)
	}
	if s == nil {
		return nil, simerr.New(simerr.CodeNotFound, "no schedule for npc %q", npcID)
	}
	r.cache.Put(s)
	return s, nil
}

// NPCLocation resolves one NPC's location, activity, and detail at
// the given timestamp. Overrides are evaluated first-match-wins as a
// full routine replacement, then the effective routine is scanned:
//
//   - before the first entry: home location, "At home"
//   - inside an entry's [start, end) window: that entry
//   - in a gap between entries: home location (conservative default)
//   - at or after the last entry's end: the last entry's location
func (r *Resolver) NPCLocation(npcID, date, clock string, state GameState) (Resolved, error) {
	if _, err := timeline.ParseDate(date); err != nil {
		return Resolved{}, err
	}
	c, err := timeline.ParseClock(clock)
	if err != nil {
		return Resolved{}, err
	}
	sched, err := r.schedule(npcID)
	if err != nil {
		return Resolved{}, err
	}

	routine := sched.effectiveRoutine(state)
	if len(routine) == 0 {
		return Resolved{NPCID: npcID, Location: sched.HomeLocation, Activity: AtHomeActivity}, nil
	}

	now := c.MinuteOfDay()
	for i, entry := range routine {
		start, err := timeline.ParseClock(entry.Start)
		if err != nil {
			continue // malformed authored window; skip it
		}
		end, err := timeline.ParseClock(entry.End)
		if err != nil {
			continue
		}
		if now < start.MinuteOfDay() {
			if i == 0 {
				// Before the day begins.
				return Resolved{NPCID: npcID, Location: sched.HomeLocation, Activity: AtHomeActivity}, nil
			}
			// Gap between the previous entry's end and this start.
			return Resolved{NPCID: npcID, Location: sched.HomeLocation, Activity: AtHomeActivity}, nil
		}
		if now < end.MinuteOfDay() {
			return Resolved{
				NPCID:    npcID,
				Location: entry.Location,
				Activity: entry.Activity,
				Detail:   entry.Detail,
			}, nil
		}
	}

	// After the last entry's end the NPC stays put.
	last := routine[len(routine)-1]
	return Resolved{
		NPCID:    npcID,
		Location: last.Location,
		Activity: last.Activity,
		Detail:   last.Detail,
	}, nil
}

// NPCsAtLocation linearly scans the cache for every NPC resolving to
// the location at the given timestamp. NPCs whose resolution fails
// are skipped rather than failing the scan.
func (r *Resolver) NPCsAtLocation(locationID, date, clock string, state GameState) ([]Resolved, error) {
	if _, err := timeline.ParseDate(date); err != nil {
		return nil, err
	}
	if _, err := timeline.ParseClock(clock); err != nil {
		return nil, err
	}

	var out []Resolved
	for _, id := range r.cache.IDs() {
		res, err := r.NPCLocation(id, date, clock, state)
		if err != nil {
			continue
		}
		if res.Location == locationID {
			out = append(out, res)
		}
	}
	return out, nil
}
