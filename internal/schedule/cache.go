package schedule

import "sort"

// Cache is the set-once read-many schedule lookup, keyed by NPC id.
// It is an explicit value the caller owns and injects, so tests can
// pre-seed or reset it and multiple simulations can coexist in one
// process. It is not synchronized: the engine runs on one logical
// thread of execution.
type Cache struct {
	schedules map[string]*Schedule
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{schedules: make(map[string]*Schedule)}
}

// Get returns the cached schedule for an NPC, or nil.
func (c *Cache) Get(npcID string) *Schedule {
	return c.schedules[npcID]
}

// Put stores a schedule. Later puts for the same id overwrite, which
// only happens when a caller deliberately reloads content.
func (c *Cache) Put(s *Schedule) {
	c.schedules[s.NPCID] = s
}

// IDs returns the cached NPC ids in sorted order, for deterministic
// iteration.
func (c *Cache) IDs() []string {
	ids := make([]string, 0, len(c.schedules))
	for id := range c.schedules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of cached schedules.
func (c *Cache) Len() int {
	return len(c.schedules)
}

// Loader fetches a schedule on a cache miss. The content package
// provides the production implementation over authored documents.
type Loader interface {
	LoadSchedule(npcID string) (*Schedule, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(npcID string) (*Schedule, error)

// LoadSchedule implements Loader.
func (f LoaderFunc) LoadSchedule(npcID string) (*Schedule, error) {
	return f(npcID)
}
