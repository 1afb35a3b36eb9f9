package cache

import (
	"sync"
	"time"
)

// Record is one flat row of a dataset, keyed by column name
type Record map[string]interface{}

// Records is an ordered result set as returned by a producer
type Records []Record

type entry struct {
	results  Records
	storedAt time.Time
}

// store is the in-memory mapping from key to last good result. Entries
// are only ever replaced whole, never mutated in place, so a reader can
// never observe a partial write. There is no eviction: the keyspace is
// bounded by the filter combinations callers actually exercise.
type store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func newStore() *store {
	return &store{
		entries: make(map[string]entry),
	}
}

func (st *store) get(key string) (Records, time.Time, bool) {
	st.mu.RLock()
	ent, ok := st.entries[key]
	st.mu.RUnlock()

	return ent.results, ent.storedAt, ok
}

func (st *store) put(key string, results Records, now time.Time) {
	st.mu.Lock()
	st.entries[key] = entry{
		results:  results,
		storedAt: now,
	}
	st.mu.Unlock()
}

func (st *store) clear() {
	st.mu.Lock()
	st.entries = make(map[string]entry)
	st.mu.Unlock()
}

// snapshot copies the entry map so callers can iterate without holding
// the lock. The Records values themselves are shared and treated as
// immutable by every caller.
func (st *store) snapshot() map[string]entry {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make(map[string]entry, len(st.entries))
	for key, ent := range st.entries {
		out[key] = ent
	}
	return out
}
