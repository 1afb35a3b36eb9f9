package cache

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/singleflight"
)

// Producer computes a fresh result set for one key. It must be safe to
// call from any goroutine and must not retain a reference to the
// returned Records after returning.
type Producer func() (Records, error)

// Options configures a Service. Zero fields take the documented
// defaults.
type Options struct {
	// TTL is how long a stored value counts as fresh. Default 15m.
	TTL time.Duration

	// RefreshInterval is the background refresh cadence for registered
	// keys. It should be shorter than TTL so a refresh normally lands
	// before the entry goes stale. Default 10m.
	RefreshInterval time.Duration

	// RetryDelay is how soon a failed refresh is retried. Default 1m.
	RetryDelay time.Duration

	// PollInterval is the scheduler's due-key scan cadence. Default 2s.
	PollInterval time.Duration

	// Workers is the number of background refresh executors. Default 4.
	Workers int

	// OnRefreshFailure, when non-nil, is invoked for every failed
	// background refresh after the failure has been logged and the
	// retry scheduled.
	OnRefreshFailure func(key string, err error)

	// Clock overrides the time source. Tests use it; leave nil
	// otherwise.
	Clock func() time.Time
}

// Stats are cumulative counters since process start
type Stats struct {
	Hits            int64 `json:"hits"`
	Misses          int64 `json:"misses"`
	Refreshes       int64 `json:"refreshes"`
	RefreshFailures int64 `json:"refreshFailures"`
}

// KeyStatus describes one cached key for the introspection surface
type KeyStatus struct {
	Key              string    `json:"key"`
	StoredAt         time.Time `json:"storedAt"`
	AgeSeconds       float64   `json:"ageSeconds"`
	ExpiresInSeconds float64   `json:"expiresInSeconds"`
	IsFresh          bool      `json:"isFresh"`
}

// EntrySnapshot is one cached key with its value, used by the snapshot
// export job
type EntrySnapshot struct {
	Key      string
	StoredAt time.Time
	Results  Records
}

// Service owns the cache store, the refresh schedule and the worker
// pool. Construct one in main and hand it to everything that needs it;
// there is deliberately no package-level instance.
type Service struct {
	store *store
	sched *scheduler
	pool  *workerPool

	ttl             time.Duration
	refreshInterval time.Duration
	retryDelay      time.Duration

	onRefreshFailure func(key string, err error)

	sf singleflight.Group

	hits            int64
	misses          int64
	refreshes       int64
	refreshFailures int64

	// now is swapped out in tests
	now func() time.Time
}

// NewService constructs and starts a cache service. Stop releases its
// goroutines.
func NewService(opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Minute
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 10 * time.Minute
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Minute
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	s := &Service{
		store:            newStore(),
		ttl:              opts.TTL,
		refreshInterval:  opts.RefreshInterval,
		retryDelay:       opts.RetryDelay,
		onRefreshFailure: opts.OnRefreshFailure,
		now:              opts.Clock,
	}
	s.pool = newWorkerPool(opts.Workers)
	s.sched = newScheduler(s, opts.PollInterval)

	s.pool.start(s)
	s.sched.start()

	return s
}

// Stop shuts down the scheduler loop and the worker pool. Producers
// already running are allowed to finish.
func (s *Service) Stop() {
	s.sched.stop()
	s.pool.stop()
}

// Resolve returns the value for key, computing it synchronously when
// the store has nothing fresh. A successful compute registers the key
// for background refresh. If the producer fails but any previous value
// exists, that value is served instead of the error; the error is only
// propagated on a cold miss, when there is nothing else to give the
// caller.
func (s *Service) Resolve(key string, producer Producer, forceRefresh bool) (Records, error) {
	if !forceRefresh {
		if results, storedAt, ok := s.store.get(key); ok && s.fresh(storedAt) {
			atomic.AddInt64(&s.hits, 1)
			return results, nil
		}
	}
	atomic.AddInt64(&s.misses, 1)

	// Concurrent computes for the same key are coalesced: one producer
	// call, every waiter gets its result.
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		results, err := producer()
		if err != nil {
			if prev, _, ok := s.store.get(key); ok {
				glog.Errorf("cache: compute of %q failed, serving previous value: %+v", key, err)
				return prev, nil
			}
			return nil, err
		}

		s.store.put(key, results, s.now())
		s.sched.register(key, producer)

		return results, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(Records), nil
}

// Clear atomically empties the store. The refresh schedule is left
// alone: previously warm keys are recomputed on their next due cycle
// rather than immediately.
func (s *Service) Clear() {
	s.store.clear()
}

// Status reports every cached key with its age and freshness, sorted by
// key.
func (s *Service) Status() []KeyStatus {
	now := s.now()

	var out []KeyStatus
	for key, ent := range s.store.snapshot() {
		age := now.Sub(ent.storedAt)
		remaining := s.ttl - age
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, KeyStatus{
			Key:              key,
			StoredAt:         ent.storedAt,
			AgeSeconds:       age.Seconds(),
			ExpiresInSeconds: remaining.Seconds(),
			IsFresh:          age < s.ttl,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

// Snapshot returns every cached key with its value, sorted by key
func (s *Service) Snapshot() []EntrySnapshot {
	var out []EntrySnapshot
	for key, ent := range s.store.snapshot() {
		out = append(out, EntrySnapshot{
			Key:      key,
			StoredAt: ent.storedAt,
			Results:  ent.results,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

// GetStats returns the cumulative counters
func (s *Service) GetStats() Stats {
	return Stats{
		Hits:            atomic.LoadInt64(&s.hits),
		Misses:          atomic.LoadInt64(&s.misses),
		Refreshes:       atomic.LoadInt64(&s.refreshes),
		RefreshFailures: atomic.LoadInt64(&s.refreshFailures),
	}
}

func (s *Service) fresh(storedAt time.Time) bool {
	return s.now().Sub(storedAt) < s.ttl
}

// refresh is the background write path shared by the worker pool and
// the preloader. It mirrors the resolve path's policy: success
// overwrites the entry and schedules the next cycle, failure leaves the
// previous entry untouched and schedules a near-term retry.
func (s *Service) refresh(rec scheduleRecord) {
	results, err := rec.producer()
	if err != nil {
		atomic.AddInt64(&s.refreshFailures, 1)
		glog.Errorf("cache: background refresh of %q failed, keeping previous value: %+v", rec.key, err)
		s.sched.requeue(rec.key, rec.producer, s.retryDelay)
		if s.onRefreshFailure != nil {
			s.onRefreshFailure(rec.key, err)
		}
		return
	}

	atomic.AddInt64(&s.refreshes, 1)
	s.store.put(rec.key, results, s.now())
	s.sched.requeue(rec.key, rec.producer, s.refreshInterval)
}
