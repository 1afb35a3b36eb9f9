package cache

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

// The scheduler tests use a fake clock for due times and a short poll
// interval so refresh cycles complete in milliseconds of real time.

func schedulerOptions() Options {
	return Options{
		TTL:             10 * time.Second,
		RefreshInterval: 7 * time.Second,
		RetryDelay:      time.Second,
		PollInterval:    5 * time.Millisecond,
	}
}

func resolved(t *testing.T, svc *Service, key string, p *countingProducer) Records {
	t.Helper()
	results, err := svc.Resolve(key, p.produce, false)
	if err != nil {
		t.Fatalf("Resolve(%q) errored: %v", key, err)
	}
	return results
}

// The timeline from the freshness contract: TTL 10s, refresh every 7s.
// Resolve at t=0 computes V1, a background refresh fires by t=8 and
// stores V2, a resolve at t=9 returns V2 fresh without invoking the
// producer.
func TestBackgroundRefreshTimeline(t *testing.T) {
	fc := newFakeClock()
	svc := newTestService(t, fc, schedulerOptions())

	p := &countingProducer{}

	if got := resolved(t, svc, "A", p); !reflect.DeepEqual(got, resultOfCall(1)) {
		t.Fatalf("Initial resolve returned %v, expected %v", got, resultOfCall(1))
	}

	// t=8: past the 7s refresh due time, no request involved
	fc.Advance(8 * time.Second)
	waitFor(t, "background refresh to run", func() bool { return p.calls() >= 2 })
	waitFor(t, "refreshed value to land", func() bool {
		results, _, ok := svc.store.get("A")
		return ok && reflect.DeepEqual(results, resultOfCall(2))
	})

	// t=9: the refreshed entry is fresh, so no producer call
	fc.Advance(time.Second)
	if got := resolved(t, svc, "A", p); !reflect.DeepEqual(got, resultOfCall(2)) {
		t.Errorf("Resolve at t=9 returned %v, expected %v", got, resultOfCall(2))
	}
	if p.calls() != 2 {
		t.Errorf("Producer called %d times, expected 2", p.calls())
	}
}

func TestFailedRefreshRetriesSooner(t *testing.T) {
	fc := newFakeClock()

	var failMu sync.Mutex
	var failures []string
	opts := schedulerOptions()
	opts.OnRefreshFailure = func(key string, err error) {
		failMu.Lock()
		failures = append(failures, key)
		failMu.Unlock()
	}
	svc := newTestService(t, fc, opts)

	p := &countingProducer{fail: func(call int) bool { return call == 2 }}

	resolved(t, svc, "A", p)

	// First refresh fails; the old value must survive
	fc.Advance(8 * time.Second)
	waitFor(t, "failing refresh to run", func() bool { return p.calls() >= 2 })

	results, _, ok := svc.store.get("A")
	if !ok || !reflect.DeepEqual(results, resultOfCall(1)) {
		t.Errorf("Entry after failed refresh = %v, expected retained %v", results, resultOfCall(1))
	}

	// Retry is due after retryDelay (1s), far sooner than the 7s cadence
	fc.Advance(2 * time.Second)
	waitFor(t, "retry to run", func() bool { return p.calls() >= 3 })
	waitFor(t, "retried value to land", func() bool {
		results, _, ok := svc.store.get("A")
		return ok && reflect.DeepEqual(results, resultOfCall(3))
	})

	failMu.Lock()
	defer failMu.Unlock()
	if len(failures) != 1 || failures[0] != "A" {
		t.Errorf("OnRefreshFailure calls = %v, expected one for %q", failures, "A")
	}
}

// Re-registering a key must reschedule it, never duplicate it: two
// forced computes followed by one due cycle yields exactly one
// background refresh.
func TestRegisterIsIdempotent(t *testing.T) {
	fc := newFakeClock()
	svc := newTestService(t, fc, schedulerOptions())

	p := &countingProducer{}

	resolved(t, svc, "A", p)
	svc.Resolve("A", p.produce, true)
	if p.calls() != 2 {
		t.Fatalf("Producer called %d times after two computes, expected 2", p.calls())
	}

	fc.Advance(8 * time.Second)
	waitFor(t, "background refresh to run", func() bool { return p.calls() >= 3 })

	// Give a duplicated record every chance to fire
	time.Sleep(100 * time.Millisecond)
	if p.calls() != 3 {
		t.Errorf("Producer called %d times after one due cycle, expected 3", p.calls())
	}
}

// Clear empties the store but not the schedule: the key comes back on
// its own next due cycle without any request.
func TestClearKeepsSchedule(t *testing.T) {
	fc := newFakeClock()
	svc := newTestService(t, fc, schedulerOptions())

	p := &countingProducer{}

	resolved(t, svc, "A", p)
	svc.Clear()
	if entries := svc.Status(); len(entries) != 0 {
		t.Fatalf("Status reports %d entries after Clear, expected 0", len(entries))
	}

	fc.Advance(8 * time.Second)
	waitFor(t, "scheduled refresh to repopulate the key", func() bool {
		results, _, ok := svc.store.get("A")
		return ok && reflect.DeepEqual(results, resultOfCall(2))
	})
}

func TestPreloadWarmsKeys(t *testing.T) {
	fc := newFakeClock()
	svc := newTestService(t, fc, schedulerOptions())

	p := &countingProducer{}

	svc.Preload([]PreloadEntry{
		{Key: "warm", Producer: p.produce},
	})

	waitFor(t, "preload to land", func() bool {
		_, _, ok := svc.store.get("warm")
		return ok
	})

	// The first request after preload is a fresh hit
	if got := resolved(t, svc, "warm", p); !reflect.DeepEqual(got, resultOfCall(1)) {
		t.Errorf("Resolve after preload returned %v, expected %v", got, resultOfCall(1))
	}
	if p.calls() != 1 {
		t.Errorf("Producer called %d times, expected 1", p.calls())
	}

	// Preload also puts the key on the refresh schedule
	fc.Advance(8 * time.Second)
	waitFor(t, "preloaded key to refresh", func() bool { return p.calls() >= 2 })
}

func TestPreloadFailureFallsBackToResolve(t *testing.T) {
	fc := newFakeClock()
	svc := newTestService(t, fc, schedulerOptions())

	failing := func() (Records, error) {
		return nil, errors.New("warehouse unavailable")
	}
	svc.Preload([]PreloadEntry{
		{Key: "cold", Producer: failing},
	})

	// The failure must not fatal anything, and the key stays cold
	time.Sleep(50 * time.Millisecond)
	if _, _, ok := svc.store.get("cold"); ok {
		t.Error("Failed preload stored an entry")
	}

	// First request computes synchronously as if never preloaded
	p := &countingProducer{}
	if got := resolved(t, svc, "cold", p); !reflect.DeepEqual(got, resultOfCall(1)) {
		t.Errorf("Resolve after failed preload returned %v, expected %v", got, resultOfCall(1))
	}
}
