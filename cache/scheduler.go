package cache

import (
	"time"

	"github.com/golang/glog"
)

type scheduleRecord struct {
	key       string
	producer  Producer
	nextDueAt time.Time
}

// scheduler owns the refresh registry: a single long-lived map from key
// to its next due time, fed through an intake channel and read by
// nothing else. One goroutine merges intake records and dispatches due
// keys to the worker pool.
//
// A due key is removed from the registry before being submitted and
// only re-enqueued once its refresh attempt has completed. While the
// attempt is in flight the key is absent from the registry, so a key
// can never be refreshed twice concurrently.
type scheduler struct {
	svc    *Service
	intake chan scheduleRecord
	poll   time.Duration
	quit   chan struct{}
	done   chan struct{}

	// owned exclusively by the run goroutine
	records map[string]scheduleRecord
}

func newScheduler(svc *Service, poll time.Duration) *scheduler {
	return &scheduler{
		svc:     svc,
		intake:  make(chan scheduleRecord, 256),
		poll:    poll,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		records: make(map[string]scheduleRecord),
	}
}

func (sc *scheduler) start() {
	go sc.run()
}

func (sc *scheduler) stop() {
	close(sc.quit)
	<-sc.done
}

// register puts a key on the refresh schedule. Re-registering a key
// that is already scheduled resets its due time; it never creates a
// second record.
func (sc *scheduler) register(key string, producer Producer) {
	sc.enqueue(key, producer, sc.svc.refreshInterval)
}

// requeue is called by the worker pool after a refresh attempt
// completes, with the delay chosen by its outcome.
func (sc *scheduler) requeue(key string, producer Producer, delay time.Duration) {
	sc.enqueue(key, producer, delay)
}

func (sc *scheduler) enqueue(key string, producer Producer, delay time.Duration) {
	rec := scheduleRecord{
		key:       key,
		producer:  producer,
		nextDueAt: sc.svc.now().Add(delay),
	}

	select {
	case sc.intake <- rec:
	default:
		// The intake buffer only fills if the run loop is wedged
		// behind a saturated worker pool. Spill to a goroutine rather
		// than lose the key from the schedule or block a worker.
		glog.Errorf("cache: schedule intake full, spilling reschedule of %q", key)
		go func() { sc.intake <- rec }()
	}
}

func (sc *scheduler) run() {
	defer close(sc.done)

	ticker := time.NewTicker(sc.poll)
	defer ticker.Stop()

	for {
		select {
		case rec := <-sc.intake:
			sc.records[rec.key] = rec
		case <-ticker.C:
			sc.dispatchDue()
		case <-sc.quit:
			return
		}
	}
}

// dispatchDue hands every due record to the worker pool. The submit
// blocks when all workers are busy and the queue is full; due keys wait
// their turn rather than being dropped.
func (sc *scheduler) dispatchDue() {
	now := sc.svc.now()
	for key, rec := range sc.records {
		if rec.nextDueAt.After(now) {
			continue
		}
		delete(sc.records, key)
		sc.svc.pool.submit(rec)
	}
}
