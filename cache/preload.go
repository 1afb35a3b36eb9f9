package cache

import (
	"github.com/golang/glog"
)

// PreloadEntry names one well-known key to warm at startup
type PreloadEntry struct {
	Key      string
	Producer Producer
}

// Preload submits the given entries to the worker pool so common keys
// are warm before the first caller asks for them. It returns as soon as
// everything is queued; the service is usable while preloading runs. A
// failed preload is logged and retried by the scheduler like any other
// failed refresh, and until a value lands the key simply falls back to
// the synchronous resolve path.
func (s *Service) Preload(entries []PreloadEntry) {
	for _, ent := range entries {
		if glog.V(2) {
			glog.Infof("cache: preloading %q", ent.Key)
		}
		s.pool.submit(scheduleRecord{
			key:      ent.Key,
			producer: ent.Producer,
		})
	}
}
