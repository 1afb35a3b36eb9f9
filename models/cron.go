package models

import (
	"github.com/golang/glog"

	"github.com/Bennybas/hcp-hco-backend/cache"
)

// LogCacheStats logs the cache counters and per-key freshness so the
// logs show at a glance whether the refresh scheduler is keeping up
func LogCacheStats(svc *cache.Service) {
	stats := svc.GetStats()
	status := svc.Status()

	stale := 0
	for _, ks := range status {
		if !ks.IsFresh {
			stale++
		}
	}

	glog.Infof(
		"cache: %d keys (%d stale) hits=%d misses=%d refreshes=%d refreshFailures=%d",
		len(status),
		stale,
		stats.Hits,
		stats.Misses,
		stats.Refreshes,
		stats.RefreshFailures,
	)
}
