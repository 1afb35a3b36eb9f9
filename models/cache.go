package models

import (
	"net/http"
	"strings"

	"github.com/golang/glog"

	"github.com/Bennybas/hcp-hco-backend/cache"
	e "github.com/Bennybas/hcp-hco-backend/errors"
)

// This file contains the glue between the datasets and the cache:
// deterministic key construction, the resolve wrapper used by every
// controller, and the preload set warmed at startup.

// Dataset key prefixes. One prefix per endpoint-shaped dataset; the
// filter values are appended in fixed order.
const (
	dsMaster       = "master"
	dsMap          = "map"
	dsHCPLandscape = "hcp_landscape"
	dsHCOLandscape = "hco_landscape"
	dsHCP360       = "hcp_360"
	dsHCO360       = "hco_360"
)

// keyNone marks an absent filter value, so "no filter" always collides
// on the same key and can never collide with a real value of another
// filter position.
const keyNone = "-"

type keyPart struct {
	name  string
	value string
}

// cacheKey builds the key for a dataset from its filter parts. Parts
// are appended in declaration order, which callers keep stable: the key
// format is effectively a wire format for the cache and old keys must
// stay valid across releases.
func cacheKey(dataset string, parts ...keyPart) string {
	var b strings.Builder
	b.WriteString(dataset)
	for _, part := range parts {
		b.WriteString("|")
		b.WriteString(part.name)
		b.WriteString("=")
		if part.value == "" {
			b.WriteString(keyNone)
		} else {
			b.WriteString(part.value)
		}
	}
	return b.String()
}

// FetchDataset resolves a dataset through the cache. The only error
// that ever reaches a caller is a cold miss: the producer failed and no
// previous value exists for the key.
func FetchDataset(
	svc *cache.Service,
	key string,
	producer cache.Producer,
	forceRefresh bool,
) (
	cache.Records,
	int,
	error,
) {
	results, err := svc.Resolve(key, producer, forceRefresh)
	if err != nil {
		glog.Errorf("svc.Resolve(%q) %+v", key, err)
		return nil, http.StatusInternalServerError, e.New(
			"models.FetchDataset",
			e.ColdMiss,
			"The data could not be computed and no cached copy exists",
		)
	}

	return results, http.StatusOK, nil
}

// PreloadEntries returns the well-known keys warmed at startup: the
// unfiltered variant of every dataset a first-time visitor hits.
func PreloadEntries() []cache.PreloadEntry {
	masterAll := MasterDataFilters{}
	hcpAll := HCPLandscapeFilters{}
	hcoAll := HCOLandscapeFilters{}

	return []cache.PreloadEntry{
		{Key: masterAll.CacheKey(), Producer: masterAll.Producer()},
		{Key: MapDataKey(), Producer: MapDataProducer()},
		{Key: hcpAll.CacheKey(), Producer: hcpAll.Producer()},
		{Key: hcoAll.CacheKey(), Producer: hcoAll.Producer()},
	}
}
