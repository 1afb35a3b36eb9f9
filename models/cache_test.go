package models

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/Bennybas/hcp-hco-backend/cache"
	e "github.com/Bennybas/hcp-hco-backend/errors"
)

func TestCacheKeyDeterminism(t *testing.T) {
	a := MasterDataFilters{HCPName: "SMITH JOHN"}
	b := MasterDataFilters{HCPName: "SMITH JOHN"}

	if a.CacheKey() != b.CacheKey() {
		t.Errorf("Equal filters produced different keys: %q vs %q", a.CacheKey(), b.CacheKey())
	}

	c := MasterDataFilters{HCPName: "DOE JANE"}
	if a.CacheKey() == c.CacheKey() {
		t.Errorf("Different filters collided on key %q", a.CacheKey())
	}
}

func TestCacheKeySentinel(t *testing.T) {
	all := MasterDataFilters{}
	if got := all.CacheKey(); got != "master|hcp_name=-" {
		t.Errorf("Unfiltered master key = %q, expected %q", got, "master|hcp_name=-")
	}

	// Every filter position appears even when unset, so a value can
	// never shift position and collide with another combination
	hco := HCOLandscapeFilters{DrugName: "ZOLGENSMA"}
	expected := "hco_landscape|year=-|age_group=-|drug_name=ZOLGENSMA|" +
		"zolg_prescriber=-|zolgensma_iv_target=-|kol=-|hcp_segment=-|hco_state=-"
	if got := hco.CacheKey(); got != expected {
		t.Errorf("HCO landscape key = %q, expected %q", got, expected)
	}
}

func TestHCPLandscapeFiltersIgnoreBadYear(t *testing.T) {
	query := url.Values{}
	query.Set("year", "20x4")
	query.Set("age", "0-2")

	f := HCPLandscapeFiltersFromQuery(query)
	if f.Year != "" {
		t.Errorf("Non-numeric year kept: %q", f.Year)
	}
	if f.Age != "0-2" {
		t.Errorf("Age = %q, expected %q", f.Age, "0-2")
	}

	query.Set("year", "2024")
	f = HCPLandscapeFiltersFromQuery(query)
	if f.Year != "2024" {
		t.Errorf("Numeric year dropped: %q", f.Year)
	}
}

func TestFetchDataset(t *testing.T) {
	svc := cache.NewService(cache.Options{PollInterval: time.Hour})
	defer svc.Stop()

	expected := cache.Records{{"hcp_id": "123"}}
	producer := func() (cache.Records, error) { return expected, nil }

	results, status, err := FetchDataset(svc, "test|k=-", producer, false)
	if err != nil {
		t.Fatalf("FetchDataset errored: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Status = %d, expected %d", status, http.StatusOK)
	}
	if len(results) != 1 {
		t.Errorf("Results = %v, expected %v", results, expected)
	}
}

func TestFetchDatasetColdMiss(t *testing.T) {
	svc := cache.NewService(cache.Options{PollInterval: time.Hour})
	defer svc.Stop()

	failing := func() (cache.Records, error) {
		return nil, errors.New("warehouse unavailable")
	}

	_, status, err := FetchDataset(svc, "test|k=-", failing, false)
	if err == nil {
		t.Fatal("FetchDataset of a cold failing key must error")
	}
	if status != http.StatusInternalServerError {
		t.Errorf("Status = %d, expected %d", status, http.StatusInternalServerError)
	}
	if !e.IsColdMiss(err) {
		t.Errorf("Error is not a cold miss: %+v", err)
	}
}

func TestPreloadEntries(t *testing.T) {
	entries := PreloadEntries()
	if len(entries) != 4 {
		t.Fatalf("PreloadEntries returned %d entries, expected 4", len(entries))
	}

	seen := map[string]bool{}
	for _, ent := range entries {
		if ent.Key == "" {
			t.Error("Preload entry with empty key")
		}
		if ent.Producer == nil {
			t.Errorf("Preload entry %q has no producer", ent.Key)
		}
		if seen[ent.Key] {
			t.Errorf("Duplicate preload key %q", ent.Key)
		}
		seen[ent.Key] = true
	}
}
