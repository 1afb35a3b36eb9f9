package models

import (
	"net/url"

	"github.com/Bennybas/hcp-hco-backend/cache"
	h "github.com/Bennybas/hcp-hco-backend/helpers"
)

// The master dataset backs /fetch-data: the distinct provider /
// prescriber / patient projection of zolg_master, optionally narrowed
// to one HCP by name.

// MasterDataFilters are the filters accepted by the master dataset
type MasterDataFilters struct {
	HCPName string
}

// MasterDataFiltersFromQuery reads the filters from a query string
func MasterDataFiltersFromQuery(query url.Values) MasterDataFilters {
	return MasterDataFilters{
		HCPName: h.GetQueryParam(query, "hcp_name"),
	}
}

// CacheKey returns the cache key for this filter combination
func (f MasterDataFilters) CacheKey() string {
	return cacheKey(dsMaster,
		keyPart{"hcp_name", f.HCPName},
	)
}

// Producer returns the unit of work that computes this dataset
func (f MasterDataFilters) Producer() cache.Producer {
	return func() (cache.Records, error) {
		return getMasterData(f)
	}
}

func getMasterData(f MasterDataFilters) (cache.Records, error) {
	query := `
SELECT DISTINCT hcp_id, zolg_prescriber, patient_id, drug_name, hcp_name,
       hco_mdm, hco_mdm_name, hco_mdm_tier, hcp_segment, ref_npi,
       hcp_state, hco_state, ref_hco_npi_mdm, ref_hcp_state, ref_hco_state
  FROM product_landing.zolg_master`

	var args []interface{}
	if f.HCPName != "" {
		query += `
 WHERE hcp_name = $1`
		args = append(args, f.HCPName)
	}

	return runRecordsQuery(query, args...)
}

// MapDataKey returns the cache key for the map dataset, which takes no
// filters
func MapDataKey() string {
	return cacheKey(dsMap)
}

// MapDataProducer returns the unit of work that computes the map
// dataset: rendering and referring locations unioned into one set of
// plottable points.
func MapDataProducer() cache.Producer {
	return func() (cache.Records, error) {
		return runRecordsQuery(`
WITH uni AS (
    SELECT DISTINCT hcp_id, hcp_state, hcp_zip, hco_mdm, hco_state,
           hco_postal_cd_prim, patient_id, rend_hco_lat, rend_hco_long,
           hco_mdm_name
      FROM product_landing.zolg_master_v2
     UNION ALL
    SELECT DISTINCT ref_npi, ref_hcp_state, ref_hcp_zip, ref_hco_npi_mdm,
           ref_hco_state, ref_hco_zip, patient_id, ref_hco_lat,
           ref_hco_long, ref_organization_mdm_name
      FROM product_landing.zolg_master_v2
)
SELECT * FROM uni`)
	}
}
