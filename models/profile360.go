package models

import (
	"fmt"
	"net/url"

	"github.com/Bennybas/hcp-hco-backend/cache"
	h "github.com/Bennybas/hcp-hco-backend/helpers"
)

// The 360 datasets back /hcp-360 and /hco-360: the full activity and
// affiliation view for a single provider or organisation, address
// pre-assembled for display.

const addressColumn = `
           COALESCE(
               CONCAT(
                   COALESCE(hco_addr_line_1, ''), ', ',
                   COALESCE(hco_city, ''), ', ',
                   COALESCE(hco_state, ''), ', ',
                   COALESCE(hco_postal_cd_prim, '')
               ), ''
           ) AS address`

// HCP360Filters are the filters accepted by the HCP 360 dataset
type HCP360Filters struct {
	HCPName string
	RefNPI  string
}

// HCP360FiltersFromQuery reads the filters from a query string
func HCP360FiltersFromQuery(query url.Values) HCP360Filters {
	return HCP360Filters{
		HCPName: h.GetQueryParam(query, "hcp_name"),
		RefNPI:  h.GetQueryParam(query, "ref_npi"),
	}
}

// CacheKey returns the cache key for this filter combination
func (f HCP360Filters) CacheKey() string {
	return cacheKey(dsHCP360,
		keyPart{"hcp_name", f.HCPName},
		keyPart{"ref_npi", f.RefNPI},
	)
}

// Producer returns the unit of work that computes this dataset
func (f HCP360Filters) Producer() cache.Producer {
	return func() (cache.Records, error) {
		query, args := buildHCP360Query(f)
		return runRecordsQuery(query, args...)
	}
}

func buildHCP360Query(f HCP360Filters) (string, []interface{}) {
	query := `
SELECT DISTINCT hcp_id, zolg_prescriber, zolgensma_iv_target, kol,
       patient_id, drug_name, age_group, final_spec, hcp_segment,
       hcp_name, hco_mdm_name,` + addressColumn + `,
       ref_npi, ref_name, congress_contributions, publications,
       clinical_trials
  FROM product_landing.zolg_master_v2
 WHERE 1=1`

	var args []interface{}
	if f.HCPName != "" {
		args = append(args, f.HCPName)
		query += fmt.Sprintf(`
   AND hcp_name = $%d`, len(args))
	}
	if f.RefNPI != "" {
		args = append(args, f.RefNPI)
		query += fmt.Sprintf(`
   AND ref_npi = $%d`, len(args))
	}

	return query, args
}

// HCO360Filters are the filters accepted by the HCO 360 dataset
type HCO360Filters struct {
	HCPName      string
	RefNPI       string
	HCOMDM       string
	RefHCONPIMDM string
}

// HCO360FiltersFromQuery reads the filters from a query string
func HCO360FiltersFromQuery(query url.Values) HCO360Filters {
	return HCO360Filters{
		HCPName:      h.GetQueryParam(query, "hcp_name"),
		RefNPI:       h.GetQueryParam(query, "ref_npi"),
		HCOMDM:       h.GetQueryParam(query, "hco_mdm"),
		RefHCONPIMDM: h.GetQueryParam(query, "ref_hco_npi_mdm"),
	}
}

// CacheKey returns the cache key for this filter combination
func (f HCO360Filters) CacheKey() string {
	return cacheKey(dsHCO360,
		keyPart{"hcp_name", f.HCPName},
		keyPart{"ref_npi", f.RefNPI},
		keyPart{"hco_mdm", f.HCOMDM},
		keyPart{"ref_hco_npi_mdm", f.RefHCONPIMDM},
	)
}

// Producer returns the unit of work that computes this dataset
func (f HCO360Filters) Producer() cache.Producer {
	return func() (cache.Records, error) {
		query, args := buildHCO360Query(f)
		return runRecordsQuery(query, args...)
	}
}

func buildHCO360Query(f HCO360Filters) (string, []interface{}) {
	query := `
SELECT DISTINCT hcp_id, zolg_prescriber, zolgensma_iv_target, kol,
       patient_id, drug_name, age_group, final_spec, hcp_segment,
       hcp_name, hco_mdm, hco_mdm_name,` + addressColumn + `,
       ref_npi, ref_name, congress_contributions, publications,
       clinical_trials, hco_grouping, hco_mdm_tier, account_setting_type,
       ref_hco_npi_mdm
  FROM product_landing.zolg_master_v2
 WHERE 1=1`

	var args []interface{}
	appendClause := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		query += fmt.Sprintf(`
   AND %s = $%d`, column, len(args))
	}

	appendClause("hcp_name", f.HCPName)
	appendClause("ref_npi", f.RefNPI)
	appendClause("hco_mdm", f.HCOMDM)
	appendClause("ref_hco_npi_mdm", f.RefHCONPIMDM)

	return query, args
}
