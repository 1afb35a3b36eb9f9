package models

import (
	"fmt"
	"net/url"

	"github.com/Bennybas/hcp-hco-backend/cache"
	h "github.com/Bennybas/hcp-hco-backend/helpers"
)

// The landscape datasets back /fetch-hcplandscape and
// /fetch-hcolandscape: quarterly activity projections of zolg_master_v2
// narrowed by whichever filters the caller supplies.

// HCPLandscapeFilters are the filters accepted by the HCP landscape
// dataset
type HCPLandscapeFilters struct {
	Year string
	Age  string
	Drug string
}

// HCPLandscapeFiltersFromQuery reads the filters from a query string. A
// non-numeric year is ignored rather than rejected, which is the
// behaviour the frontend has always relied on.
func HCPLandscapeFiltersFromQuery(query url.Values) HCPLandscapeFilters {
	f := HCPLandscapeFilters{
		Year: h.GetQueryParam(query, "year"),
		Age:  h.GetQueryParam(query, "age"),
		Drug: h.GetQueryParam(query, "drug"),
	}
	if !h.IsNumeric(f.Year) {
		f.Year = ""
	}
	return f
}

// CacheKey returns the cache key for this filter combination
func (f HCPLandscapeFilters) CacheKey() string {
	return cacheKey(dsHCPLandscape,
		keyPart{"year", f.Year},
		keyPart{"age", f.Age},
		keyPart{"drug", f.Drug},
	)
}

// Producer returns the unit of work that computes this dataset
func (f HCPLandscapeFilters) Producer() cache.Producer {
	return func() (cache.Records, error) {
		query, args := buildHCPLandscapeQuery(f)
		return runRecordsQuery(query, args...)
	}
}

func buildHCPLandscapeQuery(f HCPLandscapeFilters) (string, []interface{}) {
	query := `
WITH a AS (
    SELECT DISTINCT
           hcp_id AS rend_npi,
           hcp_name,
           ref_npi,
           ref_name,
           patient_id,
           EXTRACT(QUARTER FROM to_date(month, 'DD-MM-YYYY')) AS quarter,
           split_part(mth, '_', 1) AS year,
           drug_name,
           age_group,
           final_spec,
           hcp_segment,
           hco_mdm_name
      FROM product_landing.zolg_master_v2
)
SELECT DISTINCT * FROM a`

	var (
		clauses []string
		args    []interface{}
	)
	if f.Year != "" {
		args = append(args, f.Year)
		clauses = append(clauses, fmt.Sprintf("year = $%d", len(args)))
	}
	if f.Age != "" {
		args = append(args, f.Age)
		clauses = append(clauses, fmt.Sprintf("age_group = $%d", len(args)))
	}
	if f.Drug != "" {
		args = append(args, f.Drug)
		clauses = append(clauses, fmt.Sprintf("drug_name = $%d", len(args)))
	}

	for i, clause := range clauses {
		if i == 0 {
			query += `
 WHERE ` + clause
		} else {
			query += `
   AND ` + clause
		}
	}

	return query, args
}

// HCOLandscapeFilters are the filters accepted by the HCO landscape
// dataset
type HCOLandscapeFilters struct {
	Year              string
	AgeGroup          string
	DrugName          string
	ZolgPrescriber    string
	ZolgensmaIVTarget string
	KOL               string
	HCPSegment        string
	HCOState          string
}

// HCOLandscapeFiltersFromQuery reads the filters from a query string
func HCOLandscapeFiltersFromQuery(query url.Values) HCOLandscapeFilters {
	return HCOLandscapeFilters{
		Year:              h.GetQueryParam(query, "year"),
		AgeGroup:          h.GetQueryParam(query, "age_group"),
		DrugName:          h.GetQueryParam(query, "drug_name"),
		ZolgPrescriber:    h.GetQueryParam(query, "zolg_prescriber"),
		ZolgensmaIVTarget: h.GetQueryParam(query, "zolgensma_iv_target"),
		KOL:               h.GetQueryParam(query, "kol"),
		HCPSegment:        h.GetQueryParam(query, "hcp_segment"),
		HCOState:          h.GetQueryParam(query, "hco_state"),
	}
}

// CacheKey returns the cache key for this filter combination
func (f HCOLandscapeFilters) CacheKey() string {
	return cacheKey(dsHCOLandscape,
		keyPart{"year", f.Year},
		keyPart{"age_group", f.AgeGroup},
		keyPart{"drug_name", f.DrugName},
		keyPart{"zolg_prescriber", f.ZolgPrescriber},
		keyPart{"zolgensma_iv_target", f.ZolgensmaIVTarget},
		keyPart{"kol", f.KOL},
		keyPart{"hcp_segment", f.HCPSegment},
		keyPart{"hco_state", f.HCOState},
	)
}

// Producer returns the unit of work that computes this dataset
func (f HCOLandscapeFilters) Producer() cache.Producer {
	return func() (cache.Records, error) {
		query, args := buildHCOLandscapeQuery(f)
		return runRecordsQuery(query, args...)
	}
}

func buildHCOLandscapeQuery(f HCOLandscapeFilters) (string, []interface{}) {
	query := `
WITH a AS (
    SELECT DISTINCT
           hco_mdm AS rend_hco_npi,
           hco_mdm_name,
           ref_hco_npi_mdm,
           ref_organization_mdm_name,
           patient_id,
           EXTRACT(QUARTER FROM to_date(month, 'DD-MM-YYYY')) AS quarter,
           split_part(mth, '_', 1) AS year,
           drug_name,
           age_group,
           zolg_prescriber,
           zolgensma_iv_target,
           kol,
           hcp_segment,
           hco_mdm_tier,
           hco_grouping,
           hco_state
      FROM product_landing.zolg_master_v2
)
SELECT DISTINCT * FROM a
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

	appendClause("year", f.Year)
	appendClause("age_group", f.AgeGroup)
	appendClause("drug_name", f.DrugName)
	appendClause("zolg_prescriber", f.ZolgPrescriber)
	appendClause("zolgensma_iv_target", f.ZolgensmaIVTarget)
	appendClause("kol", f.KOL)
	appendClause("hcp_segment", f.HCPSegment)
	appendClause("hco_state", f.HCOState)

	return query, args
}
