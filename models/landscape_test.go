package models

import (
	"strings"
	"testing"
)

func TestBuildHCPLandscapeQueryUnfiltered(t *testing.T) {
	query, args := buildHCPLandscapeQuery(HCPLandscapeFilters{})

	if len(args) != 0 {
		t.Errorf("Unfiltered query has %d args, expected 0", len(args))
	}
	if strings.Contains(query, "WHERE") {
		t.Error("Unfiltered query contains a WHERE clause")
	}
}

func TestBuildHCPLandscapeQueryFiltered(t *testing.T) {
	query, args := buildHCPLandscapeQuery(HCPLandscapeFilters{
		Year: "2024",
		Drug: "ZOLGENSMA",
	})

	if len(args) != 2 {
		t.Fatalf("Query has %d args, expected 2", len(args))
	}
	if args[0] != "2024" || args[1] != "ZOLGENSMA" {
		t.Errorf("Args = %v, expected [2024 ZOLGENSMA]", args)
	}
	if !strings.Contains(query, "year = $1") {
		t.Error("Query is missing the year clause bound to $1")
	}
	if !strings.Contains(query, "drug_name = $2") {
		t.Error("Query is missing the drug_name clause bound to $2")
	}
	if strings.Contains(query, "age_group =") {
		t.Error("Query contains a clause for the unset age filter")
	}
}

func TestBuildHCOLandscapeQueryAllFilters(t *testing.T) {
	query, args := buildHCOLandscapeQuery(HCOLandscapeFilters{
		Year:              "2024",
		AgeGroup:          "0-2",
		DrugName:          "ZOLGENSMA",
		ZolgPrescriber:    "Y",
		ZolgensmaIVTarget: "Y",
		KOL:               "N",
		HCPSegment:        "HIGH",
		HCOState:          "TX",
	})

	if len(args) != 8 {
		t.Fatalf("Query has %d args, expected 8", len(args))
	}
	if !strings.Contains(query, "hco_state = $8") {
		t.Error("Query is missing the hco_state clause bound to $8")
	}
	if !strings.Contains(query, "WHERE 1=1") {
		t.Error("Query is missing the WHERE 1=1 base")
	}
}

func TestBuildHCO360Query(t *testing.T) {
	query, args := buildHCO360Query(HCO360Filters{
		HCOMDM: "HCO123",
	})

	if len(args) != 1 {
		t.Fatalf("Query has %d args, expected 1", len(args))
	}
	if !strings.Contains(query, "hco_mdm = $1") {
		t.Error("Query is missing the hco_mdm clause bound to $1")
	}
	if !strings.Contains(query, "AS address") {
		t.Error("Query is missing the assembled address column")
	}

	query, args = buildHCO360Query(HCO360Filters{})
	if len(args) != 0 {
		t.Errorf("Unfiltered query has %d args, expected 0", len(args))
	}
	if strings.Contains(query, "AND") {
		t.Error("Unfiltered query contains filter clauses")
	}
}
