package models

import (
	"database/sql"
	"fmt"

	e "github.com/Bennybas/hcp-hco-backend/errors"
	h "github.com/Bennybas/hcp-hco-backend/helpers"

	"github.com/Bennybas/hcp-hco-backend/cache"
)

// runRecordsQuery executes a query against the warehouse and returns
// every row as an ordered slice of column-keyed records. Column sets
// differ per dataset, so rows are scanned dynamically rather than into
// a struct.
func runRecordsQuery(query string, args ...interface{}) (cache.Records, error) {
	db, err := h.GetConnection()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, e.New(
			"models.runRecordsQuery",
			e.QueryFailed,
			fmt.Sprintf("Warehouse query failed: %v", err.Error()),
		)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("rows.Columns() %v", err.Error())
	}

	results := cache.Records{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err = rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("Row parsing error: %v", err.Error())
		}

		record := cache.Record{}
		for i, col := range cols {
			record[col] = normaliseValue(values[i])
		}
		results = append(results, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("Error fetching rows: %v", err.Error())
	}

	return results, nil
}

// normaliseValue makes scanned values JSON-friendly: byte slices become
// strings, NULL stays nil, everything else passes through.
func normaliseValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case sql.RawBytes:
		return string(val)
	default:
		return v
	}
}
