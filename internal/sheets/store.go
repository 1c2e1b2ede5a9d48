// Package sheets talks to the spreadsheet that holds the catalog and the delivery ledger.
// Nothing here caches or locks across calls; every call reaches the backend.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Row is one catalog row keyed by its header cell.
type Row map[string]any

type CatalogSource interface {
	// FetchAll returns the whole catalog sheet, one Row per data row.
	FetchAll(ctx context.Context) ([]Row, error)
}

// Ledger is a writable handle on the delivery sheet. Row and column numbers start at 1.
type Ledger interface {
	AppendRow(ctx context.Context, values []any) error
	// FindRow returns the first data row whose cell in column col equals value.
	// The header row is never matched.
	FindRow(ctx context.Context, col int, value string) (int, error)
	UpdateCell(ctx context.Context, row, col int, value any) error
}

type Store interface {
	CatalogSource
	// OpenLedger returns the ledger sheet, creating it with the fixed header when missing.
	OpenLedger(ctx context.Context) (Ledger, error)
}

// rowsToRecords turns a header row plus data rows into Rows.
// Missing trailing cells read as "" and fully blank rows are dropped.
func rowsToRecords(values [][]any) []Row {
	if len(values) == 0 {
		return []Row{}
	}

	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = cellString(h)
	}

	out := make([]Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		if isBlankRow(raw) {
			continue
		}
		row := make(Row, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(raw) && raw[i] != nil {
				row[key] = raw[i]
			} else {
				row[key] = ""
			}
		}
		out = append(out, row)
	}
	return out
}

func isBlankRow(raw []any) bool {
	for _, v := range raw {
		if strings.TrimSpace(cellString(v)) != "" {
			return false
		}
	}
	return true
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
