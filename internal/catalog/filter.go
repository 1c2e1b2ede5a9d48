package catalog

import (
	"strings"

	"inventario-backend/internal/models"
	"inventario-backend/internal/sheets"
)

// Query holds the raw (not yet normalized) filter values.
type Query struct {
	City     string
	Category string
	Product  string
	Limit    int
}

// NormalizedQuery is the query after Normalize, echoed back in debug output.
type NormalizedQuery struct {
	City     string `json:"ciudad"`
	Category string `json:"categoria"`
	Product  string `json:"producto"`
	Limit    int    `json:"limit"`
}

type Result struct {
	Query      NormalizedQuery
	Raw        []sheets.Row
	Normalized []models.CatalogRecord
	Items      []models.CatalogRecord
	// Fallback is set when a local city matched nothing and the whole catalog was returned.
	Fallback bool
}

// Project maps a raw sheet row onto the catalog record shape.
func Project(row sheets.Row) models.CatalogRecord {
	price, ok := row[models.CatalogFieldPrice]
	if !ok || price == nil {
		price = 0
	}
	return models.CatalogRecord{
		Name:     strings.TrimSpace(cellText(row[models.CatalogFieldName])),
		Code:     strings.TrimSpace(cellText(row[models.CatalogFieldCode])),
		Price:    price,
		Category: strings.TrimSpace(cellText(row[models.CatalogFieldCategory])),
		City:     strings.TrimSpace(cellText(row[models.CatalogFieldCity])),
		Stock:    row[models.CatalogFieldStock],
	}
}

// Filter runs the catalog pipeline over a snapshot. Order follows the snapshot.
func Filter(rows []sheets.Row, q Query) Result {
	nq := NormalizedQuery{
		City:     Normalize(q.City),
		Category: Normalize(q.Category),
		Product:  Normalize(q.Product),
		Limit:    q.Limit,
	}

	normalized := make([]models.CatalogRecord, 0, len(rows))
	for _, row := range rows {
		normalized = append(normalized, Project(row))
	}

	out := make([]models.CatalogRecord, 0, len(normalized))
	for _, it := range normalized {
		if matches(it, nq) {
			out = append(out, it)
		}
	}

	res := Result{Query: nq, Raw: rows, Normalized: normalized}

	// Yerel şehir için boş sonuç dönmek yerine genel katalog
	if isLocalCity(nq.City) && len(out) == 0 {
		out = append([]models.CatalogRecord(nil), normalized...)
		res.Fallback = true
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}

	res.Items = out
	return res
}

func matches(it models.CatalogRecord, nq NormalizedQuery) bool {
	if !CityMatches(Normalize(it.City), nq.City) {
		return false
	}

	name := Normalize(it.Name)
	if nq.Category != "" {
		if !strings.Contains(Normalize(it.Category), nq.Category) && !strings.Contains(name, nq.Category) {
			return false
		}
	}
	if nq.Product != "" && !strings.Contains(name, nq.Product) {
		return false
	}
	return true
}

// FindByCode returns the first row whose normalized Codigo equals the normalized code.
func FindByCode(rows []sheets.Row, code string) (models.StockInfo, bool) {
	want := Normalize(code)
	for _, row := range rows {
		if NormalizeAny(row[models.CatalogFieldCode]) != want {
			continue
		}
		return models.StockInfo{
			Product: valueOr(row, models.CatalogFieldName, ""),
			Stock:   valueOr(row, models.CatalogFieldStock, ""),
			City:    valueOr(row, models.CatalogFieldCity, ""),
			Price:   valueOr(row, models.CatalogFieldPrice, 0),
		}, true
	}
	return models.StockInfo{}, false
}

func valueOr(row sheets.Row, key string, def any) any {
	if v, ok := row[key]; ok && v != nil {
		return v
	}
	return def
}
