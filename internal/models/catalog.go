package models

// Katalog sayfasındaki başlıklar
const (
	CatalogFieldName     = "Producto"
	CatalogFieldCode     = "Codigo"
	CatalogFieldPrice    = "Precio_Venta"
	CatalogFieldCategory = "Categoria"
	CatalogFieldCity     = "Ciudad"
	CatalogFieldStock    = "Stock_Actual"
)

// CatalogRecord is one catalog row projected into the shape the bot consumes.
// Price and Stock keep the value as read from the sheet (number or text).
type CatalogRecord struct {
	Name     string `json:"nombre"`
	Code     string `json:"codigo"`
	Price    any    `json:"precio"`
	Category string `json:"categoria"`
	City     string `json:"ciudad"`
	Stock    any    `json:"-"`
}

// StockInfo is the stock-by-code answer.
type StockInfo struct {
	Product any `json:"producto"`
	Stock   any `json:"stock"`
	City    any `json:"ciudad"`
	Price   any `json:"precio"`
}
