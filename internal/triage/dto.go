package triage

import "github.com/calzalindo/catalog-backend/pkg/db/models"

// ProductRow is the flat admin projection of one SKU used by the
// no-price and no-brand listings.
type ProductRow struct {
	ID          int     `json:"id"`
	Code        int     `json:"codigo"`
	Name        string  `json:"nombre"`
	Brand       *string `json:"marca_descripcion"`
	Department  string  `json:"rubro"`
	Subcategory *string `json:"subrubro_nombre"`
	Stock       int     `json:"stock_disponible"`
	ListPrice   float64 `json:"precio_lista"`
	FamilyID    *string `json:"familia_id"`
}

func toProductRow(p models.Product) ProductRow {
	return ProductRow{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Brand:       p.Brand,
		Department:  p.Department,
		Subcategory: p.Subcategory,
		Stock:       p.AvailableStock,
		ListPrice:   p.ListPriceFloat(),
		FamilyID:    p.FamilyID,
	}
}

// SizeCount pairs a size label with its available stock.
type SizeCount struct {
	Size  *string `json:"talla"`
	Stock int     `json:"stock"`
}

// NoPhotoFamily summarizes one family whose rows lack a usable photo.
// The size list is capped so the triage view stays scannable.
type NoPhotoFamily struct {
	FamilyID   string      `json:"familia_id"`
	Name       string      `json:"nombre"`
	Brand      *string     `json:"marca"`
	Department string      `json:"rubro"`
	ImageURL   *string     `json:"imagen_url"`
	Colors     []string    `json:"colores"`
	Sizes      []SizeCount `json:"talles"`
}

// NoPhotoReport is the photo-triage response.
type NoPhotoReport struct {
	Total    int              `json:"total"`
	Families []*NoPhotoFamily `json:"productos"`
}

// LowStockColor lists the remaining sizes of one color.
type LowStockColor struct {
	Color string      `json:"color"`
	Sizes []SizeCount `json:"talles"`
}

// LowStockFamily summarizes one family running out of stock.
type LowStockFamily struct {
	FamilyID   string           `json:"familia_id"`
	Name       string           `json:"nombre"`
	Brand      *string          `json:"marca"`
	Department string           `json:"rubro"`
	ListPrice  float64          `json:"precio_lista"`
	Colors     []*LowStockColor `json:"colores"`
	StockTotal int              `json:"stockTotal"`
	StockMin   int              `json:"stockMinimo"`
}

// LowStockReport is the stock-triage response. Total counts families,
// TotalProducts the underlying SKU rows.
type LowStockReport struct {
	Total         int               `json:"total"`
	TotalProducts int               `json:"totalProductos"`
	Families      []*LowStockFamily `json:"productos"`
}

// NoPriceReport lists in-stock rows with a missing or zero list price.
type NoPriceReport struct {
	Products []ProductRow `json:"productos"`
}

// NoBrandReport lists in-stock rows with no brand.
type NoBrandReport struct {
	Total    int          `json:"total"`
	Products []ProductRow `json:"productos"`
}

// Stats is the admin dashboard counter block.
type Stats struct {
	TotalProducts    int64 `json:"totalProductos"`
	ProductsInStock  int64 `json:"productosConStock"`
	ProductsNoPhoto  int64 `json:"productosSinFoto"`
	ProductsLowStock int64 `json:"productosStockBajo"`
	ProductsNoPrice  int64 `json:"productosSinPrecio"`
	ProductsNoBrand  int64 `json:"productosSinMarca"`
	TotalFamilies    int64 `json:"totalFamilias"`
}
