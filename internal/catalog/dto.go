package catalog

import (
	"strings"

	"github.com/calzalindo/catalog-backend/internal/pricing"
	"github.com/calzalindo/catalog-backend/pkg/db/models"
)

// Sort names a catalog ordering mode.
type Sort string

const (
	SortNewest    Sort = "nuevos"
	SortStockAsc  Sort = "stock_asc"
	SortPriceAsc  Sort = "precio_asc"
	SortPriceDesc Sort = "precio_desc"
	SortName      Sort = "nombre"
)

// ParseSort maps raw input onto a known sort mode, defaulting to newest.
func ParseSort(value string) Sort {
	switch Sort(strings.TrimSpace(value)) {
	case SortStockAsc:
		return SortStockAsc
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortName:
		return SortName
	default:
		return SortNewest
	}
}

// Query enumerates every recognized catalog filter and its effect.
type Query struct {
	Search       string
	Department   string
	Subcategory  string
	Brand        string
	Size         string
	PriceMin     *float64
	PriceMax     *float64
	PhotoMissing bool
	Sort         Sort
	Limit        int
}

// Facets holds the distinct values used to populate filter dropdowns.
type Facets struct {
	Subcategories []string `json:"subrubros"`
	Brands        []string `json:"marcas"`
	Sizes         []string `json:"talles"`
}

// ProductDTO is the catalog wire shape for one SKU row.
type ProductDTO struct {
	ID          int     `json:"id"`
	Code        int     `json:"codigo"`
	SynonymCode *int    `json:"codigo_sinonimo,omitempty"`
	FamilyID    *string `json:"familia_id"`
	Name        string  `json:"nombre"`
	Color       *string `json:"color"`
	Size        *string `json:"talla"`
	Brand       *string `json:"marca_descripcion"`
	Department  string  `json:"rubro"`
	Subcategory *string `json:"subrubro_nombre"`
	ListPrice   float64 `json:"precio_lista"`
	Stock       int     `json:"stock_disponible"`
	ImageURL    *string `json:"imagen_url"`
}

func toProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Code:        p.Code,
		SynonymCode: p.SynonymCode,
		FamilyID:    p.FamilyID,
		Name:        p.Name,
		Color:       p.Color,
		Size:        p.Size,
		Brand:       p.Brand,
		Department:  p.Department,
		Subcategory: p.Subcategory,
		ListPrice:   p.ListPriceFloat(),
		Stock:       p.AvailableStock,
		ImageURL:    p.ImageURL,
	}
}

// SizeStock is one size within a ColorVariant.
type SizeStock struct {
	Size  string `json:"talla"`
	Stock int    `json:"stock"`
	Code  int    `json:"codigo"`
}

// ColorVariant is one color's slice of a Family.
type ColorVariant struct {
	Color    string      `json:"color"`
	ImageURL *string     `json:"imagen_url"`
	Code     int         `json:"codigo"`
	Sizes    []SizeStock `json:"talles"`
}

// Family groups every color/size variant of one design. It is derived per
// request and never persisted.
type Family struct {
	FamilyID    string          `json:"familia_id"`
	Name        string          `json:"nombre"`
	Brand       *string         `json:"marca_descripcion"`
	Department  string          `json:"rubro"`
	Subcategory *string         `json:"subrubro_nombre"`
	ListPrice   float64         `json:"precio_lista"`
	Prices      *pricing.Prices `json:"precios,omitempty"`
	Variants    []*ColorVariant `json:"variantes"`
}
