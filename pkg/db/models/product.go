package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one sellable SKU row in the legacy store table. One
// design usually spans several rows, one per color/size combination, tied
// together by FamilyID (or by Code when the family link is missing).
type Product struct {
	ID          int     `gorm:"column:id;primaryKey;autoIncrement"`
	Code        int     `gorm:"column:codigo;not null;index"`
	SynonymCode *int    `gorm:"column:codigo_sinonimo"`
	FamilyID    *string `gorm:"column:familia_id;index"`

	Name        string  `gorm:"column:nombre;not null"`
	Brand       *string `gorm:"column:marca_descripcion"`
	Department  string  `gorm:"column:rubro;index"`
	Subcategory *string `gorm:"column:subrubro_nombre"`

	Color *string `gorm:"column:color"`
	Size  *string `gorm:"column:talla"`

	ListPrice      decimal.NullDecimal `gorm:"column:precio_lista;type:numeric(12,2)"`
	AvailableStock int                 `gorm:"column:stock_disponible;not null;default:0"`

	ImageURL *string `gorm:"column:imagen_url"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name used by the store's loaders.
func (Product) TableName() string {
	return "articulos"
}

// ListPriceFloat returns the list price as a float, zero when absent.
func (p Product) ListPriceFloat() float64 {
	if !p.ListPrice.Valid {
		return 0
	}
	f, _ := p.ListPrice.Decimal.Float64()
	return f
}

// HasPrice reports whether the row carries a usable list price.
func (p Product) HasPrice() bool {
	return p.ListPrice.Valid && p.ListPrice.Decimal.IsPositive()
}
