package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/calzalindo/catalog-backend/internal/pricing"
	"github.com/calzalindo/catalog-backend/pkg/config"
	"github.com/calzalindo/catalog-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRow(code int, familyID, color, size string, stock int, listPrice float64) models.Product {
	row := models.Product{
		Code:           code,
		FamilyID:       strPtr(familyID),
		Name:           fmt.Sprintf("%d %s ZAPATILLA", code, color),
		Color:          strPtr(color),
		Size:           strPtr(size),
		Department:     "DAMAS",
		AvailableStock: stock,
	}
	if listPrice > 0 {
		row.ListPrice = price(listPrice)
	}
	return row
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := newTestRepo(t)
	pricer := pricing.NewEngine(config.PricingConfig{
		CashCoefficient:  0.6645118001522601,
		DebitCoefficient: 0.7342675389359863,
	})
	svc, err := NewService(repo, pricer, config.CatalogConfig{DefaultLimit: 2000, MaxLimit: 5000})
	require.NoError(t, err)
	return svc, repo
}

func TestNewService_Validation(t *testing.T) {
	pricer := pricing.NewEngine(config.PricingConfig{})

	_, err := NewService(nil, pricer, config.CatalogConfig{})
	assert.Error(t, err)

	_, err = NewService(&Repository{}, nil, config.CatalogConfig{})
	assert.Error(t, err)
}

func TestListProducts_MapsRows(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, productRow(1, "F1", "NEGRO", "38", 2, 19999))

	products, err := svc.ListProducts(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, products, 1)

	dto := products[0]
	assert.Equal(t, 1, dto.Code)
	assert.Equal(t, "F1", *dto.FamilyID)
	assert.Equal(t, float64(19999), dto.ListPrice)
	assert.Equal(t, 2, dto.Stock)
}

func TestListFamilies_AttachesPrices(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo,
		productRow(1, "F1", "NEGRO", "38", 2, 49998.95),
		productRow(1, "F1", "NEGRO", "39", 0, 49998.95),
	)

	families, err := svc.ListFamilies(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, families, 1)

	family := families[0]
	require.NotNil(t, family.Prices)
	assert.Equal(t, float64(49999), family.Prices.List)
	assert.Equal(t, float64(33999), family.Prices.Cash)
	assert.Equal(t, float64(36999), family.Prices.Debit)

	require.Len(t, family.Variants, 1)
	require.Len(t, family.Variants[0].Sizes, 1)
	assert.Equal(t, "38", family.Variants[0].Sizes[0].Size)
}

func TestListFamilies_NoPriceNoTiers(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, productRow(1, "F1", "NEGRO", "38", 2, 0))

	families, err := svc.ListFamilies(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Nil(t, families[0].Prices)
}

func TestListFacets_PassesThrough(t *testing.T) {
	svc, repo := newTestService(t)
	seed(t, repo, productRow(1, "F1", "NEGRO", "38", 2, 19999))

	facets, err := svc.ListFacets(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"38"}, facets.Sizes)
}
