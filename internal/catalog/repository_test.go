package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/calzalindo/catalog-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return NewRepository(conn)
}

func seed(t *testing.T, repo *Repository, rows ...models.Product) {
	t.Helper()
	for i := range rows {
		require.NoError(t, repo.db.Create(&rows[i]).Error)
	}
}

func TestSearch_EligibilityScope(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "VISIBLE", Department: "DAMAS", AvailableStock: 3},
		models.Product{Code: 2, Name: "SIN STOCK", Department: "DAMAS", AvailableStock: 0},
		models.Product{Code: 3, Name: "RUBRO RARO", Department: "ACCESORIOS", AvailableStock: 5},
	)

	products, err := repo.Search(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "VISIBLE", products[0].Name)
}

func TestSearch_DepartmentReplacesScope(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "DAMA", Department: "DAMAS", AvailableStock: 1},
		models.Product{Code: 2, Name: "HOMBRE", Department: "HOMBRES", AvailableStock: 1},
	)

	products, err := repo.Search(context.Background(), Query{Department: "HOMBRES"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "HOMBRE", products[0].Name)

	// "all" keeps the full valid-department scope.
	products, err = repo.Search(context.Background(), Query{Department: "all"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestSearch_TextAndPriceFilters(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "ZAPATILLA LONA", Brand: strPtr("FLEXY"), Department: "DAMAS", AvailableStock: 1, ListPrice: price(15000)},
		models.Product{Code: 2, Name: "BOTA CUERO", Brand: strPtr("RINGO"), Department: "DAMAS", AvailableStock: 1, ListPrice: price(45000)},
		models.Product{Code: 3, Name: "SANDALIA", Brand: strPtr("FLEXY"), Department: "DAMAS", AvailableStock: 1, ListPrice: price(9000)},
	)
	ctx := context.Background()

	products, err := repo.Search(ctx, Query{Search: "zapatilla"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].Code)

	// Search also matches the brand column.
	products, err = repo.Search(ctx, Query{Search: "flexy"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	min, max := 10000.0, 50000.0
	products, err = repo.Search(ctx, Query{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.Search(ctx, Query{Brand: "RINGO"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].Code)
}

func TestSearch_Ordering(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "BBB", Department: "DAMAS", AvailableStock: 5, ListPrice: price(30000)},
		models.Product{Code: 2, Name: "AAA", Department: "DAMAS", AvailableStock: 1, ListPrice: price(10000)},
		models.Product{Code: 3, Name: "CCC", Department: "DAMAS", AvailableStock: 3, ListPrice: price(20000)},
	)
	ctx := context.Background()

	codes := func(products []models.Product) []int {
		out := make([]int, 0, len(products))
		for _, p := range products {
			out = append(out, p.Code)
		}
		return out
	}

	products, err := repo.Search(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, codes(products), "default is newest first")

	products, err = repo.Search(ctx, Query{Sort: SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, codes(products))

	products, err = repo.Search(ctx, Query{Sort: SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, codes(products))

	products, err = repo.Search(ctx, Query{Sort: SortStockAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, codes(products))

	products, err = repo.Search(ctx, Query{Sort: SortName})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, codes(products))
}

func TestSearch_PhotoMissingScope(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "SIN URL", Department: "DAMAS", AvailableStock: 1},
		models.Product{Code: 2, Name: "URL VACIA", Department: "DAMAS", AvailableStock: 1, ImageURL: strPtr("")},
		models.Product{Code: 3, Name: "PLACEHOLDER", Department: "DAMAS", AvailableStock: 1, ImageURL: strPtr("/img/NO_IMAGE.png")},
		models.Product{Code: 4, Name: "SUFIJO CERO", Department: "DAMAS", AvailableStock: 1, ImageURL: strPtr("/fotos/000000000001.jpg")},
		models.Product{Code: 5, Name: "SECUENCIA CERO", Department: "DAMAS", AvailableStock: 1, ImageURL: strPtr("/fotos/x0000000000000y.jpg")},
		models.Product{Code: 6, Name: "CON FOTO", Department: "DAMAS", AvailableStock: 1, ImageURL: strPtr("/fotos/real.jpg")},
	)

	products, err := repo.Search(context.Background(), Query{PhotoMissing: true})
	require.NoError(t, err)
	require.Len(t, products, 5)
	for _, p := range products {
		assert.NotEqual(t, 6, p.Code)
	}
}

func TestSearch_Limit(t *testing.T) {
	repo := newTestRepo(t)
	for i := 1; i <= 5; i++ {
		seed(t, repo, models.Product{Code: i, Name: fmt.Sprintf("P%d", i), Department: "DAMAS", AvailableStock: 1})
	}

	products, err := repo.Search(context.Background(), Query{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFacets(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		models.Product{Code: 1, Name: "A", Department: "DAMAS", AvailableStock: 1, Subcategory: strPtr("ZAPATILLAS"), Brand: strPtr("RINGO"), Size: strPtr("38")},
		models.Product{Code: 2, Name: "B", Department: "DAMAS", AvailableStock: 1, Subcategory: strPtr("BOTAS"), Brand: strPtr("FLEXY"), Size: strPtr("9.5")},
		models.Product{Code: 3, Name: "C", Department: "DAMAS", AvailableStock: 1, Subcategory: strPtr("BOTAS"), Brand: strPtr("FLEXY"), Size: strPtr("40")},
		models.Product{Code: 4, Name: "D", Department: "DAMAS", AvailableStock: 0, Subcategory: strPtr("SANDALIAS"), Brand: strPtr("OCULTA"), Size: strPtr("36")},
	)

	facets, err := repo.Facets(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"BOTAS", "ZAPATILLAS"}, facets.Subcategories)
	assert.Equal(t, []string{"FLEXY", "RINGO"}, facets.Brands)
	// Sizes sort numerically, not lexically.
	assert.Equal(t, []string{"9.5", "38", "40"}, facets.Sizes)
}

func TestSortSizes_StringFallback(t *testing.T) {
	sizes := []string{"UNICO", "40", "38"}
	sortSizes(sizes)
	assert.Equal(t, []string{"38", "40", "UNICO"}, sizes)
}
