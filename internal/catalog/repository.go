package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/calzalindo/catalog-backend/pkg/db/models"
	"github.com/calzalindo/catalog-backend/pkg/enums"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// photoMissingPatterns are the lowercase substrings that mark an image URL
// as a known placeholder rather than a real photo.
var photoMissingPatterns = []string{"no_image", "no-image", "placeholder", "sin_foto", "sin-foto"}

// legacyZeroSuffixes flag generated-looking URLs imported from the old
// image pipeline.
const (
	legacyZeroSuffix   = "000000000001.jpg"
	legacyZeroSequence = "0000000000000"
)

// Repository runs catalog reads against the store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// scopeEligible keeps customer-facing views to in-stock rows in a valid
// department. A department filter replaces the IN clause.
func scopeEligible(tx *gorm.DB, department string) *gorm.DB {
	tx = tx.Where("stock_disponible > ?", 0)
	if department != "" && department != "all" {
		return tx.Where("rubro = ?", department)
	}
	return tx.Where("rubro IN ?", enums.ValidDepartmentValues())
}

// ScopePhotoMissing narrows rows to those without a usable photo.
func ScopePhotoMissing(tx *gorm.DB) *gorm.DB {
	conditions := []string{"imagen_url IS NULL", "imagen_url = ''"}
	args := []any{}
	for _, pattern := range photoMissingPatterns {
		conditions = append(conditions, "LOWER(imagen_url) LIKE ?")
		args = append(args, "%"+pattern+"%")
	}
	conditions = append(conditions, "imagen_url LIKE ?", "imagen_url LIKE ?")
	args = append(args, "%"+legacyZeroSuffix, "%"+legacyZeroSequence+"%")
	return tx.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func (r *Repository) applyFilters(tx *gorm.DB, q Query) *gorm.DB {
	tx = scopeEligible(tx, q.Department)

	if q.Subcategory != "" {
		tx = tx.Where("subrubro_nombre = ?", q.Subcategory)
	}
	if q.Brand != "" {
		tx = tx.Where("marca_descripcion = ?", q.Brand)
	}
	if q.Size != "" {
		tx = tx.Where("talla = ?", q.Size)
	}
	if q.PriceMin != nil {
		tx = tx.Where("precio_lista >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		tx = tx.Where("precio_lista <= ?", *q.PriceMax)
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"(LOWER(nombre) LIKE ? OR LOWER(marca_descripcion) LIKE ? OR LOWER(rubro) LIKE ? OR LOWER(subrubro_nombre) LIKE ?)",
			like, like, like, like,
		)
	}
	if q.PhotoMissing {
		tx = ScopePhotoMissing(tx)
	}
	return tx
}

func orderClause(mode Sort) string {
	switch mode {
	case SortStockAsc:
		return "stock_disponible ASC, id DESC"
	case SortPriceAsc:
		return "precio_lista ASC, id DESC"
	case SortPriceDesc:
		return "precio_lista DESC, id DESC"
	case SortName:
		return "nombre ASC, id DESC"
	default:
		return "id DESC"
	}
}

// Search returns the SKU rows matching the query, ordered and capped.
func (r *Repository) Search(ctx context.Context, q Query) ([]models.Product, error) {
	var products []models.Product
	tx := r.applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), q).
		Order(orderClause(q.Sort))
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Facets returns the distinct subcategory/brand/size values matching the
// query. The three projections run concurrently like the rest of the
// aggregate reads.
func (r *Repository) Facets(ctx context.Context, q Query) (*Facets, error) {
	facets := &Facets{
		Subcategories: []string{},
		Brands:        []string{},
		Sizes:         []string{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.applyFilters(r.db.WithContext(gctx).Model(&models.Product{}), q).
			Where("subrubro_nombre IS NOT NULL").
			Distinct().
			Order("subrubro_nombre ASC").
			Pluck("subrubro_nombre", &facets.Subcategories).Error
	})
	g.Go(func() error {
		return r.applyFilters(r.db.WithContext(gctx).Model(&models.Product{}), q).
			Where("marca_descripcion IS NOT NULL").
			Distinct().
			Order("marca_descripcion ASC").
			Pluck("marca_descripcion", &facets.Brands).Error
	})
	g.Go(func() error {
		return r.applyFilters(r.db.WithContext(gctx).Model(&models.Product{}), q).
			Where("talla IS NOT NULL").
			Distinct().
			Pluck("talla", &facets.Sizes).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortSizes(facets.Sizes)
	return facets, nil
}

// sortSizes orders size labels numerically when both parse, falling back
// to string comparison otherwise.
func sortSizes(sizes []string) {
	sort.SliceStable(sizes, func(i, j int) bool {
		a, errA := strconv.ParseFloat(strings.TrimSpace(sizes[i]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(sizes[j]), 64)
		if errA != nil || errB != nil {
			return sizes[i] < sizes[j]
		}
		return a < b
	})
}
