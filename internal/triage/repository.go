package triage

import (
	"context"

	"github.com/calzalindo/catalog-backend/pkg/db/models"
	"github.com/calzalindo/catalog-backend/pkg/enums"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Listing caps keep the triage views bounded on large stores.
const (
	noPhotoTake  = 200
	lowStockTake = 1000
	noBrandTake  = 500
)

// lowStockThreshold marks a SKU as running out.
const lowStockThreshold = 3

// Repository runs the admin triage reads.
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

func (r *Repository) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Product{})
}

func scopeDepartments(tx *gorm.DB) *gorm.DB {
	return tx.Where("rubro IN ?", enums.ValidDepartmentValues())
}

// suspectPhotoCondition matches URLs that are absent or generated-looking.
const suspectPhotoCondition = "(imagen_url IS NULL OR imagen_url = '' " +
	"OR imagen_url LIKE '%no_image%' OR imagen_url LIKE '%placeholder%' " +
	"OR imagen_url LIKE '%000000000001.jpg' OR imagen_url LIKE '%0000000000000%')"

// NoPhoto returns the newest in-stock rows whose image URL is missing or
// looks generated.
func (r *Repository) NoPhoto(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := scopeDepartments(r.model(ctx)).
		Where("stock_disponible > ?", 0).
		Where(suspectPhotoCondition).
		Order("id DESC").
		Limit(noPhotoTake).
		Find(&products).Error
	return products, err
}

// LowStock returns in-stock rows at or below the threshold, scarcest first.
func (r *Repository) LowStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := scopeDepartments(r.model(ctx)).
		Where("stock_disponible > ? AND stock_disponible <= ?", 0, lowStockThreshold).
		Order("stock_disponible ASC, id DESC").
		Limit(lowStockTake).
		Find(&products).Error
	return products, err
}

// NoPrice returns in-stock rows with a missing or non-positive list price.
func (r *Repository) NoPrice(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.model(ctx).
		Where("stock_disponible > ?", 0).
		Where("(precio_lista IS NULL OR precio_lista <= 0)").
		Order("marca_descripcion ASC, nombre ASC").
		Find(&products).Error
	return products, err
}

// NoBrand returns in-stock rows with no brand, largest stock first.
func (r *Repository) NoBrand(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.model(ctx).
		Where("(marca_descripcion IS NULL OR marca_descripcion = '')").
		Where("stock_disponible > ?", 0).
		Order("stock_disponible DESC").
		Limit(noBrandTake).
		Find(&products).Error
	return products, err
}

// Stats runs the seven dashboard counts concurrently. The no-photo count
// deliberately uses a narrower URL check than the listing, and the
// low-stock count spans every department.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.model(gctx).Count(&stats.TotalProducts).Error
	})
	g.Go(func() error {
		return r.model(gctx).
			Where("stock_disponible > ?", 0).
			Count(&stats.ProductsInStock).Error
	})
	g.Go(func() error {
		return r.model(gctx).
			Where("(imagen_url IS NULL OR imagen_url = '' OR imagen_url LIKE '%no_image.png%')").
			Where("stock_disponible > ?", 0).
			Count(&stats.ProductsNoPhoto).Error
	})
	g.Go(func() error {
		return r.model(gctx).
			Where("stock_disponible > ? AND stock_disponible <= ?", 0, lowStockThreshold).
			Count(&stats.ProductsLowStock).Error
	})
	g.Go(func() error {
		return r.model(gctx).
			Where("(precio_lista IS NULL OR precio_lista = 0)").
			Where("stock_disponible > ?", 0).
			Count(&stats.ProductsNoPrice).Error
	})
	g.Go(func() error {
		return r.model(gctx).
			Where("(marca_descripcion IS NULL OR marca_descripcion = '')").
			Where("stock_disponible > ?", 0).
			Count(&stats.ProductsNoBrand).Error
	})
	g.Go(func() error {
		return r.model(gctx).
			Where("familia_id IS NOT NULL").
			Distinct("familia_id").
			Count(&stats.TotalFamilies).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
