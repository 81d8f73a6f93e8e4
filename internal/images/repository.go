package images

import (
	"context"

	"github.com/calzalindo/catalog-backend/internal/catalog"
	"github.com/calzalindo/catalog-backend/pkg/db/models"
	"github.com/calzalindo/catalog-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository runs the image-migration reads and writes.
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

// Candidates returns the distinct SKU codes without a usable image URL
// (absent or a known placeholder), highest stock first, paged by
// offset/limit. Grouping by code keeps the stock ordering legal under
// DISTINCT semantics.
func (r *Repository) Candidates(ctx context.Context, limit, offset int) ([]int, error) {
	var codes []int
	err := catalog.ScopePhotoMissing(r.db.WithContext(ctx).Model(&models.Product{})).
		Where("stock_disponible > ?", 0).
		Where("rubro IN ?", enums.ValidDepartmentValues()).
		Select("codigo").
		Group("codigo").
		Order("MAX(stock_disponible) DESC").
		Offset(offset).
		Limit(limit).
		Pluck("codigo", &codes).Error
	return codes, err
}

// SetImageURLByCode writes the URL onto every row sharing the code and
// returns how many rows changed.
func (r *Repository) SetImageURLByCode(ctx context.Context, code int, imageURL string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("codigo = ?", code).
		Update("imagen_url", imageURL)
	return result.RowsAffected, result.Error
}
