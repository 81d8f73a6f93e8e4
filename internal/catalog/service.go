package catalog

import (
	"context"
	"fmt"

	"github.com/calzalindo/catalog-backend/internal/pricing"
	"github.com/calzalindo/catalog-backend/pkg/config"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
	"github.com/calzalindo/catalog-backend/pkg/pagination"
)

// Service exposes the customer-facing catalog reads.
type Service interface {
	ListProducts(ctx context.Context, q Query) ([]ProductDTO, error)
	ListFacets(ctx context.Context, q Query) (*Facets, error)
	ListFamilies(ctx context.Context, q Query) ([]*Family, error)
}

type service struct {
	repo   *Repository
	pricer *pricing.Engine
	cfg    config.CatalogConfig
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, pricer *pricing.Engine, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	return &service{repo: repo, pricer: pricer, cfg: cfg}, nil
}

func (s *service) normalize(q Query) Query {
	q.Limit = pagination.NormalizeLimit(q.Limit, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	return q
}

// ListProducts returns the matching SKU rows.
func (s *service) ListProducts(ctx context.Context, q Query) ([]ProductDTO, error) {
	products, err := s.repo.Search(ctx, s.normalize(q))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	return dtos, nil
}

// ListFacets returns distinct filter values for the query.
func (s *service) ListFacets(ctx context.Context, q Query) (*Facets, error) {
	facets, err := s.repo.Facets(ctx, s.normalize(q))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load facets")
	}
	return facets, nil
}

// ListFamilies returns the matching rows grouped into families, each with
// commercial price tiers attached when the family carries a price.
func (s *service) ListFamilies(ctx context.Context, q Query) ([]*Family, error) {
	products, err := s.repo.Search(ctx, s.normalize(q))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}

	families := GroupProducts(products)
	for _, family := range families {
		if family.ListPrice > 0 {
			prices := s.pricer.Compute(family.ListPrice)
			family.Prices = &prices
		}
	}
	return families, nil
}
