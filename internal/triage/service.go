package triage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/calzalindo/catalog-backend/internal/catalog"
	"github.com/calzalindo/catalog-backend/pkg/db/models"
	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
)

// familyNameWords caps the summary name taken from the first SKU row.
const familyNameWords = 5

// noPhotoSizeCap keeps the per-family size list short in the photo view.
const noPhotoSizeCap = 5

// Service exposes the admin triage reports.
type Service interface {
	NoPhoto(ctx context.Context) (*NoPhotoReport, error)
	LowStock(ctx context.Context) (*LowStockReport, error)
	NoPrice(ctx context.Context) (*NoPriceReport, error)
	NoBrand(ctx context.Context) (*NoBrandReport, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a triage service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("triage repository required")
	}
	return &service{repo: repo}, nil
}

func summaryName(name string) string {
	words := strings.Fields(name)
	if len(words) > familyNameWords {
		words = words[:familyNameWords]
	}
	return strings.Join(words, " ")
}

// NoPhoto groups the suspect rows into families with their colors and a
// capped size list.
func (s *service) NoPhoto(ctx context.Context) (*NoPhotoReport, error) {
	products, err := s.repo.NoPhoto(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: no-photo rows")
	}

	families := make([]*NoPhotoFamily, 0)
	byKey := make(map[string]*NoPhotoFamily)
	seenColors := make(map[string]map[string]bool)

	for _, p := range products {
		key := catalog.FamilyKey(p.FamilyID, p.Code)
		family, ok := byKey[key]
		if !ok {
			family = &NoPhotoFamily{
				FamilyID:   key,
				Name:       summaryName(p.Name),
				Brand:      p.Brand,
				Department: p.Department,
				ImageURL:   p.ImageURL,
				Colors:     []string{},
				Sizes:      []SizeCount{},
			}
			byKey[key] = family
			seenColors[key] = make(map[string]bool)
			families = append(families, family)
		}

		if p.Color != nil && *p.Color != "" && !seenColors[key][*p.Color] {
			seenColors[key][*p.Color] = true
			family.Colors = append(family.Colors, *p.Color)
		}
		if len(family.Sizes) < noPhotoSizeCap {
			family.Sizes = append(family.Sizes, SizeCount{Size: p.Size, Stock: p.AvailableStock})
		}
	}

	return &NoPhotoReport{Total: len(families), Families: families}, nil
}

// LowStock groups the scarce rows into families with per-color sizes and
// aggregate stock figures, scarcest family first.
func (s *service) LowStock(ctx context.Context) (*LowStockReport, error) {
	products, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: low-stock rows")
	}

	families := make([]*LowStockFamily, 0)
	byKey := make(map[string]*LowStockFamily)

	for _, p := range products {
		key := catalog.FamilyKey(p.FamilyID, p.Code)
		family, ok := byKey[key]
		if !ok {
			family = &LowStockFamily{
				FamilyID:   key,
				Name:       summaryName(p.Name),
				Brand:      p.Brand,
				Department: p.Department,
				ListPrice:  p.ListPriceFloat(),
				Colors:     []*LowStockColor{},
				StockMin:   p.AvailableStock,
			}
			byKey[key] = family
			families = append(families, family)
		}

		color := catalog.DefaultColor
		if p.Color != nil && *p.Color != "" {
			color = *p.Color
		}
		var colorGroup *LowStockColor
		for _, c := range family.Colors {
			if c.Color == color {
				colorGroup = c
				break
			}
		}
		if colorGroup == nil {
			colorGroup = &LowStockColor{Color: color, Sizes: []SizeCount{}}
			family.Colors = append(family.Colors, colorGroup)
		}
		colorGroup.Sizes = append(colorGroup.Sizes, SizeCount{Size: p.Size, Stock: p.AvailableStock})

		family.StockTotal += p.AvailableStock
		if p.AvailableStock < family.StockMin {
			family.StockMin = p.AvailableStock
		}
	}

	sort.SliceStable(families, func(i, j int) bool {
		return families[i].StockMin < families[j].StockMin
	})

	return &LowStockReport{
		Total:         len(families),
		TotalProducts: len(products),
		Families:      families,
	}, nil
}

// NoPrice returns the flat rows missing a usable list price.
func (s *service) NoPrice(ctx context.Context) (*NoPriceReport, error) {
	products, err := s.repo.NoPrice(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: no-price rows")
	}
	return &NoPriceReport{Products: toProductRows(products)}, nil
}

// NoBrand returns the flat rows missing a brand.
func (s *service) NoBrand(ctx context.Context) (*NoBrandReport, error) {
	products, err := s.repo.NoBrand(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: no-brand rows")
	}
	rows := toProductRows(products)
	return &NoBrandReport{Total: len(rows), Products: rows}, nil
}

// Stats returns the dashboard counters.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: triage stats")
	}
	return stats, nil
}

func toProductRows(products []models.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, toProductRow(p))
	}
	return rows
}
