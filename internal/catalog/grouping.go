package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/calzalindo/catalog-backend/pkg/db/models"
)

// DefaultColor is the sentinel used when a row has no color.
const DefaultColor = "Sin color"

var (
	// Product names arrive as "1900 NEGRO/NEGRO ZAPATILLA LONA": a leading
	// code plus color token, then slash-delimited variant infixes. Both are
	// stripped for the family display name.
	leadingColorRe = regexp.MustCompile(`(?i)^[\d.]+\s+(BLANCO|NEGRO|BORDÓ|BORDO|AZUL|GRIS|ROJO|VERDE|AMARILLO|ROSA|MARRÓN|MARRON|CORAL|FUCSIA|CELESTE|NARANJA|BEIGE|VIOLETA|LEOPARDO|SUELA|NUDE|ORO|PLATA|CAMEL|NATURAL)\s+`)
	colorInfixRe   = regexp.MustCompile(`(?i)\s*/[A-Z]+/[A-Z]+\s*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// CleanFamilyName normalizes a raw SKU name into a family display name.
// Falls back to the original when stripping leaves nothing.
func CleanFamilyName(name string) string {
	clean := leadingColorRe.ReplaceAllString(name, "")
	clean = colorInfixRe.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(whitespaceRe.ReplaceAllString(clean, " "))
	if clean == "" {
		return name
	}
	return clean
}

// FamilyKey returns the grouping key: the family link when present,
// otherwise the SKU code.
func FamilyKey(familyID *string, code int) string {
	if familyID != nil && *familyID != "" {
		return *familyID
	}
	return strconv.Itoa(code)
}

// GroupProducts folds SKU rows into families in input order. The first row
// seen for a family (or for a color within it) supplies the representative
// name, price, image and code. Sizes are only listed when present and in
// stock; they are sorted ascending by numeric value, stably, so
// non-numeric sizes keep their arrival order at the front.
func GroupProducts(products []models.Product) []*Family {
	families := make([]*Family, 0)
	byKey := make(map[string]*Family)

	for _, p := range products {
		key := FamilyKey(p.FamilyID, p.Code)

		family, ok := byKey[key]
		if !ok {
			family = &Family{
				FamilyID:    key,
				Name:        CleanFamilyName(p.Name),
				Brand:       p.Brand,
				Department:  p.Department,
				Subcategory: p.Subcategory,
				ListPrice:   p.ListPriceFloat(),
				Variants:    make([]*ColorVariant, 0, 1),
			}
			byKey[key] = family
			families = append(families, family)
		}

		color := DefaultColor
		if p.Color != nil && *p.Color != "" {
			color = *p.Color
		}

		var variant *ColorVariant
		for _, v := range family.Variants {
			if v.Color == color {
				variant = v
				break
			}
		}
		if variant == nil {
			variant = &ColorVariant{
				Color:    color,
				ImageURL: p.ImageURL,
				Code:     p.Code,
				Sizes:    make([]SizeStock, 0, 1),
			}
			family.Variants = append(family.Variants, variant)
		}

		if p.Size != nil && *p.Size != "" && p.AvailableStock > 0 {
			variant.Sizes = append(variant.Sizes, SizeStock{
				Size:  *p.Size,
				Stock: p.AvailableStock,
				Code:  p.Code,
			})
		}
	}

	for _, family := range families {
		for _, variant := range family.Variants {
			sort.SliceStable(variant.Sizes, func(i, j int) bool {
				return sizeValue(variant.Sizes[i].Size) < sizeValue(variant.Sizes[j].Size)
			})
		}
	}

	return families
}

// sizeValue parses the leading numeric prefix of a size label; anything
// non-numeric collapses to zero so it sorts first.
func sizeValue(size string) float64 {
	trimmed := strings.TrimSpace(size)
	end := 0
	seenDot := false
	for end < len(trimmed) {
		c := trimmed[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		if (c == '-' || c == '+') && end == 0 {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed[:end], 64)
	if err != nil {
		return 0
	}
	return value
}
