package inquiry

import (
	"fmt"
	"strings"
)

// LineItem is one selected variant in an inquiry cart.
type LineItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"nombre"`
	Brand *string `json:"marca"`
	Color string  `json:"color"`
	Size  string  `json:"talle"`
	Price float64 `json:"precio"`
	Stock int     `json:"stock"`
}

// ItemID synthesizes the composite identity that deduplicates cart lines:
// one family/color/size at one price tier is one line.
func ItemID(familyID, color, size string, price float64) string {
	return fmt.Sprintf("%s|%s|%s|%.0f", familyID, color, size, price)
}

// Cart is the mutable list of inquiry lines.
type Cart struct {
	Items []LineItem `json:"items"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

// Add appends the item unless an equivalent line already exists, either by
// id or by the name/color/size triple. Returns false on the duplicate no-op.
func (c *Cart) Add(item LineItem) bool {
	for _, existing := range c.Items {
		if existing.ID == item.ID {
			return false
		}
		if existing.Name == item.Name && existing.Color == item.Color && existing.Size == item.Size {
			return false
		}
	}
	c.Items = append(c.Items, item)
	return true
}

// Remove drops the line with the given id. Removing an absent id is a
// no-op and returns false.
func (c *Cart) Remove(id string) bool {
	for i, existing := range c.Items {
		if existing.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// Total sums the line prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.Items)
}

// formatAmount renders a peso amount the way the storefront does:
// thousands separated by dots, decimals (when any) after a comma.
func formatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.3f", amount)
	raw = strings.TrimRight(raw, "0")
	raw = strings.TrimRight(raw, ".")

	intPart := raw
	fracPart := ""
	if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		intPart, fracPart = raw[:dot], raw[dot+1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
