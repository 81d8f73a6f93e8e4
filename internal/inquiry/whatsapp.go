package inquiry

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildMessage renders the inquiry text sent over WhatsApp: a greeting,
// one numbered block per line item, and the approximate total.
func BuildMessage(cart *Cart) string {
	var b strings.Builder
	b.WriteString("Hola! Me interesan estos productos:\n\n")

	for i, item := range cart.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		if item.Brand != nil && *item.Brand != "" {
			fmt.Fprintf(&b, "   Marca: %s\n", *item.Brand)
		}
		fmt.Fprintf(&b, "   Color: %s | Talle: %s\n", item.Color, item.Size)
		fmt.Fprintf(&b, "   Precio contado: $%s\n\n", formatAmount(item.Price))
	}

	fmt.Fprintf(&b, "Total aproximado: $%s", formatAmount(cart.Total()))
	return b.String()
}

// BuildLink composes the wa.me deep link for the cart.
func BuildLink(number string, cart *Cart) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(BuildMessage(cart)))
}
