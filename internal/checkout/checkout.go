// Package checkout builds WhatsApp order and inquiry messages.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"produce-kart/internal/cart"
	"produce-kart/internal/model"

	"github.com/shopspring/decimal"
)

const currency = "AED"

// OrderMessage renders the cart as the pre-filled WhatsApp order text.
func OrderMessage(c *model.Cart) string {
	var b strings.Builder
	b.WriteString("Hi, I'd like to order the following items:\n\n")
	for _, item := range c.Items {
		fmt.Fprintf(&b, "• %s - %d%s @ %s %s/%s = %s %s\n",
			item.Name,
			item.Quantity, item.Unit,
			currency, formatPrice(item.Price), item.Unit,
			currency, cart.LineTotal(item).StringFixed(2),
		)
	}
	fmt.Fprintf(&b, "\nTotal: %s %s", currency, cart.TotalPrice(c).StringFixed(2))
	return b.String()
}

// ProductInquiry is the message sent from a product page.
func ProductInquiry(p *model.Product) string {
	price, _ := p.ListingPrice()
	return fmt.Sprintf("Hi, I'm interested in buying %s (Price: %s %s/%s).",
		p.Name, currency, formatPrice(price), p.Type.Unit())
}

// Link returns the wa.me deep link for phone with message as its text.
// The phone number is reduced to its digits.
func Link(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + encodeURIComponent(message)
}

// encodeURIComponent escapes s the way browsers do for a query component:
// spaces become %20 rather than +.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, r := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(r), r)
	}
	return escaped
}

// formatPrice prints a price without trailing zeros, as JavaScript would.
func formatPrice(v float64) string {
	return decimal.NewFromFloat(v).String()
}
