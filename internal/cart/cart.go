// Package cart holds shopping cart state transitions and their persistence.
package cart

import (
	"produce-kart/internal/model"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity is the largest quantity a single cart line may hold.
const MaxLineQuantity = 999

// Add puts item into the cart. A line with the same id has its quantity
// increased by qty instead of being duplicated; merged reports which of the
// two happened. A qty of zero counts as one. The resulting line quantity
// may not exceed MaxLineQuantity.
func Add(c *model.Cart, item model.CartItem, qty int) (merged bool, err error) {
	if qty == 0 {
		qty = 1
	}
	if qty < 0 || qty > MaxLineQuantity {
		return false, model.ErrInvalidQuantity
	}

	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			if c.Items[i].Quantity > MaxLineQuantity-qty {
				return false, model.ErrInvalidQuantity
			}
			c.Items[i].Quantity += qty
			return true, nil
		}
	}

	item.Quantity = qty
	c.Items = append(c.Items, item)
	return false, nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes it; more than MaxLineQuantity is rejected.
func UpdateQuantity(c *model.Cart, id string, qty int) error {
	if qty <= 0 {
		return Remove(c, id)
	}
	if qty > MaxLineQuantity {
		return model.ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = qty
			return nil
		}
	}
	return model.ErrCartItemNotFound
}

// Remove deletes a line from the cart.
func Remove(c *model.Cart, id string) error {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return model.ErrCartItemNotFound
}

// Clear empties the cart.
func Clear(c *model.Cart) {
	c.Items = []model.CartItem{}
}

// TotalItems is the sum of all line quantities.
func TotalItems(c *model.Cart) int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// LineTotal is price times quantity for a single line.
func LineTotal(item model.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// TotalPrice is the exact sum of every line total.
func TotalPrice(c *model.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(LineTotal(item))
	}
	return total
}
