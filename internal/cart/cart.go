package cart

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingSize     = errors.New("size is required")
	ErrMissingColor    = errors.New("color is required")
)

// LineItem is one cart entry keyed by product+size+color. Name, price and
// image are denormalised at add time: later catalog changes never touch
// items already in the cart.
type LineItem struct {
	Key        string `json:"key"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Quantity   int64  `json:"quantity"`
	Image      string `json:"image,omitempty"`
}

// LineTotalCents is the item's price multiplied by its quantity.
func (li LineItem) LineTotalCents() int64 {
	return li.PriceCents * li.Quantity
}

// LineKey builds the composite key for a product/size/color combination.
func LineKey(productID, size, color string) string {
	return productID + "-" + size + "-" + color
}

// ItemParams carries everything needed to add a line to the cart.
type ItemParams struct {
	ProductID  string
	Name       string
	PriceCents int64
	Size       string
	Color      string
	Quantity   int64
	Image      string
}

// Cart is an ordered list of line items with at most one line per composite
// key. It is a plain value mutated on a single goroutine; persistence happens
// through the snapshot codec, one serialisation boundary.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Find returns the line with the given composite key.
func (c *Cart) Find(key string) (LineItem, bool) {
	for _, li := range c.items {
		if li.Key == key {
			return li, true
		}
	}
	return LineItem{}, false
}

// Add merges an item into the cart: an existing line for the same
// (product, size, color) has its quantity incremented, otherwise a new line
// is appended. Returns the resulting line.
func (c *Cart) Add(p ItemParams) (LineItem, error) {
	if p.Quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if p.Size == "" {
		return LineItem{}, ErrMissingSize
	}
	if p.Color == "" {
		return LineItem{}, ErrMissingColor
	}

	key := LineKey(p.ProductID, p.Size, p.Color)
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Quantity += p.Quantity
			return c.items[i], nil
		}
	}

	li := LineItem{
		Key:        key,
		ProductID:  p.ProductID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Size:       p.Size,
		Color:      p.Color,
		Quantity:   p.Quantity,
		Image:      p.Image,
	}
	c.items = append(c.items, li)
	return li, nil
}

// SetQuantity sets a line's quantity, clamped to a minimum of 1. Driving a
// quantity down never removes the line; removal is always explicit.
func (c *Cart) SetQuantity(key string, quantity int64) (LineItem, bool) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Quantity = quantity
			return c.items[i], true
		}
	}
	return LineItem{}, false
}

// Remove deletes the line with the given key. Reports whether it existed.
func (c *Cart) Remove(key string) bool {
	for i := range c.items {
		if c.items[i].Key == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Totals recomputes the cart total and item count from scratch. Lists are
// small, so there is no cached value to invalidate.
func (c *Cart) Totals() (totalCents int64, itemCount int64) {
	for _, li := range c.items {
		totalCents += li.LineTotalCents()
		itemCount += li.Quantity
	}
	return totalCents, itemCount
}

// AddedToast is the confirmation message shown after a successful add.
func AddedToast(quantity int64, name, size, color string) string {
	return fmt.Sprintf("Added %dx %s (%s) in %s", quantity, name, size, color)
}
