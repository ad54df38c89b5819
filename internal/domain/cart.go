package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// LineKey identifies a distinct cart entry.
type LineKey struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// CartLine is a product snapshot taken at add time plus the renter's
// selection.
type CartLine struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
	SelectedColor string  `json:"selectedColor,omitempty"`
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Size: l.SelectedSize, Color: l.SelectedColor}
}

// Available is the quantity ceiling for the line, resolved on the snapshot.
func (l CartLine) Available() int {
	return AvailableStock(l.Product, l.SelectedSize, l.SelectedColor)
}

type Cart struct {
	Lines []CartLine
}

func (c *Cart) index(k LineKey) int {
	for i, l := range c.Lines {
		if l.Key() == k {
			return i
		}
	}
	return -1
}

// Line returns the line for k.
func (c *Cart) Line(k LineKey) (CartLine, bool) {
	if i := c.index(k); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// Add bumps the quantity of an existing line (never past its available
// stock) or appends a new line with quantity 1.
func (c *Cart) Add(p Product, size, color string) CartLine {
	k := LineKey{ProductID: p.ID, Size: size, Color: color}
	if i := c.index(k); i >= 0 {
		l := &c.Lines[i]
		if l.Quantity < l.Available() {
			l.Quantity++
		}
		return *l
	}
	l := CartLine{Product: p, Quantity: 1, SelectedSize: size, SelectedColor: color}
	c.Lines = append(c.Lines, l)
	return l
}

// UpdateQuantity applies delta to the line. A result below 1 is ignored;
// increments are capped at the line's available stock.
func (c *Cart) UpdateQuantity(k LineKey, delta int) (CartLine, bool) {
	i := c.index(k)
	if i < 0 {
		return CartLine{}, false
	}
	l := &c.Lines[i]
	n := l.Quantity + delta
	if n < 1 {
		return *l, true
	}
	if delta > 0 {
		if avail := l.Available(); n > avail {
			n = max(avail, l.Quantity)
		}
	}
	l.Quantity = n
	return *l, true
}

func (c *Cart) Remove(k LineKey) bool {
	i := c.index(k)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

func (c *Cart) Clear() { c.Lines = nil }

// Count is the number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total sums unit price × quantity for the duration. Nothing is cached.
func (c Cart) Total(pr Pricing, days int) int64 {
	var sum int64
	for _, l := range c.Lines {
		sum += pr.UnitPrice(l.Product, days) * int64(l.Quantity)
	}
	return sum
}

// CartSchemaVersion marks blobs written with tiered pricing.
const CartSchemaVersion = 2

var ErrCartSchemaMismatch = errors.New("stored cart does not match the current schema")

type cartBlob struct {
	SchemaVersion int        `json:"schemaVersion"`
	Lines         []CartLine `json:"lines"`
}

// EncodeCart serializes the cart with the current schema marker.
func EncodeCart(c Cart) ([]byte, error) {
	lines := c.Lines
	if lines == nil {
		lines = []CartLine{}
	}
	return json.Marshal(cartBlob{SchemaVersion: CartSchemaVersion, Lines: lines})
}

// DecodeCart is the versioned read step. Any blob that does not parse,
// carries another schema version, or holds lines without tier prices
// yields ErrCartSchemaMismatch.
func DecodeCart(b []byte) (Cart, error) {
	var probe struct {
		SchemaVersion *int `json:"schemaVersion"`
		Lines         []struct {
			Product struct {
				ID         string `json:"id"`
				Price2Days *int64 `json:"price2Days"`
			} `json:"product"`
			Quantity int `json:"quantity"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrCartSchemaMismatch, err)
	}
	if probe.SchemaVersion == nil || *probe.SchemaVersion != CartSchemaVersion {
		return Cart{}, ErrCartSchemaMismatch
	}
	for _, l := range probe.Lines {
		if l.Product.ID == "" || l.Product.Price2Days == nil || l.Quantity < 1 {
			return Cart{}, ErrCartSchemaMismatch
		}
	}
	var blob cartBlob
	if err := json.Unmarshal(b, &blob); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrCartSchemaMismatch, err)
	}
	return Cart{Lines: blob.Lines}, nil
}
