package domain

// StockKind names which stock representation governs a product.
type StockKind string

const (
	StockFlat      StockKind = "flat"
	StockBySize    StockKind = "size"
	StockByVariant StockKind = "variant"
)

// StockModel is the authoritative stock representation of a product.
// Exactly one of FlatStock, SizeStock or VariantStock backs a product.
type StockModel interface {
	Kind() StockKind
	// Total is the aggregate count cached in the legacy `stock` field.
	Total() int
	// Available resolves the quantity for an optional (size, color) selection.
	Available(size, color string) int
	// Deduct removes qty units from the bucket addressed by the selection,
	// clamping at zero. ok is false when the selection addresses no bucket;
	// the receiver is returned unchanged in that case.
	Deduct(qty int, size, color string) (next StockModel, ok bool)
}

// NewStockModel maps the stored optional fields onto a single model:
// variants win over sizes, sizes win over the flat count.
func NewStockModel(stock int, sizes map[string]int, variants []Variant) StockModel {
	if len(variants) > 0 {
		return VariantStock(append([]Variant(nil), variants...))
	}
	if len(sizes) > 0 {
		m := make(SizeStock, len(sizes))
		for k, v := range sizes {
			m[k] = v
		}
		return m
	}
	return FlatStock(stock)
}

// AvailableStock is the stock resolver used for cart caps and checkout.
func AvailableStock(p Product, size, color string) int {
	if p.Stock == nil {
		return 0
	}
	return p.Stock.Available(size, color)
}

// FlatStock is a single default count.
type FlatStock int

func (s FlatStock) Kind() StockKind           { return StockFlat }
func (s FlatStock) Total() int                { return nonNegative(int(s)) }
func (s FlatStock) Available(_, _ string) int { return s.Total() }
func (s FlatStock) Deduct(qty int, _, _ string) (StockModel, bool) {
	return FlatStock(subtractFloor(int(s), qty)), true
}

// SizeStock maps a size label ("M", "42") to its count.
type SizeStock map[string]int

func (s SizeStock) Kind() StockKind { return StockBySize }

func (s SizeStock) Total() int {
	n := 0
	for _, v := range s {
		n += nonNegative(v)
	}
	return n
}

func (s SizeStock) Available(size, _ string) int {
	if size == "" {
		return s.Total()
	}
	return nonNegative(s[size])
}

func (s SizeStock) Deduct(qty int, size, _ string) (StockModel, bool) {
	cur, ok := s[size]
	if size == "" || !ok {
		return s, false
	}
	next := make(SizeStock, len(s))
	for k, v := range s {
		next[k] = v
	}
	next[size] = subtractFloor(cur, qty)
	return next, true
}

// Variant is one concrete color×size combination with its own stock.
type Variant struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// VariantStock is an ordered color×size matrix.
type VariantStock []Variant

func (s VariantStock) Kind() StockKind { return StockByVariant }

func (s VariantStock) Total() int {
	n := 0
	for _, v := range s {
		n += nonNegative(v.Stock)
	}
	return n
}

func (s VariantStock) Available(size, color string) int {
	if size == "" || color == "" {
		return s.Total()
	}
	if i := s.index(size, color); i >= 0 {
		return nonNegative(s[i].Stock)
	}
	return 0
}

func (s VariantStock) Deduct(qty int, size, color string) (StockModel, bool) {
	if size == "" || color == "" {
		return s, false
	}
	i := s.index(size, color)
	if i < 0 {
		return s, false
	}
	next := append(VariantStock(nil), s...)
	next[i].Stock = subtractFloor(next[i].Stock, qty)
	return next, true
}

// Colors returns the distinct variant colors in first-seen order.
func (s VariantStock) Colors() []string {
	seen := make(map[string]bool, len(s))
	var out []string
	for _, v := range s {
		if v.Color == "" || seen[v.Color] {
			continue
		}
		seen[v.Color] = true
		out = append(out, v.Color)
	}
	return out
}

func (s VariantStock) index(size, color string) int {
	for i, v := range s {
		if v.Size == size && v.Color == color {
			return i
		}
	}
	return -1
}

func subtractFloor(cur, qty int) int {
	if qty < 0 {
		qty = 0
	}
	return nonNegative(cur - qty)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
