package domain

import "encoding/json"

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

// PriceTiers holds the fixed rental price for exactly 2..7 days.
type PriceTiers struct {
	Days2 int64
	Days3 int64
	Days4 int64
	Days5 int64
	Days6 int64
	Days7 int64
}

// PackageItem is a component consumed when a package product is rented.
type PackageItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Product struct {
	ID           string
	Name         string
	Category     string
	Description  string
	Image        string
	Prices       PriceTiers
	Stock        StockModel
	ColorImages  map[string]string
	PackageItems []PackageItem
	CreatedAt    string
	UpdatedAt    string
}

// IsPackage reports whether renting the product consumes component stock.
func (p Product) IsPackage() bool { return len(p.PackageItems) > 0 }

// TotalStock is the aggregate count across the stock model.
func (p Product) TotalStock() int {
	if p.Stock == nil {
		return 0
	}
	return p.Stock.Total()
}

// StockFields flattens the stock model into the stored optional fields.
func (p Product) StockFields() (stock int, sizes map[string]int, variants []Variant) {
	switch s := p.Stock.(type) {
	case SizeStock:
		sizes = map[string]int(s)
	case VariantStock:
		variants = []Variant(s)
	}
	return p.TotalStock(), sizes, variants
}

// Colors lists the distinct colors of a variant product.
func (p Product) Colors() []string {
	if v, ok := p.Stock.(VariantStock); ok {
		return v.Colors()
	}
	return nil
}

type productJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Description  string            `json:"description,omitempty"`
	Image        string            `json:"image,omitempty"`
	Price2Days   int64             `json:"price2Days"`
	Price3Days   int64             `json:"price3Days"`
	Price4Days   int64             `json:"price4Days"`
	Price5Days   int64             `json:"price5Days"`
	Price6Days   int64             `json:"price6Days"`
	Price7Days   int64             `json:"price7Days"`
	Stock        int               `json:"stock"`
	Sizes        map[string]int    `json:"sizes,omitempty"`
	Variants     []Variant         `json:"variants,omitempty"`
	Colors       []string          `json:"colors,omitempty"`
	ColorImages  map[string]string `json:"colorImages,omitempty"`
	PackageItems []PackageItem     `json:"packageItems,omitempty"`
	CreatedAt    string            `json:"createdAt,omitempty"`
	UpdatedAt    string            `json:"updatedAt,omitempty"`
}

// MarshalJSON writes the storefront wire shape; stock and colors are
// always derived from the stock model.
func (p Product) MarshalJSON() ([]byte, error) {
	stock, sizes, variants := p.StockFields()
	return json.Marshal(productJSON{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		Image:        p.Image,
		Price2Days:   p.Prices.Days2,
		Price3Days:   p.Prices.Days3,
		Price4Days:   p.Prices.Days4,
		Price5Days:   p.Prices.Days5,
		Price6Days:   p.Prices.Days6,
		Price7Days:   p.Prices.Days7,
		Stock:        stock,
		Sizes:        sizes,
		Variants:     variants,
		Colors:       p.Colors(),
		ColorImages:  p.ColorImages,
		PackageItems: p.PackageItems,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var w productJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*p = Product{
		ID:          w.ID,
		Name:        w.Name,
		Category:    w.Category,
		Description: w.Description,
		Image:       w.Image,
		Prices: PriceTiers{
			Days2: w.Price2Days,
			Days3: w.Price3Days,
			Days4: w.Price4Days,
			Days5: w.Price5Days,
			Days6: w.Price6Days,
			Days7: w.Price7Days,
		},
		Stock:        NewStockModel(w.Stock, w.Sizes, w.Variants),
		ColorImages:  w.ColorImages,
		PackageItems: w.PackageItems,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	return nil
}
