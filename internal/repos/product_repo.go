package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gearrent/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Category     string         `db:"category"`
	Description  string         `db:"description"`
	Image        string         `db:"image"`
	Price2Days   int64          `db:"price_2_days"`
	Price3Days   int64          `db:"price_3_days"`
	Price4Days   int64          `db:"price_4_days"`
	Price5Days   int64          `db:"price_5_days"`
	Price6Days   int64          `db:"price_6_days"`
	Price7Days   int64          `db:"price_7_days"`
	Stock        int            `db:"stock"`
	SizesJSON    sql.NullString `db:"sizes_json"`
	VariantsJSON sql.NullString `db:"variants_json"`
	ColorsJSON   sql.NullString `db:"colors_json"`
	ColorImgJSON sql.NullString `db:"color_images_json"`
	PackageJSON  sql.NullString `db:"package_items_json"`
	CreatedAt    string         `db:"created_at"`
	UpdatedAt    string         `db:"updated_at"`
}

const productColumns = `
    id, name, category, COALESCE(description,'') AS description, COALESCE(image,'') AS image,
    price_2_days, price_3_days, price_4_days, price_5_days, price_6_days, price_7_days,
    stock, sizes_json, variants_json, colors_json, color_images_json, package_items_json,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

const insertProductSQL = `
  INSERT INTO products(
    id, name, category, description, image,
    price_2_days, price_3_days, price_4_days, price_5_days, price_6_days, price_7_days,
    stock, sizes_json, variants_json, colors_json, color_images_json, package_items_json,
    created_at, updated_at)
  VALUES(
    :id, :name, :category, :description, :image,
    :price_2_days, :price_3_days, :price_4_days, :price_5_days, :price_6_days, :price_7_days,
    :stock, :sizes_json, :variants_json, :colors_json, :color_images_json, :package_items_json,
    :created_at, NULLIF(:updated_at,''))`

func toProductRow(p domain.Product) (productRow, error) {
	stock, sizes, variants := p.StockFields()
	row := productRow{
		ID: p.ID, Name: p.Name, Category: p.Category, Description: p.Description, Image: p.Image,
		Price2Days: p.Prices.Days2, Price3Days: p.Prices.Days3, Price4Days: p.Prices.Days4,
		Price5Days: p.Prices.Days5, Price6Days: p.Prices.Days6, Price7Days: p.Prices.Days7,
		Stock:     stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	var err error
	if row.SizesJSON, err = jsonColumn(sizes); err != nil {
		return row, err
	}
	if row.VariantsJSON, err = jsonColumn(variants); err != nil {
		return row, err
	}
	if row.ColorsJSON, err = jsonColumn(p.Colors()); err != nil {
		return row, err
	}
	if row.ColorImgJSON, err = jsonColumn(p.ColorImages); err != nil {
		return row, err
	}
	if row.PackageJSON, err = jsonColumn(p.PackageItems); err != nil {
		return row, err
	}
	return row, nil
}

func (r productRow) toDomain() (domain.Product, error) {
	var (
		sizes    map[string]int
		variants []domain.Variant
		p        = domain.Product{
			ID: r.ID, Name: r.Name, Category: r.Category, Description: r.Description, Image: r.Image,
			Prices: domain.PriceTiers{
				Days2: r.Price2Days, Days3: r.Price3Days, Days4: r.Price4Days,
				Days5: r.Price5Days, Days6: r.Price6Days, Days7: r.Price7Days,
			},
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	)
	for _, c := range []struct {
		col sql.NullString
		dst any
	}{
		{r.SizesJSON, &sizes},
		{r.VariantsJSON, &variants},
		{r.ColorImgJSON, &p.ColorImages},
		{r.PackageJSON, &p.PackageItems},
	} {
		if !c.col.Valid || c.col.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(c.col.String), c.dst); err != nil {
			return domain.Product{}, fmt.Errorf("product %s: bad json column: %w", r.ID, err)
		}
	}
	p.Stock = domain.NewStockModel(r.Stock, sizes, variants)
	return p, nil
}

// jsonColumn stores empty collections as NULL.
func jsonColumn[T any](v T) (sql.NullString, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	switch string(b) {
	case "null", "{}", "[]":
		return sql.NullString{}, nil
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func rowsToProducts(rows []productRow) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// List returns the whole catalog, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+productColumns+`
  FROM products
  ORDER BY created_at DESC, rowid DESC`); err != nil {
		return nil, err
	}
	return rowsToProducts(rows)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain()
}

// Create inserts p as-is; the caller assigns the id.
func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = ""
	row, err := toProductRow(p)
	if err != nil {
		return domain.Product{}, err
	}
	if _, err := r.db.NamedExecContext(ctx, insertProductSQL, row); err != nil {
		return domain.Product{}, err
	}
	return r.Get(ctx, p.ID)
}

// Update overwrites every editable column of an existing product.
func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	row, err := toProductRow(p)
	if err != nil {
		return domain.Product{}, err
	}
	res, err := r.db.NamedExecContext(ctx, `
  UPDATE products SET
    name = :name, category = :category, description = :description, image = :image,
    price_2_days = :price_2_days, price_3_days = :price_3_days, price_4_days = :price_4_days,
    price_5_days = :price_5_days, price_6_days = :price_6_days, price_7_days = :price_7_days,
    stock = :stock, sizes_json = :sizes_json, variants_json = :variants_json,
    colors_json = :colors_json, color_images_json = :color_images_json,
    package_items_json = :package_items_json, updated_at = :updated_at
  WHERE id = :id`, row)
	if err != nil {
		return domain.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
