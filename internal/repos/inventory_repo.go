package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"gearrent/internal/domain"
)

// InventoryRepo writes stock columns only; everything else on the product
// row is left alone.
type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by the admin dashboard
type LowStockRow struct {
	ProductID string `db:"id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Stock     int    `db:"stock" json:"stock"`
}

// UpdateStock persists the stock model of p (stock, sizes, variants and the
// derived colors).
func (r *InventoryRepo) UpdateStock(ctx context.Context, p domain.Product) error {
	row, err := toProductRow(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = ?, sizes_json = ?, variants_json = ?, colors_json = ?, updated_at = ?
		WHERE id = ?
	`, row.Stock, row.SizesJSON, row.VariantsJSON, row.ColorsJSON, time.Now().UTC().Format(time.RFC3339), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// LowStock lists products whose aggregate stock is below threshold.
func (r *InventoryRepo) LowStock(ctx context.Context, threshold int) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, stock
		FROM products
		WHERE stock < ?
		ORDER BY stock, name
	`, threshold)
	return rows, err
}
