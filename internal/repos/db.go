package repos

import (
	"context"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by every store when a record id does not exist.
var ErrNotFound = errors.New("record not found")

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection: ":memory:" databases are per-connection and sqlite
	// serializes writers anyway
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the demo catalog if DB is empty (categories/products)
	if err := seedIfEmpty(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Categories (organizational only; products keep the name as free text)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  description TEXT,
  image TEXT,
  price_2_days INTEGER NOT NULL DEFAULT 0 CHECK (price_2_days >= 0),
  price_3_days INTEGER NOT NULL DEFAULT 0 CHECK (price_3_days >= 0),
  price_4_days INTEGER NOT NULL DEFAULT 0 CHECK (price_4_days >= 0),
  price_5_days INTEGER NOT NULL DEFAULT 0 CHECK (price_5_days >= 0),
  price_6_days INTEGER NOT NULL DEFAULT 0 CHECK (price_6_days >= 0),
  price_7_days INTEGER NOT NULL DEFAULT 0 CHECK (price_7_days >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  sizes_json TEXT,                 -- {"M":3,"L":1}
  variants_json TEXT,              -- [{"color":"Merah","size":"L","stock":3}]
  colors_json TEXT,                -- derived from variants
  color_images_json TEXT,
  package_items_json TEXT,         -- [{"productId":"1","quantity":2}]
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Durable blobs (session carts)
CREATE TABLE IF NOT EXISTS kv_blobs(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
);

-- Orders (append-only history)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  renter_name TEXT NOT NULL,
  whatsapp TEXT NOT NULL,
  campus TEXT,
  rental_date TEXT,
  duration INTEGER NOT NULL CHECK (duration >= 2),
  total INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  lines_json TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_session    ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
`
	_, err := db.Exec(schema)
	return err
}

// seedMarker is written once the demo catalog has been inserted; later
// starts never reseed, even after an admin empties a table.
const seedMarker = "gearrent:seeded"

// seedIfEmpty seeds categories and products independently on first start.
func seedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var seeded int
	if err := db.GetContext(ctx, &seeded, `SELECT COUNT(*) FROM kv_blobs WHERE key = ?`, seedMarker); err != nil {
		return err
	}
	if seeded > 0 {
		return nil
	}

	var nCats, nProds int
	if err := db.GetContext(ctx, &nCats, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if err := db.GetContext(ctx, &nProds, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if nCats == 0 {
		log.Println("[seed] inserting demo categories")
		for _, c := range SeedCategories() {
			if _, err := tx.ExecContext(ctx, `INSERT INTO categories(id,name,created_at) VALUES(?,?,CURRENT_TIMESTAMP)`, c.ID, c.Name); err != nil {
				return err
			}
		}
	}
	if nProds == 0 {
		log.Println("[seed] inserting demo products")
		for _, p := range SeedProducts() {
			row, err := toProductRow(p)
			if err != nil {
				return err
			}
			row.CreatedAt = seedTime
			if _, err := tx.NamedExecContext(ctx, insertProductSQL, row); err != nil {
				return err
			}
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO kv_blobs(key,value,updated_at) VALUES(?,'1',CURRENT_TIMESTAMP)`, seedMarker); err != nil {
		return err
	}
	return tx.Commit()
}
