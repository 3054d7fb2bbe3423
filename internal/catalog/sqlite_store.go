package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"marketcrew/internal/logging"
)

// SQLiteStore serves lookups from a products table. Rowid order stands in
// for catalog order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initializes) the catalog database at
// path. ":memory:" works for tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.CatalogDebug("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.CatalogDebug("failed to set sqlite journal_mode=WAL: %v", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS products (
		product_id  TEXT NOT NULL,
		seller_id   TEXT NOT NULL,
		price       REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity    INTEGER NOT NULL DEFAULT 0,
		attrs       TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_products_product_id
		ON products (LOWER(TRIM(product_id)));`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Lookup matches on the normalized product id, preserving insertion order.
func (s *SQLiteStore) Lookup(ctx context.Context, productID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, seller_id, price, description, quantity, attrs
		 FROM products WHERE LOWER(TRIM(product_id)) = ? ORDER BY rowid`,
		NormalizeID(productID))
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var attrs string
		if err := rows.Scan(&r.ProductID, &r.SellerID, &r.Price, &r.Description, &r.Quantity, &attrs); err != nil {
			return nil, fmt.Errorf("catalog scan failed: %w", err)
		}
		if attrs != "" && attrs != "{}" {
			if err := json.Unmarshal([]byte(attrs), &r.Attrs); err != nil {
				return nil, fmt.Errorf("catalog attrs not parseable: %w", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Put inserts records in order. Used for seeding and tests.
func (s *SQLiteStore) Put(ctx context.Context, records ...Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (product_id, seller_id, price, description, quantity, attrs)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		attrs := "{}"
		if len(r.Attrs) > 0 {
			b, err := json.Marshal(r.Attrs)
			if err != nil {
				return err
			}
			attrs = string(b)
		}
		if _, err := stmt.ExecContext(ctx, r.ProductID, r.SellerID, r.Price, r.Description, r.Quantity, attrs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
