// Package sqlite implements the catalog repository on an embedded SQLite
// database. This is the only package that imports the driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/storelens/backend/internal/domain"
)

// Store implements domain.CatalogRepository backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// Compile-time interface compliance check.
var _ domain.CatalogRepository = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	brand       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	price_cents INTEGER NOT NULL DEFAULT 0,
	rating      REAL NOT NULL DEFAULT 0,
	in_stock    INTEGER NOT NULL DEFAULT 1,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`

// Open opens the SQLite database at path and returns a configured Store.
// The caller should call Close on the returned store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL lets the storefront keep reading while the back-office writes.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Wait out short-lived locks instead of surfacing "database is locked".
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// NORMAL is durable enough under WAL and avoids an fsync per commit.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &Store{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call
// multiple times.
func (s *Store) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const itemColumns = `id, name, brand, description, category, price_cents, rating, in_stock, created_at, updated_at`

// scanner abstracts sql.Row and sql.Rows so one scan function handles
// both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (domain.CatalogItem, error) {
	var item domain.CatalogItem
	var inStock int64
	var createdAt, updatedAt int64

	err := sc.Scan(
		&item.ID, &item.Name, &item.Brand, &item.Description, &item.Category,
		&item.PriceCents, &item.Rating, &inStock, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	item.InStock = inStock != 0
	item.CreatedAt = time.Unix(createdAt, 0).UTC()
	item.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return item, nil
}

// List returns every catalog item ordered by insertion. Search depends on
// this ordering for deterministic suggestions.
func (s *Store) List(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByID returns a single catalog item or domain.ErrProductNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM products WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new catalog item and fills in its ID and timestamps.
func (s *Store) Create(ctx context.Context, item *domain.CatalogItem) error {
	if item.Name == "" {
		return domain.ErrInvalidRequest
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, brand, description, category, price_cents, rating, in_stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Brand, item.Description, item.Category,
		item.PriceCents, item.Rating, boolToInt(item.InStock), now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}

	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// Update rewrites an existing catalog item.
func (s *Store) Update(ctx context.Context, item *domain.CatalogItem) error {
	if item.Name == "" {
		return domain.ErrInvalidRequest
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, brand = ?, description = ?, category = ?, price_cents = ?, rating = ?, in_stock = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Brand, item.Description, item.Category,
		item.PriceCents, item.Rating, boolToInt(item.InStock), now.Unix(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product %d: %w", item.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of product %d: %w", item.ID, err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	item.UpdatedAt = now
	return nil
}

// Delete removes a catalog item.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of product %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Count returns the number of catalog items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

// Seed imports catalog items from a JSON file (an array of items) inside
// a single transaction. Returns the number of items inserted.
func (s *Store) Seed(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Unix()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (name, brand, description, category, price_cents, rating, in_stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			item.Name, item.Brand, item.Description, item.Category,
			item.PriceCents, item.Rating, boolToInt(item.InStock), now, now,
		); err != nil {
			return 0, fmt.Errorf("seeding product %q: %w", item.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}
	return inserted, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
