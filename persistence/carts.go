// Package persistence stores cart snapshots in a SQLite database. A cart is
// saved as an opaque JSON blob keyed by cart id; the reservation engine
// neither knows nor cares about the format.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/openrx/pharmacy-api/cart"
)

var _ cart.Repository = (*CartRepository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS carts (
	id         TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// CartRepository persists carts in SQLite.
type CartRepository struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at the given path and ensures the
// carts table exists.
func Open(path string) (*CartRepository, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cart database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create carts table: %w", err)
	}

	return &CartRepository{db: db}, nil
}

// Close releases the database handle.
func (r *CartRepository) Close() error {
	return r.db.Close()
}

// Ping verifies the database is reachable.
func (r *CartRepository) Ping() error {
	return r.db.Ping()
}

// Load returns the saved lines for a cart id. The second return value is
// false when no cart has been saved under that id.
func (r *CartRepository) Load(cartID string) ([]cart.Line, bool, error) {
	var payload []byte
	err := r.db.Get(&payload, `SELECT payload FROM carts WHERE id = ?`, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, false, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	return lines, true, nil
}

// Save upserts the cart's lines as a JSON blob.
func (r *CartRepository) Save(cartID string, lines []cart.Line) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", cartID, err)
	}

	_, err = r.db.Exec(
		`INSERT INTO carts (id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		cartID, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cartID, err)
	}
	return nil
}

// Delete removes a saved cart. Deleting an unknown id is a no-op.
func (r *CartRepository) Delete(cartID string) error {
	if _, err := r.db.Exec(`DELETE FROM carts WHERE id = ?`, cartID); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}
