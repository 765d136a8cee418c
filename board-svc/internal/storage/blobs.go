package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"orderboard/board-svc/internal/domain"
)

const (
	restaurantsKey = "restaurants.json"
	ordersKey      = "orders.json"
)

// BlobRepository persists each collection as a single JSON document keyed by
// name, read-modify-write with last-writer-wins. Concurrent writers can lose
// updates; that is the store's contract, not something the board works
// around.
type BlobRepository struct {
	DB *sql.DB
}

func NewBlobRepository(db *sql.DB) *BlobRepository {
	return &BlobRepository{DB: db}
}

func (r *BlobRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS board_blobs (
			key TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// readDoc leaves out untouched when the document is missing or unreadable,
// so both cases read as the empty collection.
func (r *BlobRepository) readDoc(key string, out interface{}) error {
	var doc string
	err := r.DB.QueryRow("SELECT doc FROM board_blobs WHERE key = $1", key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return nil
	}
	return nil
}

func (r *BlobRepository) writeDoc(key string, value interface{}) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO board_blobs (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, key, string(doc))
	return err
}

func (r *BlobRepository) ReadRestaurants() ([]domain.Restaurant, error) {
	restaurants := []domain.Restaurant{}
	if err := r.readDoc(restaurantsKey, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *BlobRepository) WriteRestaurants(restaurants []domain.Restaurant) error {
	return r.writeDoc(restaurantsKey, restaurants)
}

func (r *BlobRepository) ReadOrders() ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := r.readDoc(ordersKey, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *BlobRepository) WriteOrders(orders []domain.Order) error {
	return r.writeDoc(ordersKey, orders)
}
