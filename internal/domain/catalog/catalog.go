// Package catalog exposes read-only access to the purchasable item listing.
// Catalog management (CRUD, images) belongs to a separate service; this core
// only resolves names and prices.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("item not found")

// Item is a purchasable catalog entry.
type Item struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Category  string
	Image     string
	Available bool
}

// Repository defines read operations over the catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	GetByIDs(ctx context.Context, ids []string) ([]Item, error)
}
