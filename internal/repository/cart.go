package repository

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastly/storefront/internal/domain/cart"
)

const (
	getCartSQL = `SELECT cart_data FROM users WHERE id = $1`

	// The whole mapping is replaced on every write: last writer wins, no
	// per-item merge. The user row is created lazily on the first write.
	saveCartSQL = `INSERT INTO users (id, cart_data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET cart_data = EXCLUDED.cart_data`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository stores one cart per user, embedded as JSONB in the user row.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Get returns the user's cart mapping. A user with no row yet gets an empty,
// non-nil cart.
func (r *CartRepository) Get(ctx context.Context, userID string) (cart.Cart, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, getCartSQL, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart.Cart{}, nil
		}
		return nil, errors.Wrapf(err, "getting cart for user %q", userID)
	}

	c := cart.Cart{}
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrapf(err, "decoding cart for user %q", userID)
	}
	return c, nil
}

// Save replaces the user's stored cart with the given mapping.
func (r *CartRepository) Save(ctx context.Context, userID string, c cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return errors.Wrapf(err, "encoding cart for user %q", userID)
	}

	if _, err := r.pool.Exec(ctx, saveCartSQL, userID, raw); err != nil {
		return errors.Wrapf(err, "saving cart for user %q", userID)
	}
	return nil
}
