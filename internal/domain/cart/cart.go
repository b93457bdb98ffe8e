// Package cart implements the per-user cart store: a mapping from catalog
// item id to quantity, persisted whole under the user's record.
package cart

import "context"

// Cart maps a catalog item id to the quantity the user wants. A quantity of
// zero is never stored; the entry is removed instead.
type Cart map[string]int

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Repository persists one cart per user. Get returns an empty, non-nil cart
// for users without a record. Save replaces the stored mapping wholesale;
// concurrent writers are last-writer-wins.
type Repository interface {
	Get(ctx context.Context, userID string) (Cart, error)
	Save(ctx context.Context, userID string, c Cart) error
}
