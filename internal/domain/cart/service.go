package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// Service applies cart mutations as read-modify-write sequences against the
// repository. There is no per-item locking and no concurrency token: two
// devices mutating the same user's cart can race and one delta can be lost.
// That weak model is deliberate and must not be tightened here.
type Service struct {
	carts Repository
}

// NewService creates a cart Service over the given repository.
func NewService(carts Repository) *Service {
	return &Service{carts: carts}
}

// AddItem increments the quantity of itemID by one, creating the entry at 1
// when absent. The item id is not validated against the catalog.
func (s *Service) AddItem(ctx context.Context, userID, itemID string) error {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "get cart")
	}

	c[itemID]++

	if err := s.carts.Save(ctx, userID, c); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}

// RemoveItem decrements the quantity of itemID by one and drops the entry
// when it reaches zero. Removing an absent item is a no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "get cart")
	}

	if qty := c[itemID]; qty > 0 {
		if qty == 1 {
			delete(c, itemID)
		} else {
			c[itemID] = qty - 1
		}
	}

	if err := s.carts.Save(ctx, userID, c); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}

// Get returns the user's full cart mapping. Users without a cart get an
// empty mapping, never an error.
func (s *Service) Get(ctx context.Context, userID string) (Cart, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}
	return c, nil
}

// Clear replaces the user's cart with an empty mapping. Called exactly once
// per order placement, before payment confirmation.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.carts.Save(ctx, userID, Cart{}); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}
