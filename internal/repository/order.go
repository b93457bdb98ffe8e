package repository

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, user_id, items, amount, address, status, payment_confirmed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// UPDATEs silently match zero rows for missing ids, which is what the
	// confirmation state machine wants: re-confirm and delete are idempotent.
	markPaidSQL = `UPDATE orders SET payment_confirmed = TRUE, status = $2 WHERE id = $1`

	updateStatusSQL = `UPDATE orders SET status = $2 WHERE id = $1`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`

	orderColumns = `id, user_id, items, amount, address, status, payment_confirmed, created_at`

	listOrdersByUserSQL = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	listAllOrdersSQL = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The item
// snapshot and the delivery address are serialized to JSONB columns.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return errors.Wrap(err, "marshaling order items")
	}
	addressJSON, err := json.Marshal(o.Address)
	if err != nil {
		return errors.Wrap(err, "marshaling order address")
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, itemsJSON, o.Amount, addressJSON,
		o.Status, o.PaymentConfirmed, o.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "creating order %q", o.ID)
	}

	return nil
}

// MarkPaid flips the order to confirmed-paid. Missing ids are a no-op.
func (r *OrderRepository) MarkPaid(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, markPaidSQL, id, order.StatusPaid); err != nil {
		return errors.Wrapf(err, "marking order %q paid", id)
	}
	return nil
}

// UpdateStatus overwrites the status label. Missing ids are a no-op.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := r.pool.Exec(ctx, updateStatusSQL, id, status); err != nil {
		return errors.Wrapf(err, "updating status of order %q", id)
	}
	return nil
}

// Delete removes the order unconditionally. Missing ids are a no-op.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, deleteOrderSQL, id); err != nil {
		return errors.Wrapf(err, "deleting order %q", id)
	}
	return nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing orders for user %q", userID)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// ListAll returns every order, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listAllOrdersSQL)
	if err != nil {
		return nil, errors.Wrap(err, "listing orders")
	}
	return pgx.CollectRows(rows, scanOrder)
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o           order.Order
		itemsJSON   []byte
		addressJSON []byte
		amount      decimal.Decimal
	)
	err := row.Scan(&o.ID, &o.UserID, &itemsJSON, &amount, &addressJSON,
		&o.Status, &o.PaymentConfirmed, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	o.Amount = amount

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return o, errors.Wrapf(err, "decoding items of order %q", o.ID)
	}
	if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
		return o, errors.Wrapf(err, "decoding address of order %q", o.ID)
	}
	return o, nil
}
