// Package order owns the order ledger and its payment-confirmation state
// machine, and builds hosted checkout sessions from cart snapshots.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order states written by the confirmation state machine. Operators may
// overwrite Status with arbitrary fulfillment labels once an order is paid;
// the field is deliberately an open string.
const (
	StatusPlaced = "Placed"
	StatusPaid   = "Paid"
)

// Item is one line of an order's immutable snapshot: name and price are
// resolved from the catalog at placement time and never change afterwards,
// regardless of later catalog edits.
type Item struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a placed order. Items and Amount are immutable after creation;
// Status and PaymentConfirmed are the only mutable fields.
type Order struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	Items            []Item          `json:"items"`
	Amount           decimal.Decimal `json:"amount"`
	Address          map[string]any  `json:"address"`
	Status           string          `json:"status"`
	PaymentConfirmed bool            `json:"paymentConfirmed"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Repository defines persistence operations for the order ledger. MarkPaid
// and Delete are idempotent: applying them to a missing id is not an error.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	MarkPaid(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// CheckoutLine is one line item submitted to the payment provider, priced in
// currency subunits.
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// CheckoutGateway creates hosted payment sessions. The returned string is the
// redirect URL the customer is sent to.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, lines []CheckoutLine, successURL, cancelURL string) (string, error)
}
