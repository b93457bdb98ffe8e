package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/domain/cart"
	"github.com/feastly/storefront/internal/domain/catalog"
)

// Sentinel errors for order placement validation.
var ErrEmptyCart = errors.New("cart is empty")

// ItemNotFoundError indicates a cart line references an item missing from
// the catalog.
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ItemID)
}

// InvalidQuantityError indicates a cart line has a non-positive quantity.
type InvalidQuantityError struct {
	ItemID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for item %s", e.ItemID)
}

// Line is one cart line of a placement request: item id and desired quantity,
// as held in the client's cart replica.
type Line struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest holds the input for placing an order. Amount is the
// client-computed total; it is stored on the order as submitted, while the
// payment line items are always re-priced server-side from the catalog.
type PlaceOrderRequest struct {
	UserID  string
	Items   []Line
	Amount  decimal.Decimal
	Address map[string]any
}

// CheckoutConfig holds the pricing and redirect parameters for building
// payment sessions.
type CheckoutConfig struct {
	// FrontendURL is the base URL the payment provider redirects back to.
	FrontendURL string
	// DeliveryCharge is the flat delivery fee appended as its own line item.
	DeliveryCharge decimal.Decimal
	// SubunitFactor converts a catalog price into payment currency subunits.
	SubunitFactor int64
}

// Service drives the order lifecycle: checkout session building, payment
// confirmation, and the operator controls over order status.
type Service struct {
	catalog catalog.Repository
	carts   *cart.Service
	orders  Repository
	gateway CheckoutGateway
	cfg     CheckoutConfig
}

// NewService creates an order Service with the required collaborators.
func NewService(
	catalogRepo catalog.Repository,
	carts *cart.Service,
	orders Repository,
	gateway CheckoutGateway,
	cfg CheckoutConfig,
) *Service {
	return &Service{
		catalog: catalogRepo,
		carts:   carts,
		orders:  orders,
		gateway: gateway,
		cfg:     cfg,
	}
}

// PlaceOrder converts a cart snapshot into an immutable order and a hosted
// payment session, returning the session's redirect URL. The step order
// matters:
//
//  1. validate the snapshot is non-empty,
//  2. resolve current catalog names and prices (price at order time, not at
//     add-to-cart time),
//  3. create the order in Placed state,
//  4. clear the user's cart — before any payment call, so the same cart
//     cannot be checked out twice even if payment is abandoned,
//  5. request the hosted session with redirect URLs carrying the order id.
//
// Order creation and cart clearing are two separate writes, not a
// transaction; a failure between them leaves an orphaned Placed order with
// no payment session, which is harmless.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (string, error) {
	if len(req.Items) == 0 {
		return "", ErrEmptyCart
	}

	ids := make([]string, len(req.Items))
	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return "", &InvalidQuantityError{ItemID: line.ItemID}
		}
		ids[i] = line.ItemID
	}

	fetched, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return "", errors.Wrap(err, "get catalog items")
	}

	itemMap := make(map[string]catalog.Item, len(fetched))
	for _, it := range fetched {
		itemMap[it.ID] = it
	}

	// Snapshot names and prices as they are right now.
	snapshot := make([]Item, len(req.Items))
	for i, line := range req.Items {
		it, ok := itemMap[line.ItemID]
		if !ok {
			return "", &ItemNotFoundError{ItemID: line.ItemID}
		}
		snapshot[i] = Item{
			ItemID:   it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: line.Quantity,
		}
	}

	o := &Order{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Items:     snapshot,
		Amount:    req.Amount,
		Address:   req.Address,
		Status:    StatusPlaced,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return "", errors.Wrap(err, "create order")
	}

	if err := s.carts.Clear(ctx, req.UserID); err != nil {
		return "", errors.Wrap(err, "clear cart")
	}

	factor := decimal.NewFromInt(s.cfg.SubunitFactor)
	lines := make([]CheckoutLine, 0, len(snapshot)+1)
	for _, it := range snapshot {
		lines = append(lines, CheckoutLine{
			Name:       it.Name,
			UnitAmount: it.Price.Mul(factor).IntPart(),
			Quantity:   it.Quantity,
		})
	}
	lines = append(lines, CheckoutLine{
		Name:       "Delivery charges",
		UnitAmount: s.cfg.DeliveryCharge.Mul(factor).IntPart(),
		Quantity:   1,
	})

	successURL := fmt.Sprintf("%s/verify?success=true&orderId=%s", s.cfg.FrontendURL, o.ID)
	cancelURL := fmt.Sprintf("%s/verify?success=false&orderId=%s", s.cfg.FrontendURL, o.ID)

	sessionURL, err := s.gateway.CreateSession(ctx, lines, successURL, cancelURL)
	if err != nil {
		return "", errors.Wrap(err, "create checkout session")
	}

	return sessionURL, nil
}

// ConfirmPayment finalizes an order based on the checkout flow's return path.
// Success marks the order paid; re-confirming a paid order is a harmless
// overwrite. Failure deletes the order outright — the cart was already
// cleared at placement, so the items are gone.
//
// The success flag is echoed by the client from the provider redirect and is
// not verified against the provider's own record.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string, success bool) error {
	if !success {
		if err := s.orders.Delete(ctx, orderID); err != nil {
			return errors.Wrap(err, "delete unpaid order")
		}
		return nil
	}
	if err := s.orders.MarkPaid(ctx, orderID); err != nil {
		return errors.Wrap(err, "mark order paid")
	}
	return nil
}

// UserOrders returns every order placed by the given user.
func (s *Service) UserOrders(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list user orders")
	}
	return orders, nil
}

// ListAll returns every order in the ledger, unfiltered.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// SetStatus overwrites an order's status label. Labels are free text; no
// validation is applied.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) error {
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return errors.Wrap(err, "update status")
	}
	return nil
}

// DeleteOrder unconditionally removes an order. Deleting a missing id
// succeeds.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		return errors.Wrap(err, "delete order")
	}
	return nil
}
