package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feastly/storefront/internal/domain/order"
)

type placeOrderRequest struct {
	UserID  string          `json:"userId"`
	Items   []order.Line    `json:"items"`
	Amount  decimal.Decimal `json:"amount"`
	Address map[string]any  `json:"address"`
}

type placeOrderResponse struct {
	Success    bool   `json:"success"`
	SessionURL string `json:"session_url"`
}

// looseBool accepts JSON true/false as well as the string forms "true" and
// "false". The web client forwards the provider redirect's query parameters
// verbatim, so the verify call arrives with a string flag.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	*b = looseBool(bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte(`"true"`)))
	return nil
}

type verifyOrderRequest struct {
	OrderID string    `json:"orderId"`
	Success looseBool `json:"success"`
}

type userOrdersRequest struct {
	UserID string `json:"userId"`
}

type updateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type deleteOrderRequest struct {
	OrderID string `json:"orderId"`
}

// orderView is the wire shape of an order; decimals go out as plain numbers.
type orderView struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	Items            []orderItemView `json:"items"`
	Amount           float64         `json:"amount"`
	Address          map[string]any  `json:"address"`
	Status           string          `json:"status"`
	PaymentConfirmed bool            `json:"paymentConfirmed"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type orderItemView struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func toOrderView(o order.Order) orderView {
	items := make([]orderItemView, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemView{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price.InexactFloat64(),
			Quantity: it.Quantity,
		}
	}
	return orderView{
		ID:               o.ID,
		UserID:           o.UserID,
		Items:            items,
		Amount:           o.Amount.InexactFloat64(),
		Address:          o.Address,
		Status:           o.Status,
		PaymentConfirmed: o.PaymentConfirmed,
		CreatedAt:        o.CreatedAt,
	}
}

func toOrderViews(orders []order.Order) []orderView {
	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return views
}

// PlaceOrder converts the cart snapshot into an order plus a hosted payment
// session and returns the redirect URL. Any failure, from validation to the
// provider call, surfaces as the same generic message.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		fail(w, r, "Error placing order.", nil)
		return
	}

	sessionURL, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		UserID:  req.UserID,
		Items:   req.Items,
		Amount:  req.Amount,
		Address: req.Address,
	})
	if err != nil {
		fail(w, r, "Error placing order.", err)
		return
	}

	writeJSON(w, r, placeOrderResponse{Success: true, SessionURL: sessionURL})
}

// VerifyOrder finalizes an order from the checkout return path. The response
// envelope is overloaded: success:true means paid, success:false means the
// order was cancelled and deleted.
func (h *Handler) VerifyOrder(w http.ResponseWriter, r *http.Request) {
	var req verifyOrderRequest
	if !decode(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		fail(w, r, "Error verifying order.", nil)
		return
	}

	if err := h.orders.ConfirmPayment(r.Context(), req.OrderID, bool(req.Success)); err != nil {
		fail(w, r, "Error verifying order.", err)
		return
	}

	if req.Success {
		writeJSON(w, r, messageResponse{Success: true, Message: "Paid."})
		return
	}
	writeJSON(w, r, messageResponse{Success: false, Message: "Not Paid."})
}

// UserOrders returns the calling user's orders.
func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	var req userOrdersRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		fail(w, r, "Error fetching user orders.", nil)
		return
	}

	orders, err := h.orders.UserOrders(r.Context(), req.UserID)
	if err != nil {
		fail(w, r, "Error fetching user orders.", err)
		return
	}
	writeJSON(w, r, dataResponse{Success: true, Data: toOrderViews(orders)})
}

// ListOrders returns every order in the ledger for the operator panel.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		fail(w, r, "Error.", err)
		return
	}
	writeJSON(w, r, dataResponse{Success: true, Data: toOrderViews(orders)})
}

// UpdateStatus overwrites an order's free-text status label.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if req.OrderID == "" || req.Status == "" {
		fail(w, r, "Error.", nil)
		return
	}

	if err := h.orders.SetStatus(r.Context(), req.OrderID, req.Status); err != nil {
		fail(w, r, "Error.", err)
		return
	}
	writeJSON(w, r, messageResponse{Success: true, Message: "Status updated."})
}

// DeleteOrder removes an order unconditionally; a missing id still succeeds.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	var req deleteOrderRequest
	if !decode(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		fail(w, r, "Error deleting order.", nil)
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), req.OrderID); err != nil {
		fail(w, r, "Error deleting order.", err)
		return
	}
	writeJSON(w, r, messageResponse{Success: true, Message: "Order deleted."})
}
