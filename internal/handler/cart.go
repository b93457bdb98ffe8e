package handler

import (
	"net/http"

	"github.com/feastly/storefront/internal/domain/cart"
)

type cartRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId"`
}

// cartResponse always serializes cartData, even when empty, so the client
// replica can reconcile against an empty mapping.
type cartResponse struct {
	Success  bool      `json:"success"`
	CartData cart.Cart `json:"cartData"`
}

// AddToCart increments the item's quantity in the user's server-side cart.
// The item id is not checked against the catalog.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.ItemID == "" {
		fail(w, r, "Error.", nil)
		return
	}

	if err := h.carts.AddItem(r.Context(), req.UserID, req.ItemID); err != nil {
		fail(w, r, "Error.", err)
		return
	}
	writeJSON(w, r, messageResponse{Success: true, Message: "Added to cart."})
}

// RemoveFromCart decrements the item's quantity; removing an absent item
// still reports success.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.ItemID == "" {
		fail(w, r, "Error.", nil)
		return
	}

	if err := h.carts.RemoveItem(r.Context(), req.UserID, req.ItemID); err != nil {
		fail(w, r, "Error.", err)
		return
	}
	writeJSON(w, r, messageResponse{Success: true, Message: "Removed from cart."})
}

// GetCart returns the user's full cart mapping.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		fail(w, r, "Error.", nil)
		return
	}

	c, err := h.carts.Get(r.Context(), req.UserID)
	if err != nil {
		fail(w, r, "Error.", err)
		return
	}
	writeJSON(w, r, cartResponse{Success: true, CartData: c})
}
