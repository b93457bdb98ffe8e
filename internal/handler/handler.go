// Package handler exposes the storefront JSON API. Every response uses the
// `{success, ...}` envelope the web client expects; failures are reported in
// the body, not through HTTP status codes.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/feastly/storefront/internal/domain/cart"
	"github.com/feastly/storefront/internal/domain/catalog"
	"github.com/feastly/storefront/internal/domain/order"
)

// Handler carries the domain services behind the HTTP surface.
type Handler struct {
	carts   *cart.Service
	orders  *order.Service
	catalog catalog.Repository
}

// New constructs a Handler with the required domain dependencies.
func New(carts *cart.Service, orders *order.Service, catalogRepo catalog.Repository) *Handler {
	return &Handler{
		carts:   carts,
		orders:  orders,
		catalog: catalogRepo,
	}
}

// Routes returns the API route tree, mounted under /api by the caller.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/cart", func(r chi.Router) {
		r.Post("/add", h.AddToCart)
		r.Post("/remove", h.RemoveFromCart)
		r.Post("/get", h.GetCart)
	})

	r.Route("/order", func(r chi.Router) {
		r.Post("/place", h.PlaceOrder)
		r.Post("/verify", h.VerifyOrder)
		r.Post("/userorders", h.UserOrders)
		r.Post("/list", h.ListOrders)
		r.Get("/list", h.ListOrders)
		r.Post("/status", h.UpdateStatus)
		r.Post("/delete", h.DeleteOrder)
	})

	r.Get("/food/list", h.ListFood)

	return r
}
