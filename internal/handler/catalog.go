package handler

import (
	"net/http"

	"github.com/feastly/storefront/internal/domain/catalog"
)

type foodView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
	Available bool    `json:"available"`
}

func toFoodView(it catalog.Item) foodView {
	return foodView{
		ID:        it.ID,
		Name:      it.Name,
		Price:     it.Price.InexactFloat64(),
		Category:  it.Category,
		Image:     it.Image,
		Available: it.Available,
	}
}

// ListFood returns the full purchasable catalog for the storefront client.
func (h *Handler) ListFood(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		fail(w, r, "Error.", err)
		return
	}

	views := make([]foodView, len(items))
	for i, it := range items {
		views[i] = toFoodView(it)
	}
	writeJSON(w, r, dataResponse{Success: true, Data: views})
}
