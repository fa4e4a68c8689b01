package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/foodfetch/storefront/internal/service/models/cartline"
	"github.com/foodfetch/storefront/internal/validation"
)

// service is an interface for the cart service.
type service interface {
	AddItem(ctx context.Context, item cartline.CartLine)
	SetQuantity(ctx context.Context, id int64, quantity int)
	RemoveItem(ctx context.Context, id int64)
	Clear(ctx context.Context)
	Lines() []cartline.CartLine
	TotalItemCount() int
	TotalPrice() float64
}

type cartResponse struct {
	Items      []cartline.CartLine `json:"items"`
	TotalItems int                 `json:"totalItems"`
	TotalPrice float64             `json:"totalPrice"`
}

func writeCart(w http.ResponseWriter, service service) {
	resp := cartResponse{
		Items:      service.Lines(),
		TotalItems: service.TotalItemCount(),
		TotalPrice: service.TotalPrice(),
	}
	if resp.Items == nil {
		resp.Items = []cartline.CartLine{}
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending cart response", "error", err)
	}
}

// Get returns the cart contents with derived totals.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	writeCart(w, service)
}

// AddItem adds a menu item to the cart or bumps its quantity.
func AddItem(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	var req validation.AddCartItemRequest
	if err := validation.DecodeAndValidate(r, validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding add cart item request", "error", err)

		return
	}

	service.AddItem(r.Context(), cartline.CartLine{
		ID:             req.ID,
		Name:           req.Name,
		Price:          req.Price,
		RestaurantName: req.RestaurantName,
		ImageURL:       req.ImageURL,
	})

	writeCart(w, service)
}

// SetQuantity sets the quantity of a cart line. Zero removes the line.
func SetQuantity(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)

		return
	}

	var req validation.SetQuantityRequest
	if err := validation.DecodeAndValidate(r, validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding set quantity request", "error", err)

		return
	}

	service.SetQuantity(r.Context(), id, *req.Quantity)

	writeCart(w, service)
}

// RemoveItem removes a cart line.
func RemoveItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)

		return
	}

	service.RemoveItem(r.Context(), id)

	writeCart(w, service)
}

// Clear empties the cart.
func Clear(w http.ResponseWriter, r *http.Request, service service) {
	service.Clear(r.Context())

	writeCart(w, service)
}
