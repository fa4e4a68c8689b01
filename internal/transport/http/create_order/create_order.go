package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/foodfetch/storefront/internal/service/models/cartline"
	"github.com/foodfetch/storefront/internal/service/models/order"
	"github.com/foodfetch/storefront/internal/validation"
)

// service is an interface for the order lifecycle service.
type service interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// cart is the slice of the cart service checkout needs.
type cart interface {
	Clear(ctx context.Context)
}

func toModel(req validation.CreateOrderRequest) order.Order {
	items := make([]cartline.CartLine, len(req.Items))
	for i, item := range req.Items {
		items[i] = cartline.CartLine{
			ID:             item.ID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			RestaurantName: item.RestaurantName,
			ImageURL:       item.ImageURL,
		}
	}

	return order.Order{
		Items:           items,
		RestaurantName:  req.RestaurantName,
		DeliveryAddress: req.DeliveryAddress,
		Email:           req.Email,
		PaymentMethod:   req.PaymentMethod,
	}
}

// CreateOrder handles checkout. The cart is cleared only after the order has
// been accepted, as a separate step: a failed checkout leaves the cart intact.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service, cart cart, validate *validatorv10.Validate) {
	var req validation.CreateOrderRequest
	if err := validation.DecodeAndValidate(r, validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding create order request", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), toModel(req))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error creating order", "error", err)

		return
	}

	cart.Clear(r.Context())

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending create order response", "error", err)
	}
}
