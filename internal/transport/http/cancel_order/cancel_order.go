package cancelorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/foodfetch/storefront/internal/service/models/order"
	"github.com/foodfetch/storefront/internal/validation"
)

// service is an interface for the order lifecycle service.
type service interface {
	CancelOrder(ctx context.Context, orderID, reason string) error
}

// CancelOrder cancels an order with a mandatory reason.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	orderID := chi.URLParam(r, "id")

	var req validation.CancelOrderRequest
	if err := validation.DecodeAndValidate(r, validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding cancel order request", "error", err)

		return
	}

	if err := service.CancelOrder(r.Context(), orderID, req.Reason); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusConflict)
		}
		slog.Error("Error cancelling order", "order_id", orderID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
