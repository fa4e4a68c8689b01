package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/foodfetch/storefront/internal/service/models/order"
	"github.com/foodfetch/storefront/internal/validation"
)

// service is an interface for the order lifecycle service.
type service interface {
	GetOrder(orderID string) (order.Order, bool)
	ConfirmPayment(ctx context.Context, orderID string) (order.Order, bool)
	AdvanceStatus(ctx context.Context, orderID string, target order.Status) (order.Order, bool)
}

// UpdateStatus moves an order along its lifecycle. Confirmation is its own
// transition; any other target status must be the order's next step, statuses
// are never skipped or rolled back.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	orderID := chi.URLParam(r, "id")

	var req validation.UpdateStatusRequest
	if err := validation.DecodeAndValidate(r, validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding update status request", "error", err)

		return
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing order status", "status", req.Status, "error", err)

		return
	}

	if _, found := service.GetOrder(orderID); !found {
		http.Error(w, "order not found", http.StatusNotFound)

		return
	}

	var (
		updated order.Order
		ok      bool
	)
	if target == order.StatusConfirmed {
		updated, ok = service.ConfirmPayment(r.Context(), orderID)
	} else {
		updated, ok = service.AdvanceStatus(r.Context(), orderID, target)
	}
	if !ok {
		http.Error(w, "status transition not allowed", http.StatusConflict)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending update status response", "error", err)
	}
}
