package trackorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodfetch/storefront/internal/service/models/order"
)

// service is an interface for the order lifecycle service.
type service interface {
	TrackOrder(ctx context.Context, orderID string) (order.Order, bool)
}

// TrackOrder resolves an order by id, falling back to the upstream order
// service for orders this session does not know about.
func TrackOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "id")

	o, ok := service.TrackOrder(r.Context(), orderID)
	if !ok {
		http.Error(w, "order not found", http.StatusNotFound)

		return
	}

	if err := json.NewEncoder(w).Encode(o); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending track order response", "error", err)
	}
}
