package listactiveorders

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/foodfetch/storefront/internal/service/models/order"
)

// service is an interface for the order lifecycle service.
type service interface {
	Orders() []order.Order
	HasActiveOrders() bool
	CurrentOrderID() string
}

type listActiveOrdersResponse struct {
	Orders          []order.Order `json:"orders"`
	HasActiveOrders bool          `json:"hasActiveOrders"`
	CurrentOrderID  string        `json:"currentOrderId,omitempty"`
}

// ListActiveOrders returns every order the session knows about together with
// the derived activity flags.
func ListActiveOrders(w http.ResponseWriter, r *http.Request, service service) {
	resp := listActiveOrdersResponse{
		Orders:          service.Orders(),
		HasActiveOrders: service.HasActiveOrders(),
		CurrentOrderID:  service.CurrentOrderID(),
	}
	if resp.Orders == nil {
		resp.Orders = []order.Order{}
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending list orders response", "error", err)
	}
}
