package orderevent

import (
	"time"

	"github.com/google/uuid"
)

// Event types published to the order events queue.
const (
	TypeCreated       = "ORDER_CREATED"
	TypeStatusChanged = "STATUS_CHANGED"
	TypeCancelled     = "ORDER_CANCELLED"
)

// OrderEvent represents a lifecycle notification for downstream consumers.
type OrderEvent struct {
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	Amount         float64   `json:"amount"`
	RestaurantName string    `json:"restaurantName"`
	CreatedAt      time.Time `json:"createdAt"`
}

// New builds an event with a fresh event id.
func New(eventType, orderID, status string, amount float64, restaurantName string, now time.Time) OrderEvent {
	return OrderEvent{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		OrderID:        orderID,
		Status:         status,
		Amount:         amount,
		RestaurantName: restaurantName,
		CreatedAt:      now,
	}
}
