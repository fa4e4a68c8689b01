package iorderapi

import (
	"context"
	"time"
)

// RemoteOrderItem is one line of an upstream order payload.
type RemoteOrderItem struct {
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// RemoteOrder is the upstream order service's representation of an order.
type RemoteOrder struct {
	ID              string            `json:"id"`
	Status          string            `json:"status"`
	Amount          float64           `json:"amount"`
	RestaurantName  string            `json:"restaurantName"`
	DeliveryAddress string            `json:"deliveryAddress"`
	Items           []RemoteOrderItem `json:"items"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CreateOrderRequest is the body for POST /orders.
type CreateOrderRequest struct {
	RestaurantName  string            `json:"restaurantName"`
	Items           []RemoteOrderItem `json:"items"`
	PaymentMethod   string            `json:"paymentMethod"`
	DeliveryAddress string            `json:"deliveryAddress"`
}

// IOrderAPI is the upstream order service consumed by the order lifecycle store.
type IOrderAPI interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*RemoteOrder, error)
	GetOrder(ctx context.Context, orderID string) (*RemoteOrder, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*RemoteOrder, error)
	CancelOrder(ctx context.Context, orderID string) (*RemoteOrder, error)
	ActiveOrders(ctx context.Context) ([]RemoteOrder, error)
}
