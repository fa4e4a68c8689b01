package validation

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// New returns the validator instance shared by the HTTP handlers.
func New() *validator.Validate {
	return validator.New()
}

// DecodeAndValidate decodes the JSON request body into out and runs struct
// validation on the result.
func DecodeAndValidate(r *http.Request, v *validator.Validate, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}

	if err := v.Struct(out); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}

	return nil
}

// AddCartItemRequest is the body of POST /api/cart/items.
type AddCartItemRequest struct {
	ID             int64   `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	RestaurantName string  `json:"restaurantName"`
	ImageURL       string  `json:"imageUrl"`
}

// SetQuantityRequest is the body of PUT /api/cart/items/{id}. Quantity is a
// pointer so an explicit zero, which removes the line, passes validation.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CreateOrderItem is a single line of a checkout request.
type CreateOrderItem struct {
	ID             int64   `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	Quantity       int     `json:"quantity" validate:"required,min=1"`
	RestaurantName string  `json:"restaurantName"`
	ImageURL       string  `json:"imageUrl"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	RestaurantName  string            `json:"restaurantName" validate:"required"`
	DeliveryAddress string            `json:"deliveryAddress" validate:"required"`
	Email           string            `json:"email" validate:"omitempty,email"`
	PaymentMethod   string            `json:"paymentMethod"`
}

// UpdateStatusRequest is the body of PUT /api/orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CancelOrderRequest is the body of POST /api/orders/{id}/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// SignInRequest is the body of POST /api/auth/login.
type SignInRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}
