package icatalogapi

import (
	"context"

	"github.com/foodfetch/storefront/internal/service/models/menuitem"
)

// Restaurant is the catalog service's restaurant representation.
type Restaurant struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

// ICatalogAPI is the upstream catalog service consumed by the menu service.
type ICatalogAPI interface {
	Restaurants(ctx context.Context) ([]Restaurant, error)
	RestaurantByID(ctx context.Context, id int64) (*Restaurant, error)
	MenuByRestaurant(ctx context.Context, restaurantID int64) ([]menuitem.MenuItem, error)
}
