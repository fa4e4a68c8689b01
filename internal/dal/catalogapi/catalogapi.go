package catalogapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"

	"github.com/foodfetch/storefront/internal/dal/interfaces/icatalogapi"
	"github.com/foodfetch/storefront/internal/service/models/menuitem"
)

// Client talks to the upstream restaurant catalog service.
type Client struct {
	http *resty.Client
}

// NewClient configures a resty client from the services.catalog_api config section.
func NewClient() *Client {
	timeoutSeconds := viper.GetInt("services.catalog_api.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 10
	}

	client := resty.New().
		SetBaseURL(viper.GetString("services.catalog_api.base_url")).
		SetTimeout(time.Duration(timeoutSeconds)*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http: client,
	}
}

// Restaurants lists all restaurants.
func (c *Client) Restaurants(ctx context.Context) ([]icatalogapi.Restaurant, error) {
	var out []icatalogapi.Restaurant
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/restaurants")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurants: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog service returned status %d: %s", resp.StatusCode(), resp.Body())
	}

	return out, nil
}

// RestaurantByID fetches a single restaurant.
func (c *Client) RestaurantByID(ctx context.Context, id int64) (*icatalogapi.Restaurant, error) {
	var out icatalogapi.Restaurant
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/restaurants/" + strconv.FormatInt(id, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurant %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog service returned status %d: %s", resp.StatusCode(), resp.Body())
	}

	return &out, nil
}

// MenuByRestaurant fetches the menu for a restaurant.
func (c *Client) MenuByRestaurant(ctx context.Context, restaurantID int64) ([]menuitem.MenuItem, error) {
	var out []menuitem.MenuItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/menu/restaurants/" + strconv.FormatInt(restaurantID, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu for restaurant %d: %w", restaurantID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog service returned status %d: %s", resp.StatusCode(), resp.Body())
	}

	return out, nil
}
