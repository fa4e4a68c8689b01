package orderapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"

	"github.com/foodfetch/storefront/internal/dal/interfaces/iorderapi"
)

// Client talks to the upstream order service through the API gateway.
type Client struct {
	http *resty.Client
}

// NewClient configures a resty client from the services.order_api config section.
func NewClient() *Client {
	timeoutSeconds := viper.GetInt("services.order_api.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 10
	}

	client := resty.New().
		SetBaseURL(viper.GetString("services.order_api.base_url")).
		SetTimeout(time.Duration(timeoutSeconds)*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http: client,
	}
}

// CreateOrder submits a new order upstream.
func (c *Client) CreateOrder(ctx context.Context, req iorderapi.CreateOrderRequest) (*iorderapi.RemoteOrder, error) {
	var out iorderapi.RemoteOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create order upstream: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("order service create failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	return &out, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*iorderapi.RemoteOrder, error) {
	var out iorderapi.RemoteOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/orders/" + orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order upstream: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("order service fetch failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	return &out, nil
}

// UpdateStatus pushes a status transition upstream.
func (c *Client) UpdateStatus(ctx context.Context, orderID, status string) (*iorderapi.RemoteOrder, error) {
	var out iorderapi.RemoteOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"status": status}).
		SetResult(&out).
		Put("/orders/" + orderID + "/status")
	if err != nil {
		return nil, fmt.Errorf("failed to update order status upstream: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("order service status update failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	return &out, nil
}

// CancelOrder cancels an order upstream.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*iorderapi.RemoteOrder, error) {
	var out iorderapi.RemoteOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Post("/orders/" + orderID + "/cancel")
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order upstream: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("order service cancel failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	return &out, nil
}

// ActiveOrders lists the caller's active orders.
func (c *Client) ActiveOrders(ctx context.Context) ([]iorderapi.RemoteOrder, error) {
	var out []iorderapi.RemoteOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/orders/active")
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders upstream: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("order service active list failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	return out, nil
}
