package ieventsrepo

import (
	"context"

	"github.com/foodfetch/storefront/internal/service/models/orderevent"
)

// IEventsRepository publishes order lifecycle events for downstream consumers.
type IEventsRepository interface {
	// Publish sends a single event.
	Publish(ctx context.Context, evt orderevent.OrderEvent) error

	// PublishBatch sends a batch of events with bounded concurrency.
	PublishBatch(ctx context.Context, evts []orderevent.OrderEvent) error
}
