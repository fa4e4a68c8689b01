package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/foodfetch/storefront/internal/dal/rabbitmq"
	"github.com/foodfetch/storefront/internal/service/models/orderevent"
)

// EventsRepository publishes order lifecycle events to RabbitMQ.
type EventsRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewEventsRepository declares the order events queue and returns the repository.
func NewEventsRepository(client *rabbitmq.Client) *EventsRepository {
	queueName := viper.GetString("rabbitmq.events_queue")
	if queueName == "" {
		queueName = "storefront.order.events"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &EventsRepository{
		client: client,
		queue:  queue,
	}
}

// Publish sends a single order event.
func (r *EventsRepository) Publish(_ context.Context, evt orderevent.OrderEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	return r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
}

// PublishBatch sends a batch of order events with bounded concurrency.
func (r *EventsRepository) PublishBatch(_ context.Context, evts []orderevent.OrderEvent) error {
	publishCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	g, ctx := errgroup.WithContext(publishCtx)
	g.SetLimit(3)

	for _, evt := range evts {
		g.Go(func() error {
			return r.Publish(ctx, evt)
		})
	}

	return g.Wait()
}
