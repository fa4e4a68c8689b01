package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/foodfetch/storefront/internal/dal/interfaces/ieventsrepo"
	"github.com/foodfetch/storefront/internal/dal/interfaces/iorderapi"
	"github.com/foodfetch/storefront/internal/service/models/cartline"
	"github.com/foodfetch/storefront/internal/service/models/order"
	"github.com/foodfetch/storefront/internal/service/models/orderevent"
)

// courierStepFraction is how far the simulated courier moves toward the
// drop-off per movement tick.
const courierStepFraction = 0.05

// OrderService is the order lifecycle store for one session. It owns the
// active-orders collection and the single current order id.
type OrderService struct {
	mu             sync.Mutex
	orders         []order.Order
	currentOrderID string

	api    iorderapi.IOrderAPI
	events ieventsrepo.IEventsRepository

	nowFunc func() time.Time
	idFunc  func() string
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		nowFunc: time.Now,
		idFunc:  newOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderAPI sets the upstream order service client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderAPI(api iorderapi.IOrderAPI) option {
	return func(s *OrderService) {
		s.api = api
	}
}

// WithEventsRepository sets the order event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventsRepository(events ieventsrepo.IEventsRepository) option {
	return func(s *OrderService) {
		s.events = events
	}
}

// WithNowFunc overrides the clock. Tests use it for deterministic timestamps.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNowFunc(now func() time.Time) option {
	return func(s *OrderService) {
		s.nowFunc = now
	}
}

func newOrderID() string {
	return fmt.Sprintf("%s%d", order.IDPrefix, rand.Intn(1000000))
}

func defaultCourier() order.Courier {
	return order.Courier{
		Name:    "John Doe",
		Rating:  4.8,
		Lat:     40.7128,
		Lng:     -74.0060,
		DestLat: 40.7308,
		DestLng: -73.9975,
	}
}

// CreateOrder builds an order from the given data, tries to register it
// upstream, and appends it to the active-orders collection. When the upstream
// call fails the order is synthesized locally and marked Local; creation never
// fails on transport errors.
func (s *OrderService) CreateOrder(ctx context.Context, data order.Order) (order.Order, error) {
	if len(data.Items) == 0 {
		return order.Order{}, order.ErrNoItems
	}

	restaurantName := data.RestaurantName
	if restaurantName == "" {
		restaurantName = data.Items[0].RestaurantName
	}
	if restaurantName == "" {
		return order.Order{}, order.ErrNoRestaurant
	}

	now := s.nowFunc()

	o := data.Snapshot()
	o.RestaurantName = restaurantName
	if o.Subtotal == 0 {
		for _, line := range o.Items {
			o.Subtotal += line.LineTotal()
		}
	}
	if o.Tax == 0 {
		o.Tax = o.Subtotal * order.TaxRate
	}
	if o.DeliveryFee == 0 {
		o.DeliveryFee = order.DefaultDeliveryFee
	}
	if o.Total == 0 {
		o.Total = o.Subtotal + o.Tax + o.DeliveryFee
	}
	o.Status = order.StatusPending
	o.Steps = order.NewSteps(now)
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Courier = defaultCourier()

	if s.api != nil {
		remote, err := s.api.CreateOrder(ctx, createRequest(o))
		if err != nil {
			slog.Warn("Upstream order creation failed, synthesizing local order", "error", err)
			o.OrderID = s.idFunc()
			o.Local = true
		} else {
			o.OrderID = remote.ID
			if status, perr := order.ParseStatus(remote.Status); perr == nil {
				o.Status = status
			}
			o.SyncSteps(now)
		}
	} else {
		o.OrderID = s.idFunc()
		o.Local = true
	}

	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.currentOrderID = o.OrderID
	s.mu.Unlock()

	s.publish(ctx, orderevent.New(
		orderevent.TypeCreated, o.OrderID, o.Status.String(), o.Total, o.RestaurantName, now,
	))

	return o.Snapshot(), nil
}

// ConfirmPayment transitions a pending order to CONFIRMED and completes the
// first tracking step. ok is false for unknown ids and for orders that are no
// longer pending; nothing is pushed upstream or published unless the
// transition actually happened.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID string) (order.Order, bool) {
	now := s.nowFunc()

	s.mu.Lock()
	idx := s.indexLocked(orderID)
	if idx < 0 {
		s.mu.Unlock()

		return order.Order{}, false
	}

	o := &s.orders[idx]
	if o.Status != order.StatusPending {
		s.mu.Unlock()

		return order.Order{}, false
	}
	o.Status = order.StatusConfirmed
	o.UpdatedAt = now
	o.SyncSteps(now)
	snapshot := o.Snapshot()
	local := o.Local
	s.mu.Unlock()

	if s.api != nil && !local {
		if _, err := s.api.UpdateStatus(ctx, orderID, order.StatusConfirmed.String()); err != nil {
			slog.Warn("Upstream status update failed", "order_id", orderID, "error", err)
		}
	}

	s.publish(ctx, orderevent.New(
		orderevent.TypeStatusChanged, snapshot.OrderID, snapshot.Status.String(),
		snapshot.Total, snapshot.RestaurantName, now,
	))

	return snapshot, true
}

// CancelOrder cancels an order with the given reason. Await-then-commit: the
// upstream cancel must succeed before any local state changes, so a reported
// cancellation is always trustworthy. Locally synthesized orders have no
// upstream identity and cancel directly.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, reason string) error {
	s.mu.Lock()
	idx := s.indexLocked(orderID)
	if idx < 0 {
		s.mu.Unlock()

		return order.ErrNotFound
	}
	if s.orders[idx].Status.Terminal() {
		status := s.orders[idx].Status
		s.mu.Unlock()

		return fmt.Errorf("order %s is already %s", orderID, status)
	}
	local := s.orders[idx].Local
	s.mu.Unlock()

	if s.api != nil && !local {
		if _, err := s.api.CancelOrder(ctx, orderID); err != nil {
			return fmt.Errorf("failed to cancel order upstream: %w", err)
		}
	}

	now := s.nowFunc()

	s.mu.Lock()
	idx = s.indexLocked(orderID)
	if idx < 0 {
		s.mu.Unlock()

		return order.ErrNotFound
	}
	o := &s.orders[idx]
	// The order may have reached a terminal state while the upstream cancel
	// was in flight. Terminal orders are never resurrected.
	if o.Status.Terminal() {
		status := o.Status
		s.mu.Unlock()

		return fmt.Errorf("order %s is already %s", orderID, status)
	}
	o.Status = order.StatusCancelled
	o.CancellationReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	total := o.Total
	restaurantName := o.RestaurantName
	if s.currentOrderID == orderID {
		s.currentOrderID = ""
	}
	s.mu.Unlock()

	s.publish(ctx, orderevent.New(
		orderevent.TypeCancelled, orderID, order.StatusCancelled.String(), total, restaurantName, now,
	))

	return nil
}

// GetOrder looks the order up in the active-orders collection.
func (s *OrderService) GetOrder(orderID string) (order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(orderID)
	if idx < 0 {
		return order.Order{}, false
	}

	return s.orders[idx].Snapshot(), true
}

// TrackOrder returns the order with the given id, fetching and adopting it
// from the upstream service when it is not held locally.
func (s *OrderService) TrackOrder(ctx context.Context, orderID string) (order.Order, bool) {
	if o, ok := s.GetOrder(orderID); ok {
		return o, true
	}

	if s.api == nil {
		return order.Order{}, false
	}

	remote, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		slog.Warn("Upstream order fetch failed", "order_id", orderID, "error", err)

		return order.Order{}, false
	}
	if remote == nil {
		return order.Order{}, false
	}

	o := s.adoptRemote(*remote)

	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.mu.Unlock()

	return o.Snapshot(), true
}

// HasActiveOrders reports whether the session holds any orders. Terminal
// orders count: the tracking view still renders delivered and cancelled
// orders until the session ends.
func (s *OrderService) HasActiveOrders() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders) > 0
}

// CurrentOrderID returns the id of the order currently shown in checkout and
// tracking, or the empty string.
func (s *OrderService) CurrentOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentOrderID
}

// Orders returns snapshots of all session orders.
func (s *OrderService) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Snapshot())
	}

	return out
}

// AdvanceStatus moves an order to target when target is the order's next
// pipeline status. The check and the transition share one lock acquisition,
// so concurrent requests for the same target cannot advance an order twice.
// advanced is false when the order is unknown, terminal, or target is not the
// next status.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, target order.Status) (o order.Order, advanced bool) {
	now := s.nowFunc()

	s.mu.Lock()
	idx := s.indexLocked(orderID)
	if idx < 0 {
		s.mu.Unlock()

		return order.Order{}, false
	}

	ord := &s.orders[idx]
	next, ok := ord.Status.Next()
	if !ok || next != target {
		s.mu.Unlock()

		return order.Order{}, false
	}

	ord.Status = next
	ord.UpdatedAt = now
	ord.SyncSteps(now)
	snapshot := ord.Snapshot()
	s.mu.Unlock()

	s.publish(ctx, orderevent.New(
		orderevent.TypeStatusChanged, snapshot.OrderID, snapshot.Status.String(),
		snapshot.Total, snapshot.RestaurantName, now,
	))

	return snapshot, true
}

// AdvanceAll moves every non-terminal order one step down the pipeline and
// publishes the resulting status events as a batch. It returns the number of
// orders advanced. The simulation worker drives this on a timer.
func (s *OrderService) AdvanceAll(ctx context.Context) int {
	now := s.nowFunc()

	s.mu.Lock()
	var evts []orderevent.OrderEvent
	for i := range s.orders {
		o := &s.orders[i]
		next, ok := o.Status.Next()
		if !ok {
			continue
		}
		o.Status = next
		o.UpdatedAt = now
		o.SyncSteps(now)
		evts = append(evts, orderevent.New(
			orderevent.TypeStatusChanged, o.OrderID, o.Status.String(), o.Total, o.RestaurantName, now,
		))
	}
	s.mu.Unlock()

	if len(evts) > 0 && s.events != nil {
		if err := s.events.PublishBatch(ctx, evts); err != nil {
			slog.Warn("Failed to publish status change events", "count", len(evts), "error", err)
		}
	}

	return len(evts)
}

// MoveCouriers advances the courier of every in-transit order toward its
// drop-off point.
func (s *OrderService) MoveCouriers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].Status == order.StatusInTransit {
			s.orders[i].Courier.Advance(courierStepFraction)
		}
	}
}

func (s *OrderService) indexLocked(orderID string) int {
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			return i
		}
	}

	return -1
}

// adoptRemote transforms the upstream representation into the local shape.
// Step completion is derived from the remote status.
func (s *OrderService) adoptRemote(remote iorderapi.RemoteOrder) order.Order {
	now := s.nowFunc()

	status, err := order.ParseStatus(remote.Status)
	if err != nil {
		slog.Warn("Unknown upstream order status, assuming pending", "status", remote.Status)
		status = order.StatusPending
	}

	items := make([]cartline.CartLine, 0, len(remote.Items))
	subtotal := 0.0
	for _, item := range remote.Items {
		line := cartline.CartLine{
			ID:             item.ItemID,
			Name:           item.Name,
			Price:          item.Price,
			Quantity:       item.Quantity,
			RestaurantName: remote.RestaurantName,
		}
		items = append(items, line)
		subtotal += line.LineTotal()
	}

	tax := subtotal * order.TaxRate

	o := order.Order{
		OrderID:         remote.ID,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		DeliveryFee:     order.DefaultDeliveryFee,
		Total:           remote.Amount,
		Status:          status,
		Steps:           order.NewSteps(now),
		RestaurantName:  remote.RestaurantName,
		DeliveryAddress: remote.DeliveryAddress,
		CreatedAt:       remote.CreatedAt,
		UpdatedAt:       now,
		Courier:         defaultCourier(),
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.Total == 0 {
		o.Total = subtotal + tax + o.DeliveryFee
	}
	o.SyncSteps(now)

	return o
}

// publish sends a single event, best-effort. Event delivery never fails a
// store operation.
func (s *OrderService) publish(ctx context.Context, evt orderevent.OrderEvent) {
	if s.events == nil {
		return
	}

	if err := s.events.Publish(ctx, evt); err != nil {
		slog.Warn("Failed to publish order event",
			"event_type", evt.EventType,
			"order_id", evt.OrderID,
			"error", err,
		)
	}
}

func createRequest(o order.Order) iorderapi.CreateOrderRequest {
	items := make([]iorderapi.RemoteOrderItem, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, iorderapi.RemoteOrderItem{
			ItemID:   line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	return iorderapi.CreateOrderRequest{
		RestaurantName:  o.RestaurantName,
		Items:           items,
		PaymentMethod:   o.PaymentMethod,
		DeliveryAddress: o.DeliveryAddress,
	}
}
