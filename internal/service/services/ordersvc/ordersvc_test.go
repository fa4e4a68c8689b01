package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodfetch/storefront/internal/dal/interfaces/iorderapi"
	"github.com/foodfetch/storefront/internal/service/models/cartline"
	"github.com/foodfetch/storefront/internal/service/models/order"
	"github.com/foodfetch/storefront/internal/service/models/orderevent"
)

type fakeOrderAPI struct {
	createResp *iorderapi.RemoteOrder
	createErr  error
	getResp    *iorderapi.RemoteOrder
	getErr     error
	cancelErr  error
	cancelFunc func()

	cancelled     []string
	statusUpdates []string
}

func (f *fakeOrderAPI) CreateOrder(_ context.Context, _ iorderapi.CreateOrderRequest) (*iorderapi.RemoteOrder, error) {
	return f.createResp, f.createErr
}

func (f *fakeOrderAPI) GetOrder(_ context.Context, _ string) (*iorderapi.RemoteOrder, error) {
	return f.getResp, f.getErr
}

func (f *fakeOrderAPI) UpdateStatus(_ context.Context, orderID, status string) (*iorderapi.RemoteOrder, error) {
	f.statusUpdates = append(f.statusUpdates, orderID+":"+status)

	return nil, nil
}

func (f *fakeOrderAPI) CancelOrder(_ context.Context, orderID string) (*iorderapi.RemoteOrder, error) {
	if f.cancelFunc != nil {
		f.cancelFunc()
	}
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	f.cancelled = append(f.cancelled, orderID)

	return nil, nil
}

func (f *fakeOrderAPI) ActiveOrders(_ context.Context) ([]iorderapi.RemoteOrder, error) {
	return nil, nil
}

type fakeEvents struct {
	published []orderevent.OrderEvent
}

func (f *fakeEvents) Publish(_ context.Context, evt orderevent.OrderEvent) error {
	f.published = append(f.published, evt)

	return nil
}

func (f *fakeEvents) PublishBatch(_ context.Context, evts []orderevent.OrderEvent) error {
	f.published = append(f.published, evts...)

	return nil
}

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func checkoutOrder() order.Order {
	return order.Order{
		Items: []cartline.CartLine{
			{ID: 1, Name: "Margherita Pizza", Price: 8.99, Quantity: 1, RestaurantName: "Pizza Palace"},
			{ID: 2, Name: "Garlic Bread", Price: 2.99, Quantity: 1, RestaurantName: "Pizza Palace"},
		},
		DeliveryAddress: "1 Main St",
	}
}

func newTestService(opts ...option) *OrderService {
	opts = append(opts, WithNowFunc(func() time.Time { return testTime }))

	return MustNewOrderService(opts...)
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc := newTestService()

	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	assert.InDelta(t, 11.98, o.Subtotal, 1e-9)
	assert.InDelta(t, 0.9584, o.Tax, 1e-9)
	assert.InDelta(t, 2.99, o.DeliveryFee, 1e-9)
	assert.InDelta(t, 11.98+0.9584+2.99, o.Total, 1e-9)
}

func TestCreateOrderRejectsEmptyOrder(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateOrder(context.Background(), order.Order{DeliveryAddress: "1 Main St"})

	assert.ErrorIs(t, err, order.ErrNoItems)
}

func TestCreateOrderRejectsMissingRestaurant(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateOrder(context.Background(), order.Order{
		Items: []cartline.CartLine{{ID: 1, Name: "Mystery Dish", Price: 5, Quantity: 1}},
	})

	assert.ErrorIs(t, err, order.ErrNoRestaurant)
}

func TestCreateOrderWithoutUpstreamIsLocal(t *testing.T) {
	svc := newTestService()

	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	assert.True(t, o.Local)
	assert.Regexp(t, "^FD[0-9]+$", o.OrderID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Len(t, o.Steps, 4)
	assert.Equal(t, o.OrderID, svc.CurrentOrderID())
}

func TestCreateOrderUpstreamFailureFallsBackToLocal(t *testing.T) {
	api := &fakeOrderAPI{createErr: errors.New("connection refused")}
	svc := newTestService(WithOrderAPI(api))

	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	assert.True(t, o.Local)
	assert.Regexp(t, "^FD[0-9]+$", o.OrderID)
}

func TestCreateOrderAdoptsUpstreamIdentity(t *testing.T) {
	api := &fakeOrderAPI{createResp: &iorderapi.RemoteOrder{ID: "FD424242", Status: "CONFIRMED"}}
	svc := newTestService(WithOrderAPI(api))

	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	assert.False(t, o.Local)
	assert.Equal(t, "FD424242", o.OrderID)
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.True(t, o.Steps[0].Completed)
}

func TestCreateOrderSnapshotsItems(t *testing.T) {
	svc := newTestService()

	data := checkoutOrder()
	o, err := svc.CreateOrder(context.Background(), data)
	require.NoError(t, err)

	data.Items[0].Quantity = 99

	stored, ok := svc.GetOrder(o.OrderID)
	require.True(t, ok)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestCreateOrderPublishesEvent(t *testing.T) {
	events := &fakeEvents{}
	svc := newTestService(WithEventsRepository(events))

	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	require.Len(t, events.published, 1)
	assert.Equal(t, orderevent.TypeCreated, events.published[0].EventType)
	assert.Equal(t, o.OrderID, events.published[0].OrderID)
}

func TestConfirmPayment(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	confirmed, ok := svc.ConfirmPayment(context.Background(), o.OrderID)
	require.True(t, ok)

	assert.Equal(t, order.StatusConfirmed, confirmed.Status)
	assert.True(t, confirmed.Steps[0].Completed)
	assert.Equal(t, "12:00", confirmed.Steps[0].Time)
}

func TestConfirmPaymentOnTerminalOrder(t *testing.T) {
	api := &fakeOrderAPI{createResp: &iorderapi.RemoteOrder{ID: "FD424242", Status: "PENDING"}}
	events := &fakeEvents{}
	svc := newTestService(WithOrderAPI(api), WithEventsRepository(events))
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(context.Background(), o.OrderID, "changed my mind"))
	publishedBefore := len(events.published)

	_, ok := svc.ConfirmPayment(context.Background(), o.OrderID)

	assert.False(t, ok)
	// Nothing goes upstream and no event fires for a rejected confirmation.
	assert.Empty(t, api.statusUpdates)
	assert.Len(t, events.published, publishedBefore)

	unchanged, found := svc.GetOrder(o.OrderID)
	require.True(t, found)
	assert.Equal(t, order.StatusCancelled, unchanged.Status)
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	svc := newTestService()

	_, ok := svc.ConfirmPayment(context.Background(), "FD000000")

	assert.False(t, ok)
}

func TestCancelOrder(t *testing.T) {
	events := &fakeEvents{}
	svc := newTestService(WithEventsRepository(events))
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	err = svc.CancelOrder(context.Background(), o.OrderID, "changed my mind")
	require.NoError(t, err)

	cancelled, ok := svc.GetOrder(o.OrderID)
	require.True(t, ok)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)
	assert.Equal(t, "changed my mind", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, testTime, *cancelled.CancelledAt)
	assert.Empty(t, svc.CurrentOrderID())
	assert.Equal(t, orderevent.TypeCancelled, events.published[len(events.published)-1].EventType)
}

func TestCancelOrderUpstreamFailureLeavesStateUnchanged(t *testing.T) {
	api := &fakeOrderAPI{createResp: &iorderapi.RemoteOrder{ID: "FD424242", Status: "PENDING"}}
	svc := newTestService(WithOrderAPI(api))
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	api.cancelErr = errors.New("gateway timeout")

	err = svc.CancelOrder(context.Background(), o.OrderID, "too slow")
	require.Error(t, err)

	unchanged, ok := svc.GetOrder(o.OrderID)
	require.True(t, ok)
	assert.Equal(t, order.StatusPending, unchanged.Status)
	assert.Empty(t, unchanged.CancellationReason)
	assert.Equal(t, o.OrderID, svc.CurrentOrderID())
}

func TestCancelOrderDeliveredDuringUpstreamCancel(t *testing.T) {
	api := &fakeOrderAPI{createResp: &iorderapi.RemoteOrder{ID: "FD424242", Status: "PENDING"}}
	svc := newTestService(WithOrderAPI(api))
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	// The order reaches DELIVERED while the upstream cancel is in flight.
	api.cancelFunc = func() {
		for svc.AdvanceAll(context.Background()) > 0 {
		}
	}

	err = svc.CancelOrder(context.Background(), o.OrderID, "too late")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already DELIVERED")

	final, ok := svc.GetOrder(o.OrderID)
	require.True(t, ok)
	assert.Equal(t, order.StatusDelivered, final.Status)
	assert.Nil(t, final.CancelledAt)
}

func TestCancelOrderTerminalOrder(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(context.Background(), o.OrderID, "first"))

	assert.Error(t, svc.CancelOrder(context.Background(), o.OrderID, "second"))
}

func TestCancelOrderUnknown(t *testing.T) {
	svc := newTestService()

	err := svc.CancelOrder(context.Background(), "FD000000", "whatever")

	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestCancelledOrderStepsAreFrozen(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	_, ok := svc.ConfirmPayment(context.Background(), o.OrderID)
	require.True(t, ok)
	require.NoError(t, svc.CancelOrder(context.Background(), o.OrderID, "late"))

	cancelled, _ := svc.GetOrder(o.OrderID)
	assert.True(t, cancelled.Steps[0].Completed)
	assert.False(t, cancelled.Steps[1].Completed)
}

func TestTrackOrderAdoptsRemoteOrder(t *testing.T) {
	api := &fakeOrderAPI{getResp: &iorderapi.RemoteOrder{
		ID:             "FD777777",
		Status:         "IN_TRANSIT",
		RestaurantName: "Pizza Palace",
		Items: []iorderapi.RemoteOrderItem{
			{ItemID: 1, Name: "Margherita Pizza", Price: 8.99, Quantity: 2},
		},
	}}
	svc := newTestService(WithOrderAPI(api))

	o, ok := svc.TrackOrder(context.Background(), "FD777777")
	require.True(t, ok)

	assert.Equal(t, order.StatusInTransit, o.Status)
	assert.InDelta(t, 17.98, o.Subtotal, 1e-9)
	assert.True(t, o.Steps[0].Completed)
	assert.True(t, o.Steps[1].Completed)
	assert.True(t, o.Steps[2].Completed)
	assert.False(t, o.Steps[3].Completed)

	// The adopted order is now held locally.
	_, ok = svc.GetOrder("FD777777")
	assert.True(t, ok)
}

func TestTrackOrderUnknownEverywhere(t *testing.T) {
	api := &fakeOrderAPI{getErr: errors.New("not found")}
	svc := newTestService(WithOrderAPI(api))

	_, ok := svc.TrackOrder(context.Background(), "FD000000")

	assert.False(t, ok)
}

func TestAdvanceStatusStepsAreMonotonic(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	for {
		current, ok := svc.GetOrder(o.OrderID)
		require.True(t, ok)

		next, hasNext := current.Status.Next()
		if !hasNext {
			assert.Equal(t, order.StatusDelivered, current.Status)

			break
		}

		advanced, ok := svc.AdvanceStatus(context.Background(), o.OrderID, next)
		require.True(t, ok)
		for i := 1; i < len(advanced.Steps); i++ {
			if advanced.Steps[i].Completed {
				assert.True(t, advanced.Steps[i-1].Completed)
			}
		}
	}
}

func TestAdvanceStatusRejectsNonNextTarget(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	_, ok := svc.AdvanceStatus(context.Background(), o.OrderID, order.StatusDelivered)
	assert.False(t, ok)

	unchanged, found := svc.GetOrder(o.OrderID)
	require.True(t, found)
	assert.Equal(t, order.StatusPending, unchanged.Status)

	// A repeated request for an already-reached status is rejected too.
	_, ok = svc.AdvanceStatus(context.Background(), o.OrderID, order.StatusConfirmed)
	require.True(t, ok)
	_, ok = svc.AdvanceStatus(context.Background(), o.OrderID, order.StatusConfirmed)
	assert.False(t, ok)

	current, _ := svc.GetOrder(o.OrderID)
	assert.Equal(t, order.StatusConfirmed, current.Status)
}

func TestAdvanceAllStopsAtDelivered(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, 1, svc.AdvanceAll(context.Background()))
	}
	assert.Zero(t, svc.AdvanceAll(context.Background()))

	delivered, _ := svc.GetOrder(o.OrderID)
	assert.Equal(t, order.StatusDelivered, delivered.Status)
	for _, step := range delivered.Steps {
		assert.True(t, step.Completed)
	}
}

func TestMoveCouriers(t *testing.T) {
	svc := newTestService()
	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	// PENDING -> CONFIRMED -> PREPARING -> IN_TRANSIT
	for _, target := range []order.Status{order.StatusConfirmed, order.StatusPreparing, order.StatusInTransit} {
		_, advanced := svc.AdvanceStatus(context.Background(), o.OrderID, target)
		require.True(t, advanced)
	}

	before, _ := svc.GetOrder(o.OrderID)
	svc.MoveCouriers()
	after, _ := svc.GetOrder(o.OrderID)

	assert.NotEqual(t, before.Courier.Lat, after.Courier.Lat)
	assert.Less(t,
		(after.Courier.DestLat-after.Courier.Lat)/(before.Courier.DestLat-before.Courier.Lat),
		1.0,
	)
}

func TestHasActiveOrdersIncludesTerminalOrders(t *testing.T) {
	svc := newTestService()
	assert.False(t, svc.HasActiveOrders())

	o, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)
	assert.True(t, svc.HasActiveOrders())

	require.NoError(t, svc.CancelOrder(context.Background(), o.OrderID, "done"))
	assert.True(t, svc.HasActiveOrders())
}

func TestOrdersReturnsSnapshots(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateOrder(context.Background(), checkoutOrder())
	require.NoError(t, err)

	orders := svc.Orders()
	require.Len(t, orders, 1)
	orders[0].Items[0].Quantity = 99

	assert.Equal(t, 1, svc.Orders()[0].Items[0].Quantity)
}
