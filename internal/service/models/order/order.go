package order

import (
	"errors"
	"time"

	"github.com/foodfetch/storefront/internal/service/models/cartline"
)

const (
	// TaxRate is applied to the subtotal when the caller supplies no tax.
	TaxRate = 0.08
	// DefaultDeliveryFee is charged when the caller supplies no fee.
	DefaultDeliveryFee = 2.99
	// IDPrefix prefixes locally generated order ids.
	IDPrefix = "FD"
)

var (
	ErrNoItems      = errors.New("order has no items")
	ErrNoRestaurant = errors.New("order has no restaurant name")
	ErrNotFound     = errors.New("order not found")
)

// Courier is the rider assigned to an order, with a simulated position.
type Courier struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	DestLat float64 `json:"destLat"`
	DestLng float64 `json:"destLng"`
}

// Advance moves the courier the given fraction of the remaining way to the drop-off.
func (c *Courier) Advance(fraction float64) {
	if fraction <= 0 {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	c.Lat += (c.DestLat - c.Lat) * fraction
	c.Lng += (c.DestLng - c.Lng) * fraction
}

// Order represents an order in the session's active-orders collection.
// Items is a snapshot of the cart at creation time and never aliases the live cart.
type Order struct {
	OrderID            string              `json:"orderId"`
	Items              []cartline.CartLine `json:"items"`
	Subtotal           float64             `json:"subtotal"`
	Tax                float64             `json:"tax"`
	DeliveryFee        float64             `json:"deliveryFee"`
	Total              float64             `json:"total"`
	Status             Status              `json:"status"`
	Steps              []Step              `json:"steps"`
	RestaurantName     string              `json:"restaurantName"`
	DeliveryAddress    string              `json:"deliveryAddress"`
	Email              string              `json:"email,omitempty"`
	PaymentMethod      string              `json:"paymentMethod,omitempty"`
	CancellationReason string              `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
	Courier            Courier             `json:"courier"`
	// Local marks orders synthesized without an upstream identity after a
	// transport failure.
	Local bool `json:"local"`
}

// SyncSteps derives step completion from the current status. A later step is
// never marked completed while an earlier one is not. Cancellation leaves the
// flags as they were.
func (o *Order) SyncSteps(now time.Time) {
	r := o.Status.rank()
	if r < 0 {
		return
	}
	for i := range o.Steps {
		if r >= i+1 && !o.Steps[i].Completed {
			o.Steps[i].Completed = true
			o.Steps[i].Time = now.Format(stepTimeLayout)
		}
	}
}

// Snapshot returns a deep copy of the order, so callers cannot mutate store state.
func (o Order) Snapshot() Order {
	cp := o
	cp.Items = append([]cartline.CartLine(nil), o.Items...)
	cp.Steps = append([]Step(nil), o.Steps...)
	if o.CancelledAt != nil {
		t := *o.CancelledAt
		cp.CancelledAt = &t
	}
	return cp
}
