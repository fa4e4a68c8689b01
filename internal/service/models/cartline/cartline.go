package cartline

// CartLine represents one distinct menu item and its quantity within the active cart.
// Price is captured at add time and is not re-fetched later.
type CartLine struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	RestaurantName string  `json:"restaurantName"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}

// LineTotal returns price multiplied by quantity at add-time pricing.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}
