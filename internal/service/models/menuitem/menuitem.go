package menuitem

// MenuItem represents a single dish on a restaurant menu.
type MenuItem struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	Rating         float64 `json:"rating"`
	RestaurantID   int64   `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}
