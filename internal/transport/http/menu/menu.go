package menu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/foodfetch/storefront/internal/dal/interfaces/icatalogapi"
	"github.com/foodfetch/storefront/internal/service/models/menuitem"
)

// service is an interface for the menu service.
type service interface {
	Restaurants(ctx context.Context) ([]icatalogapi.Restaurant, error)
	Restaurant(ctx context.Context, id int64) (*icatalogapi.Restaurant, error)
	Menu(ctx context.Context, restaurantID int64, query menuitem.QueryMenuItemsModel) ([]menuitem.MenuItem, error)
	ToggleFavorite(ctx context.Context, itemID int64) bool
}

type queryMenuRequest struct {
	Search        string `schema:"search,omitempty"`
	Category      string `schema:"category,omitempty"`
	FavoritesOnly bool   `schema:"favoritesOnly,omitempty"`
	Sort          string `schema:"sort,omitempty"`
}

func (q *queryMenuRequest) ToModel() menuitem.QueryMenuItemsModel {
	return menuitem.QueryMenuItemsModel{
		Search:        q.Search,
		Category:      q.Category,
		FavoritesOnly: q.FavoritesOnly,
		Sort:          menuitem.SortOption(q.Sort),
	}
}

func restaurantID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListRestaurants lists all restaurants.
func ListRestaurants(w http.ResponseWriter, r *http.Request, service service) {
	restaurants, err := service.Restaurants(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		slog.Error("Error listing restaurants", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(restaurants); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending restaurants response", "error", err)
	}
}

// GetRestaurant returns a single restaurant.
func GetRestaurant(w http.ResponseWriter, r *http.Request, service service) {
	id, err := restaurantID(r)
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)

		return
	}

	restaurant, err := service.Restaurant(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		slog.Error("Error getting restaurant", "restaurant_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(restaurant); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending restaurant response", "error", err)
	}
}

// GetMenu returns a restaurant's menu projected through the query parameters.
func GetMenu(w http.ResponseWriter, r *http.Request, service service) {
	id, err := restaurantID(r)
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)

		return
	}

	decoder := schema.NewDecoder()
	query := &queryMenuRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding menu query", "error", err)

		return
	}

	items, err := service.Menu(r.Context(), id, query.ToModel())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		slog.Error("Error getting menu", "restaurant_id", id, "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending menu response", "error", err)
	}
}

type toggleFavoriteResponse struct {
	ItemID   int64 `json:"itemId"`
	Favorite bool  `json:"favorite"`
}

// ToggleFavorite flips an item's favorite flag and returns the new state.
func ToggleFavorite(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)

		return
	}

	favorite := service.ToggleFavorite(r.Context(), id)

	if err := json.NewEncoder(w).Encode(toggleFavoriteResponse{ItemID: id, Favorite: favorite}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending toggle favorite response", "error", err)
	}
}
