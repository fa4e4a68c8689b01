package menusvc

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/foodfetch/storefront/internal/dal/interfaces/icatalogapi"
	"github.com/foodfetch/storefront/internal/dal/interfaces/ikvbridge"
	"github.com/foodfetch/storefront/internal/service/models/menuitem"
)

// MenuService serves menu projections and owns the session's favorite items.
type MenuService struct {
	mu        sync.Mutex
	favorites map[int64]struct{}

	catalog icatalogapi.ICatalogAPI
	bridge  ikvbridge.IKVBridge
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates the menu service and restores persisted favorites.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{
		favorites: make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.bridge != nil {
		var ids []int64
		if s.bridge.Read(context.Background(), ikvbridge.KeyFavorites, &ids) {
			for _, id := range ids {
				s.favorites[id] = struct{}{}
			}
		}
	}

	return s
}

// WithCatalogAPI sets the upstream catalog client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalogAPI(catalog icatalogapi.ICatalogAPI) option {
	return func(s *MenuService) {
		s.catalog = catalog
	}
}

// WithBridge sets the persistence bridge for favorites.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBridge(bridge ikvbridge.IKVBridge) option {
	return func(s *MenuService) {
		s.bridge = bridge
	}
}

// Restaurants lists all restaurants from the catalog.
func (s *MenuService) Restaurants(ctx context.Context) ([]icatalogapi.Restaurant, error) {
	return s.catalog.Restaurants(ctx)
}

// Restaurant fetches a single restaurant from the catalog.
func (s *MenuService) Restaurant(ctx context.Context, id int64) (*icatalogapi.Restaurant, error) {
	return s.catalog.RestaurantByID(ctx, id)
}

// Menu fetches a restaurant's menu and applies the query projection. The
// favorites set is injected into the query so the projection stays pure.
func (s *MenuService) Menu(ctx context.Context, restaurantID int64, query menuitem.QueryMenuItemsModel) ([]menuitem.MenuItem, error) {
	items, err := s.catalog.MenuByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	query.Favorites = s.favoriteSet()

	return query.Apply(items), nil
}

// ToggleFavorite flips the favorite flag for an item and reports the new state.
func (s *MenuService) ToggleFavorite(ctx context.Context, itemID int64) bool {
	s.mu.Lock()
	_, wasFavorite := s.favorites[itemID]
	if wasFavorite {
		delete(s.favorites, itemID)
	} else {
		s.favorites[itemID] = struct{}{}
	}

	ids := make([]int64, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	if s.bridge != nil {
		if err := s.bridge.Write(ctx, ikvbridge.KeyFavorites, ids); err != nil {
			slog.Error("Failed to persist favorites", "error", err)
		}
	}

	return !wasFavorite
}

// Favorites returns the ids of all favorite items.
func (s *MenuService) Favorites() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// IsFavorite reports whether the item is currently a favorite.
func (s *MenuService) IsFavorite(itemID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.favorites[itemID]

	return ok
}

func (s *MenuService) favoriteSet() map[int64]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int64]struct{}, len(s.favorites))
	for id := range s.favorites {
		out[id] = struct{}{}
	}

	return out
}
