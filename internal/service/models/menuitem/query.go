package menuitem

import (
	"sort"
	"strings"
)

// SortOption selects the ordering applied after filtering.
type SortOption string

const (
	SortRecommended SortOption = "recommended"
	SortPriceAsc    SortOption = "priceAsc"
	SortPriceDesc   SortOption = "priceDesc"
	SortNameAsc     SortOption = "nameAsc"
	SortPopular     SortOption = "popular"
)

// QueryMenuItemsModel represents filter parameters for projecting a menu.
// Search, Category and FavoritesOnly are ANDed together.
type QueryMenuItemsModel struct {
	Search        string             `json:"search,omitempty"`
	Category      string             `json:"category,omitempty"`
	FavoritesOnly bool               `json:"favoritesOnly,omitempty"`
	Favorites     map[int64]struct{} `json:"-"`
	Sort          SortOption         `json:"sort,omitempty"`
}

// Apply returns the filtered and sorted projection of items.
// The input slice is never modified; empty input yields empty output.
func (q QueryMenuItemsModel) Apply(items []MenuItem) []MenuItem {
	search := strings.ToLower(q.Search)

	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		if q.Category != "" && item.Category != q.Category {
			continue
		}
		if q.FavoritesOnly {
			if _, ok := q.Favorites[item.ID]; !ok {
				continue
			}
		}
		out = append(out, item)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	// SortRecommended keeps the input order.

	return out
}
