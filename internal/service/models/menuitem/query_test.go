package menuitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Margherita Pizza", Description: "Tomato and mozzarella", Category: "Pizza", Price: 8.99, Rating: 4.5},
		{ID: 2, Name: "Pepperoni Pizza", Description: "Spicy pepperoni", Category: "Pizza", Price: 10.99, Rating: 4.8},
		{ID: 3, Name: "Tiramisu", Description: "Classic Italian dessert", Category: "Dessert", Price: 4.50, Rating: 4.9},
		{ID: 4, Name: "Garlic Bread", Description: "With herb butter", Category: "Sides", Price: 2.99, Rating: 4.1},
	}
}

func TestApplySearchMatchesNameAndDescription(t *testing.T) {
	q := QueryMenuItemsModel{Search: "pIzZa"}

	out := q.Apply(sampleMenu())

	require.Len(t, out, 2)

	q = QueryMenuItemsModel{Search: "dessert"}
	out = q.Apply(sampleMenu())

	require.Len(t, out, 1)
	assert.Equal(t, "Tiramisu", out[0].Name)
}

func TestApplyCategory(t *testing.T) {
	q := QueryMenuItemsModel{Category: "Pizza"}

	out := q.Apply(sampleMenu())

	require.Len(t, out, 2)
	for _, item := range out {
		assert.Equal(t, "Pizza", item.Category)
	}
}

func TestApplyFavoritesOnly(t *testing.T) {
	q := QueryMenuItemsModel{
		FavoritesOnly: true,
		Favorites:     map[int64]struct{}{3: {}, 4: {}},
	}

	out := q.Apply(sampleMenu())

	require.Len(t, out, 2)
	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, int64(4), out[1].ID)
}

func TestApplyFiltersAreANDed(t *testing.T) {
	q := QueryMenuItemsModel{
		Search:        "pizza",
		FavoritesOnly: true,
		Favorites:     map[int64]struct{}{1: {}},
	}

	out := q.Apply(sampleMenu())

	require.Len(t, out, 1)
	assert.Equal(t, "Margherita Pizza", out[0].Name)
}

func TestApplySortOptions(t *testing.T) {
	priceAsc := QueryMenuItemsModel{Sort: SortPriceAsc}.Apply(sampleMenu())
	assert.Equal(t, int64(4), priceAsc[0].ID)
	assert.Equal(t, int64(2), priceAsc[len(priceAsc)-1].ID)

	priceDesc := QueryMenuItemsModel{Sort: SortPriceDesc}.Apply(sampleMenu())
	assert.Equal(t, int64(2), priceDesc[0].ID)

	nameAsc := QueryMenuItemsModel{Sort: SortNameAsc}.Apply(sampleMenu())
	assert.Equal(t, "Garlic Bread", nameAsc[0].Name)

	popular := QueryMenuItemsModel{Sort: SortPopular}.Apply(sampleMenu())
	assert.Equal(t, "Tiramisu", popular[0].Name)
}

func TestApplyRecommendedKeepsInputOrder(t *testing.T) {
	out := QueryMenuItemsModel{Sort: SortRecommended}.Apply(sampleMenu())

	for i, item := range out {
		assert.Equal(t, int64(i+1), item.ID)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := sampleMenu()

	QueryMenuItemsModel{Sort: SortPriceDesc}.Apply(items)

	assert.Equal(t, int64(1), items[0].ID)
}

func TestApplyEmptyInput(t *testing.T) {
	out := QueryMenuItemsModel{Search: "pizza"}.Apply(nil)

	assert.NotNil(t, out)
	assert.Empty(t, out)
}
