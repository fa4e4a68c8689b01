package cartsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodfetch/storefront/internal/dal/interfaces/ikvbridge"
	"github.com/foodfetch/storefront/internal/dal/repositories/kv/memory"
	"github.com/foodfetch/storefront/internal/service/models/cartline"
)

func margherita() cartline.CartLine {
	return cartline.CartLine{
		ID:             1,
		Name:           "Margherita Pizza",
		Price:          8.99,
		RestaurantName: "Pizza Palace",
	}
}

func tiramisu() cartline.CartLine {
	return cartline.CartLine{
		ID:             2,
		Name:           "Tiramisu",
		Price:          4.50,
		RestaurantName: "Pizza Palace",
	}
}

func TestAddItemStartsAtQuantityOne(t *testing.T) {
	svc := MustNewCartService()

	svc.AddItem(context.Background(), margherita())

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	svc := MustNewCartService()

	svc.AddItem(context.Background(), margherita())
	svc.AddItem(context.Background(), margherita())
	svc.AddItem(context.Background(), tiramisu())

	lines := svc.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 3, svc.TotalItemCount())
}

func TestAddItemWithoutIDIsNoOp(t *testing.T) {
	svc := MustNewCartService()

	svc.AddItem(context.Background(), cartline.CartLine{Name: "Nameless Special", Price: 9.99})

	assert.Empty(t, svc.Lines())
	assert.Zero(t, svc.TotalItemCount())
}

func TestSetQuantity(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())

	svc.SetQuantity(context.Background(), 1, 5)

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())
	svc.AddItem(context.Background(), tiramisu())

	svc.SetQuantity(context.Background(), 1, 0)

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ID)
}

func TestSetQuantityUnknownIDIsNoOp(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())

	svc.SetQuantity(context.Background(), 42, 3)

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())
	svc.AddItem(context.Background(), tiramisu())

	svc.RemoveItem(context.Background(), 1)

	lines := svc.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ID)
}

func TestClear(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())

	svc.Clear(context.Background())

	assert.Empty(t, svc.Lines())
	assert.Zero(t, svc.TotalPrice())
}

func TestTotalPriceIsComputedFresh(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())
	svc.AddItem(context.Background(), tiramisu())

	assert.InDelta(t, 13.49, svc.TotalPrice(), 1e-9)

	svc.SetQuantity(context.Background(), 1, 2)

	assert.InDelta(t, 22.48, svc.TotalPrice(), 1e-9)
}

func TestLinesReturnsCopy(t *testing.T) {
	svc := MustNewCartService()
	svc.AddItem(context.Background(), margherita())

	lines := svc.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, svc.Lines()[0].Quantity)
}

func TestCartPersistsThroughBridge(t *testing.T) {
	bridge := memory.NewKVRepository()

	svc := MustNewCartService(WithBridge(bridge))
	svc.AddItem(context.Background(), margherita())
	svc.AddItem(context.Background(), margherita())

	restored := MustNewCartService(WithBridge(bridge))

	lines := restored.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCorruptPersistedCartReadsAsEmpty(t *testing.T) {
	bridge := memory.NewKVRepository()
	bridge.SetRaw(ikvbridge.KeyCart, []byte("{not json"))

	svc := MustNewCartService(WithBridge(bridge))

	assert.Empty(t, svc.Lines())

	// The corrupt value is cleared on first read.
	var out []cartline.CartLine
	assert.False(t, bridge.Read(context.Background(), ikvbridge.KeyCart, &out))
}
