package usersvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodfetch/storefront/internal/dal/repositories/kv/memory"
	"github.com/foodfetch/storefront/internal/service/models/user"
)

func TestSignInAssignsID(t *testing.T) {
	svc := MustNewUserService(nil)

	u, err := svc.SignIn(context.Background(), user.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, u, current)
}

func TestSignInKeepsCallerID(t *testing.T) {
	svc := MustNewUserService(nil)

	u, err := svc.SignIn(context.Background(), user.User{ID: "u-1", Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "u-1", u.ID)
}

func TestCurrentWithoutSession(t *testing.T) {
	svc := MustNewUserService(nil)

	_, ok := svc.Current()

	assert.False(t, ok)
}

func TestSignOut(t *testing.T) {
	svc := MustNewUserService(nil)
	_, err := svc.SignIn(context.Background(), user.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background()))

	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestSessionPersistsThroughBridge(t *testing.T) {
	bridge := memory.NewKVRepository()

	svc := MustNewUserService(bridge)
	signedIn, err := svc.SignIn(context.Background(), user.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	restored := MustNewUserService(bridge)

	current, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, signedIn, current)
}

func TestSignOutClearsPersistedSession(t *testing.T) {
	bridge := memory.NewKVRepository()

	svc := MustNewUserService(bridge)
	_, err := svc.SignIn(context.Background(), user.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(context.Background()))

	restored := MustNewUserService(bridge)

	_, ok := restored.Current()
	assert.False(t, ok)
}
