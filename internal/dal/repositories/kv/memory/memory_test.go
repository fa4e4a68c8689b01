package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingKey(t *testing.T) {
	repo := NewKVRepository()

	var out string
	assert.False(t, repo.Read(context.Background(), "cart", &out))
}

func TestWriteReadRoundTrip(t *testing.T) {
	repo := NewKVRepository()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, repo.Write(context.Background(), "cart", payload{Name: "pizza", Count: 2}))

	var out payload
	require.True(t, repo.Read(context.Background(), "cart", &out))
	assert.Equal(t, payload{Name: "pizza", Count: 2}, out)
}

func TestRemove(t *testing.T) {
	repo := NewKVRepository()
	require.NoError(t, repo.Write(context.Background(), "user", "alice"))

	require.NoError(t, repo.Remove(context.Background(), "user"))

	var out string
	assert.False(t, repo.Read(context.Background(), "user", &out))
}

func TestCorruptValueIsClearedOnRead(t *testing.T) {
	repo := NewKVRepository()
	repo.SetRaw("favorites", []byte("[1, 2,"))

	var out []int64
	assert.False(t, repo.Read(context.Background(), "favorites", &out))

	// The corrupt value must not survive the failed read.
	repo.mu.Lock()
	_, ok := repo.items["favorites"]
	repo.mu.Unlock()
	assert.False(t, ok)
}
