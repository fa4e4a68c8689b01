package statusadvance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	mu       sync.Mutex
	advanced int
	moved    int
}

func (f *fakeStore) AdvanceAll(_ context.Context) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanced++

	return 1
}

func (f *fakeStore) MoveCouriers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moved++
}

func TestNewWorkerDefaults(t *testing.T) {
	viper.Reset()

	w := NewWorker(&fakeStore{})

	assert.Equal(t, 60*time.Second, w.statusInterval)
	assert.Equal(t, 3*time.Second, w.courierInterval)
}

func TestNewWorkerReadsConfig(t *testing.T) {
	viper.Reset()
	viper.Set("simulation.status_interval_seconds", 5)
	viper.Set("simulation.courier_interval_seconds", 1)
	defer viper.Reset()

	w := NewWorker(&fakeStore{})

	assert.Equal(t, 5*time.Second, w.statusInterval)
	assert.Equal(t, 1*time.Second, w.courierInterval)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	w := NewWorker(&fakeStore{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestWorkerStop(t *testing.T) {
	w := NewWorker(&fakeStore{})

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
