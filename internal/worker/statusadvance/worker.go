package statusadvance

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// store is the slice of the order lifecycle store the worker drives.
type store interface {
	AdvanceAll(ctx context.Context) int
	MoveCouriers()
}

// Worker simulates backend push updates: it periodically advances every
// non-terminal order one status and moves in-transit couriers toward their
// drop-off. It owns no state of its own, so tests drive the store's
// AdvanceAll/MoveCouriers directly instead of waiting on real timers.
type Worker struct {
	store           store
	statusInterval  time.Duration
	courierInterval time.Duration
	stopCh          chan struct{}
}

// NewWorker creates a new status-advance worker.
func NewWorker(store store) *Worker {
	statusSeconds := viper.GetInt("simulation.status_interval_seconds")
	if statusSeconds == 0 {
		statusSeconds = 60
	}

	courierSeconds := viper.GetInt("simulation.courier_interval_seconds")
	if courierSeconds == 0 {
		courierSeconds = 3
	}

	return &Worker{
		store:           store,
		statusInterval:  time.Duration(statusSeconds) * time.Second,
		courierInterval: time.Duration(courierSeconds) * time.Second,
		stopCh:          make(chan struct{}),
	}
}

// Start runs the simulation until the context is cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	statusTicker := time.NewTicker(w.statusInterval)
	defer statusTicker.Stop()

	courierTicker := time.NewTicker(w.courierInterval)
	defer courierTicker.Stop()

	slog.Info("Status advance worker started",
		"status_interval", w.statusInterval,
		"courier_interval", w.courierInterval,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Status advance worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Status advance worker stopped")

			return
		case <-statusTicker.C:
			if advanced := w.store.AdvanceAll(ctx); advanced > 0 {
				slog.Info("Advanced order statuses", "count", advanced)
			}
		case <-courierTicker.C:
			w.store.MoveCouriers()
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}
