// Package registry owns the process-wide model provider handle: acquired
// lazily, at most one acquisition in flight, shared read-only afterwards.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/crimson-sun/sentir/internal/engine/provider"
	"github.com/crimson-sun/sentir/internal/model"
)

// AcquireFunc obtains the inference capability. Acquisition may hold the
// model resident in memory and block for seconds to minutes depending on
// the capability source.
type AcquireFunc func(ctx context.Context) (provider.Provider, error)

// Registry hands out the shared provider handle. Concurrent first calls
// share a single acquisition; a failed acquisition is surfaced to every
// waiter and not cached, so a later Get retries from scratch.
type Registry struct {
	acquire AcquireFunc

	mu     sync.RWMutex
	handle provider.Provider
	flight singleflight.Group
}

// New creates a Registry. No acquisition happens until the first Get.
func New(acquire AcquireFunc) *Registry {
	return &Registry{acquire: acquire}
}

// Get returns the ready provider, acquiring it on first use.
//
// Cancellation of the calling context detaches only that caller: the
// acquisition itself runs on a background context and, on success, is stored
// for later callers, so a cancelled first acquisition never leaves the
// registry half-initialized.
func (r *Registry) Get(ctx context.Context) (provider.Provider, error) {
	r.mu.RLock()
	h := r.handle
	r.mu.RUnlock()
	if h != nil {
		return h, nil
	}

	ch := r.flight.DoChan("model", func() (any, error) {
		start := time.Now()
		slog.Info("acquiring model capability")
		p, err := r.acquire(context.Background())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrCapabilityUnavailable, err)
		}
		r.mu.Lock()
		r.handle = p
		r.mu.Unlock()
		slog.Info("model capability ready", "elapsed", time.Since(start))
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(provider.Provider), nil
	}
}

// Close releases the handle if one was acquired.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == nil {
		return nil
	}
	err := r.handle.Close()
	r.handle = nil
	return err
}
