package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crimson-sun/sentir/internal/engine/provider"
	"github.com/crimson-sun/sentir/internal/model"
)

type fakeProvider struct {
	id     int
	closed bool
}

func (f *fakeProvider) Classify(context.Context, string) ([]provider.RawScore, error) {
	return nil, nil
}

func (f *fakeProvider) ClassifyBatch(context.Context, []string) ([][]provider.RawScore, error) {
	return nil, nil
}

func (f *fakeProvider) Close() error {
	f.closed = true
	return nil
}

func TestGetAcquiresOnce(t *testing.T) {
	var acquisitions atomic.Int32
	want := &fakeProvider{id: 1}
	r := New(func(ctx context.Context) (provider.Provider, error) {
		acquisitions.Add(1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		return want, nil
	})

	const n = 16
	handles := make([]provider.Provider, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := r.Get(context.Background())
			if err != nil {
				t.Errorf("Get failed: %v", err)
				return
			}
			handles[i] = p
		}(i)
	}
	wg.Wait()

	if got := acquisitions.Load(); got != 1 {
		t.Fatalf("expected exactly 1 acquisition, got %d", got)
	}
	for i, h := range handles {
		if h != want {
			t.Fatalf("caller %d observed a different handle", i)
		}
	}
}

func TestGetReturnsCachedHandle(t *testing.T) {
	var acquisitions atomic.Int32
	r := New(func(ctx context.Context) (provider.Provider, error) {
		acquisitions.Add(1)
		return &fakeProvider{}, nil
	})

	if _, err := r.Get(context.Background()); err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	if _, err := r.Get(context.Background()); err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if got := acquisitions.Load(); got != 1 {
		t.Fatalf("expected 1 acquisition, got %d", got)
	}
}

func TestGetFailureSurfacedAndNotCached(t *testing.T) {
	var acquisitions atomic.Int32
	boom := errors.New("download failed")
	r := New(func(ctx context.Context) (provider.Provider, error) {
		if acquisitions.Add(1) == 1 {
			return nil, boom
		}
		return &fakeProvider{}, nil
	})

	_, err := r.Get(context.Background())
	if !errors.Is(err, model.ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}

	// A failed acquisition is not cached; the next Get retries.
	if _, err := r.Get(context.Background()); err != nil {
		t.Fatalf("retry after failure should succeed, got %v", err)
	}
	if got := acquisitions.Load(); got != 2 {
		t.Fatalf("expected 2 acquisitions, got %d", got)
	}
}

func TestGetConcurrentFailureSharedByAllWaiters(t *testing.T) {
	var acquisitions atomic.Int32
	r := New(func(ctx context.Context) (provider.Provider, error) {
		acquisitions.Add(1)
		time.Sleep(20 * time.Millisecond)
		return nil, errors.New("no capability")
	})

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.Get(context.Background())
		}(i)
	}
	wg.Wait()

	if got := acquisitions.Load(); got != 1 {
		t.Fatalf("expected 1 shared acquisition, got %d", got)
	}
	for i, err := range errs {
		if !errors.Is(err, model.ErrCapabilityUnavailable) {
			t.Fatalf("caller %d: expected ErrCapabilityUnavailable, got %v", i, err)
		}
	}
}

func TestGetCancelledCallerDetaches(t *testing.T) {
	release := make(chan struct{})
	r := New(func(ctx context.Context) (provider.Provider, error) {
		<-release
		return &fakeProvider{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Get(ctx)
		done <- err
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The acquisition finishes in the background and later callers reuse it.
	close(release)
	if _, err := r.Get(context.Background()); err != nil {
		t.Fatalf("Get after cancelled first caller failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	f := &fakeProvider{}
	r := New(func(ctx context.Context) (provider.Provider, error) {
		return f, nil
	})
	if _, err := r.Get(context.Background()); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !f.closed {
		t.Fatal("expected provider to be closed")
	}

	// Close without an acquired handle is a no-op.
	if err := New(nil).Close(); err != nil {
		t.Fatalf("Close on empty registry failed: %v", err)
	}
}
