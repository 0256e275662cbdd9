// Package remote provides the one load-state machine every remote dataset
// in this service shares: Idle -> Loading -> Ready or Failed. It replaces
// the per-view loading/error branching the old dashboard duplicated.
package remote

import (
	"context"
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Collection holds the latest snapshot of a remotely fetched dataset.
type Collection[T any] struct {
	fetch func(context.Context) (T, error)

	mu        sync.Mutex
	state     State
	data      T
	err       error
	updatedAt time.Time
	inFlight  bool
}

func NewCollection[T any](fetch func(context.Context) (T, error)) *Collection[T] {
	return &Collection[T]{fetch: fetch}
}

// Load refreshes the snapshot. A refresh that finds another one already in
// flight returns immediately; there is never more than one outstanding
// fetch per collection.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil
	}
	c.inFlight = true
	c.state = Loading
	c.mu.Unlock()

	data, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.state = Failed
		c.err = err
		return err
	}
	c.state = Ready
	c.data = data
	c.err = nil
	c.updatedAt = time.Now()
	return nil
}

// Snapshot returns the current data, state and error. When the last
// refresh failed, the previous Ready data (if any) is still returned so a
// transient backend hiccup does not blank the dashboard.
func (c *Collection[T]) Snapshot() (T, State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data, c.state, c.err
}

// UpdatedAt reports when the snapshot last became Ready.
func (c *Collection[T]) UpdatedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

// Poll refreshes the collection immediately and then on every tick until
// the context is cancelled. Errors are reported through onError and do not
// stop the loop.
func (c *Collection[T]) Poll(ctx context.Context, every time.Duration, onError func(error)) {
	if err := c.Load(ctx); err != nil && onError != nil {
		onError(err)
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Load(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
