package remote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionStates(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})

	data, state, err := c.Snapshot()
	assert.Equal(t, Idle, state)
	assert.Nil(t, data)
	assert.NoError(t, err)
	assert.True(t, c.UpdatedAt().IsZero())

	require.NoError(t, c.Load(context.Background()))

	data, state, err = c.Snapshot()
	assert.Equal(t, Ready, state)
	assert.Equal(t, []int{1, 2, 3}, data)
	assert.NoError(t, err)
	assert.False(t, c.UpdatedAt().IsZero())
}

func TestCollectionFailureKeepsPreviousData(t *testing.T) {
	var fallar bool
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		if fallar {
			return nil, errors.New("backend caído")
		}
		return []string{"ok"}, nil
	})

	require.NoError(t, c.Load(context.Background()))

	fallar = true
	require.Error(t, c.Load(context.Background()))

	data, state, err := c.Snapshot()
	assert.Equal(t, Failed, state)
	assert.Error(t, err)
	// La última carga buena sigue disponible.
	assert.Equal(t, []string{"ok"}, data)
}

func TestCollectionSingleFlight(t *testing.T) {
	bloqueo := make(chan struct{})
	var llamadas int
	var mu sync.Mutex

	c := NewCollection(func(ctx context.Context) (int, error) {
		mu.Lock()
		llamadas++
		mu.Unlock()
		<-bloqueo
		return 7, nil
	})

	done := make(chan struct{})
	go func() {
		_ = c.Load(context.Background())
		close(done)
	}()

	// Esperar a que la primera carga esté en vuelo.
	assert.Eventually(t, func() bool {
		_, state, _ := c.Snapshot()
		return state == Loading
	}, time.Second, 5*time.Millisecond)

	// Una segunda carga concurrente vuelve sin disparar otro fetch.
	require.NoError(t, c.Load(context.Background()))

	close(bloqueo)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, llamadas)
}

func TestPollStopsOnContextCancel(t *testing.T) {
	var mu sync.Mutex
	var llamadas int

	c := NewCollection(func(ctx context.Context) (int, error) {
		mu.Lock()
		llamadas++
		mu.Unlock()
		return 0, errors.New("siempre falla")
	})

	ctx, cancel := context.WithCancel(context.Background())
	var errores int
	done := make(chan struct{})
	go func() {
		c.Poll(ctx, 10*time.Millisecond, func(error) {
			mu.Lock()
			errores++
			mu.Unlock()
		})
		close(done)
	}()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return llamadas >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll no terminó tras cancelar el contexto")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, errores, 1)
}
