package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func TestAutoSwapCache_DelegatesToFallbackUntilSwap(t *testing.T) {
	fallback := NewNoopValkeyCache(logger.New("error"))
	dialAttempts := 0

	a := newAutoSwapCache(fallback, logger.New("error"), func() (ResultCache, error) {
		dialAttempts++
		return nil, errors.New("still unreachable")
	})
	defer a.Stop()

	ctx := context.Background()
	require.NoError(t, a.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestAutoSwapCache_SwapsToRealCacheOnceDialSucceeds(t *testing.T) {
	fallback := NewNoopValkeyCache(logger.New("error"))
	real := NewNoopValkeyCache(logger.New("error")) // stand-in for a reachable backend

	dialed := make(chan struct{}, 1)
	a := newAutoSwapCache(fallback, logger.New("error"), func() (ResultCache, error) {
		select {
		case dialed <- struct{}{}:
		default:
		}
		return real, nil
	})
	defer a.Stop()

	require.Eventually(t, func() bool {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.current == real
	}, 10*time.Second, 50*time.Millisecond, "autoSwapCache should swap to the dialed backend")
}

func TestAutoSwapCache_HealthCheckDelegates(t *testing.T) {
	fallback := NewNoopValkeyCache(logger.New("error"))
	a := newAutoSwapCache(fallback, logger.New("error"), func() (ResultCache, error) {
		return nil, errors.New("unreachable")
	})
	defer a.Stop()

	assert.Error(t, a.HealthCheck(context.Background()), "noop fallback reports degraded health")
}
