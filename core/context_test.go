package core

import (
	"context"
	"sync"
	"testing"

	"github.com/huangsam/ladder/internal/iocache"
	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	mgr := &iocache.MockStoreManager{}
	ctx := WithSuppressHeader(context.Background())
	ctx = withRunID(ctx, 12345)
	ctx = contextWithStoreManager(ctx, mgr)

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runID, ok := getRunID(ctx)
			assert.True(t, shouldSuppressHeader(ctx), "Goroutine %d: shouldSuppressHeader should be true", id)
			assert.True(t, ok, "Goroutine %d: getRunID should return true", id)
			assert.Equal(t, int64(12345), runID, "Goroutine %d: runID should be 12345", id)
			assert.Same(t, mgr, storeManagerFromContext(ctx))
		}(i)
	}
	wg.Wait()
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	_, ok := getRunID(ctx)
	assert.False(t, ok)
	assert.Nil(t, storeManagerFromContext(ctx))

	_, ok = getRunID(withRunID(ctx, 0))
	assert.False(t, ok, "zero run ID means tracking is off")
}
