package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushgraph/internal/user/models"
	"pushgraph/pkg/rdf"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory()

	_, ok, err := c.Get(ctx, "http://x/u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, &models.User{URI: "http://x/u1", Name: "alice"}))
	got, ok, err := c.Get(ctx, "http://x/u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Name)

	t.Run("returned users are copies", func(t *testing.T) {
		got.Name = "mallory"
		again, _, _ := c.Get(ctx, "http://x/u1")
		assert.Equal(t, "alice", again.Name)
	})
}

func TestInMemoryCacheConcurrentPuts(t *testing.T) {
	ctx := context.Background()
	c := NewInMemory()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Put(ctx, &models.User{URI: rdf.IRI("http://x/u1"), Name: "alice"})
			_, _, _ = c.Get(ctx, "http://x/u1")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
