// Package testsuite - общие проверки, которые проходит каждый бэкенд хранилища
package testsuite

import (
	"context"
	"fmt"
	"sync"
	"teamTasks/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend(t *testing.T, backend storage.Backend) {
	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, backend.HealthCheck(context.Background()))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := backend.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		ctx := context.Background()
		value := []byte(`[{"id":"1"}]`)

		require.NoError(t, backend.Put(ctx, "tasks", value))

		got, err := backend.Get(ctx, "tasks")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("put replaces the whole value", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, backend.Put(ctx, "replace", []byte(`[{"id":"1"},{"id":"2"}]`)))
		require.NoError(t, backend.Put(ctx, "replace", []byte(`[]`)))

		got, err := backend.Get(ctx, "replace")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, backend.Put(ctx, "first", []byte("1")))
		require.NoError(t, backend.Put(ctx, "second", []byte("2")))

		got, err := backend.Get(ctx, "first")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), got)
	})

	t.Run("invalid key", func(t *testing.T) {
		ctx := context.Background()

		assert.ErrorIs(t, backend.Put(ctx, "../escape", []byte("x")), storage.ErrInvalidKey)
		_, err := backend.Get(ctx, "")
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
	})

	t.Run("concurrent writers leave one complete value", func(t *testing.T) {
		ctx := context.Background()
		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, backend.Put(ctx, "race", []byte(fmt.Sprintf(`{"writer":%d}`, i))))
			}(i)
		}
		wg.Wait()

		got, err := backend.Get(ctx, "race")
		require.NoError(t, err)
		assert.Regexp(t, `^\{"writer":\d\}$`, string(got))
	})
}
