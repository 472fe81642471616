package redis_test

import (
	"context"
	"fmt"
	redisstorage "teamTasks/internal/storage/redis"
	"teamTasks/internal/storage/testsuite"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("не удалось остановить контейнер: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestStorage_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}

	addr := startRedis(t)

	s, err := redisstorage.Open(context.Background(), addr, "", 0, "")
	require.NoError(t, err)
	defer s.Close()

	testsuite.TestBackend(t, s)

	t.Run("keys are prefixed", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "tasks", []byte("[]")))

		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()

		got, err := client.Get(ctx, redisstorage.DefaultPrefix+"tasks").Result()
		require.NoError(t, err)
		assert.Equal(t, "[]", got)
	})
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redisstorage.Open(ctx, "127.0.0.1:1", "", 0, "")
	assert.Error(t, err)
}
