package sqlite_test

import (
	"context"
	"path/filepath"
	"teamTasks/internal/storage/sqlite"
	"teamTasks/internal/storage/testsuite"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) (*sqlite.Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.sqlite")
	s, err := sqlite.Open(path)
	require.NoError(t, err)

	return s, path
}

func TestStorage_Backend(t *testing.T) {
	s, _ := openTestStorage(t)
	defer s.Close()

	testsuite.TestBackend(t, s)
}

func TestStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStorage(t)

	require.NoError(t, s.Put(ctx, "tasks", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)
}

func TestStorage_HealthCheckAfterClose(t *testing.T) {
	s, _ := openTestStorage(t)
	require.NoError(t, s.Close())

	assert.Error(t, s.HealthCheck(context.Background()))
}
