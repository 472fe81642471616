package worker_test

import (
	"context"
	"sync/atomic"
	"teamTasks/internal/metrics"
	"teamTasks/internal/view"
	"teamTasks/internal/worker"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStatsSource struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockStatsSource) Stats(ctx context.Context) view.Stats {
	m.calls.Add(1)
	args := m.Called(ctx)
	return args.Get(0).(view.Stats)
}

var _ worker.StatsSource = (*MockStatsSource)(nil)

func TestStatsWorker_Check(t *testing.T) {
	source := new(MockStatsSource)
	source.On("Stats", mock.Anything).Return(view.Stats{Total: 5, Completed: 2, InProgress: 1, Pending: 1})

	w := worker.NewStatsWorker(source, nil)
	stats := w.Check(context.Background())

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.TasksTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Tasks.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Tasks.WithLabelValues("in-progress")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Tasks.WithLabelValues("todo")))
	source.AssertExpectations(t)
}

func TestStatsWorker_DefaultInterval(t *testing.T) {
	zero := time.Duration(0)
	assert.Equal(t, time.Minute, worker.NewStatsWorker(new(MockStatsSource), nil).Interval())
	assert.Equal(t, time.Minute, worker.NewStatsWorker(new(MockStatsSource), &zero).Interval())
}

func TestStatsWorker_StartStopsOnCancel(t *testing.T) {
	source := new(MockStatsSource)
	source.On("Stats", mock.Anything).Return(view.Stats{})

	interval := 10 * time.Millisecond
	w := worker.NewStatsWorker(source, &interval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return source.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("воркер не остановился после отмены контекста")
	}
}
