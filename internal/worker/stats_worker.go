package worker

import (
	"context"
	"teamTasks/internal/logger"
	"teamTasks/internal/metrics"
	"teamTasks/internal/models/task"
	"teamTasks/internal/view"
	"time"

	"go.uber.org/zap"
)

const defaultInterval = time.Minute

type StatsSource interface {
	Stats(ctx context.Context) view.Stats
}

// StatsWorker периодически пересчитывает статистику и публикует её в метрики.
// Коллекцию он только читает
type StatsWorker struct {
	source   StatsSource
	interval time.Duration
}

func NewStatsWorker(source StatsSource, interval *time.Duration) *StatsWorker {
	intervalToSet := defaultInterval
	if interval != nil && *interval > 0 {
		intervalToSet = *interval
	}

	return &StatsWorker{
		source:   source,
		interval: intervalToSet,
	}
}

func (w *StatsWorker) Interval() time.Duration {
	return w.interval
}

// Start блокируется до отмены ctx. Первая проверка выполняется сразу
func (w *StatsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)

	for {
		select {
		case <-ticker.C:
			logger.Debug("Worker: Пересчёт статистики задач", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Пересчёт статистики останавливается")
			return
		}
	}
}

func (w *StatsWorker) Check(ctx context.Context) view.Stats {
	start := time.Now()

	stats := w.source.Stats(ctx)
	Publish(stats)

	logger.Debug(
		"Worker: Статистика обновлена",
		zap.Duration("ms", time.Since(start)),
		zap.Int("total", stats.Total),
		zap.Int("completed", stats.Completed),
		zap.Int("in_progress", stats.InProgress),
		zap.Int("pending", stats.Pending),
	)
	return stats
}

// Publish выставляет значения метрик по статистике
func Publish(stats view.Stats) {
	metrics.TasksTotal.Set(float64(stats.Total))
	metrics.Tasks.WithLabelValues(string(task.StatusCompleted)).Set(float64(stats.Completed))
	metrics.Tasks.WithLabelValues(string(task.StatusInProgress)).Set(float64(stats.InProgress))
	metrics.Tasks.WithLabelValues(string(task.StatusTodo)).Set(float64(stats.Pending))
}
