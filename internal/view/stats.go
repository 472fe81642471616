package view

import "teamTasks/internal/models/task"

type Stats struct {
	Total      int `json:"total" yaml:"total"`
	Completed  int `json:"completed" yaml:"completed"`
	InProgress int `json:"inProgress" yaml:"inProgress"`
	Pending    int `json:"pending" yaml:"pending"`
}

// Aggregate считает задачи по статусам за один проход.
// Задачи с неизвестным статусом попадают только в Total
func Aggregate(tasks []*task.Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			stats.Completed++
		case task.StatusInProgress:
			stats.InProgress++
		case task.StatusTodo:
			stats.Pending++
		}
	}
	return stats
}
