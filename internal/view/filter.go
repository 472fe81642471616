// Package view строит производные представления коллекции задач: фильтр и статистику.
// Входная коллекция никогда не изменяется.
package view

import (
	"fmt"
	"strings"
	"teamTasks/internal/models/task"
)

// All отключает условие по статусу или приоритету
const All = "all"

type Spec struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Search   string `json:"search"`
}

// Everything пропускает все задачи
var Everything = Spec{Status: All, Priority: All}

// ParseSpec проверяет значения фильтра из query-строки или флагов.
// Пустые статус и приоритет означают All
func ParseSpec(status, priority, search string) (Spec, error) {
	if status == "" {
		status = All
	}
	if priority == "" {
		priority = All
	}
	if status != All && !task.Status(status).Valid() {
		return Spec{}, &task.FieldError{Field: "status", Reason: fmt.Sprintf("неизвестный статус %q", status)}
	}
	if priority != All && !task.Priority(priority).Valid() {
		return Spec{}, &task.FieldError{Field: "priority", Reason: fmt.Sprintf("неизвестный приоритет %q", priority)}
	}
	return Spec{Status: status, Priority: priority, Search: search}, nil
}

func (s Spec) Matches(t *task.Task) bool {
	return s.matchesStatus(t) && s.matchesPriority(t) && s.matchesSearch(t)
}

func (s Spec) matchesStatus(t *task.Task) bool {
	return s.Status == "" || s.Status == All || string(t.Status) == s.Status
}

func (s Spec) matchesPriority(t *task.Task) bool {
	return s.Priority == "" || s.Priority == All || string(t.Priority) == s.Priority
}

func (s Spec) matchesSearch(t *task.Task) bool {
	if s.Search == "" {
		return true
	}
	needle := strings.ToLower(s.Search)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Filter возвращает подходящие задачи в порядке коллекции.
// Указатели на задачи общие с входным срезом
func Filter(tasks []*task.Task, spec Spec) []*task.Task {
	res := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if spec.Matches(t) {
			res = append(res, t)
		}
	}
	return res
}
