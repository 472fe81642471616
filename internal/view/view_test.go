package view_test

import (
	"fmt"
	"teamTasks/internal/models/task"
	"teamTasks/internal/view"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection() []*task.Task {
	return []*task.Task{
		{ID: "1", Title: "Write report", Description: "Quarterly numbers", Status: task.StatusTodo, Priority: task.PriorityHigh},
		{ID: "2", Title: "Review PR", Description: "Storage REFACTOR", Status: task.StatusInProgress, Priority: task.PriorityMedium},
		{ID: "3", Title: "Deploy", Description: "Ship the report service", Status: task.StatusCompleted, Priority: task.PriorityHigh},
		{ID: "4", Title: "Plan sprint", Description: "", Status: task.StatusInProgress, Priority: task.PriorityLow},
		{ID: "5", Title: "Legacy item", Description: "imported", Status: "archived", Priority: task.PriorityLow},
	}
}

func ids(tasks []*task.Task) []string {
	res := make([]string, len(tasks))
	for i, t := range tasks {
		res[i] = t.ID
	}
	return res
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		spec     view.Spec
		expected []string
	}{
		{name: "everything", spec: view.Everything, expected: []string{"1", "2", "3", "4", "5"}},
		{name: "zero spec", spec: view.Spec{}, expected: []string{"1", "2", "3", "4", "5"}},
		{name: "status", spec: view.Spec{Status: "in-progress", Priority: view.All}, expected: []string{"2", "4"}},
		{name: "priority", spec: view.Spec{Status: view.All, Priority: "high"}, expected: []string{"1", "3"}},
		{name: "search title case-insensitive", spec: view.Spec{Status: view.All, Priority: view.All, Search: "REPORT"}, expected: []string{"1", "3"}},
		{name: "search description", spec: view.Spec{Status: view.All, Priority: view.All, Search: "refactor"}, expected: []string{"2"}},
		{name: "all clauses", spec: view.Spec{Status: "completed", Priority: "high", Search: "deploy"}, expected: []string{"3"}},
		{name: "clauses conflict", spec: view.Spec{Status: "todo", Priority: "low"}, expected: []string{}},
		{name: "no match", spec: view.Spec{Status: view.All, Priority: view.All, Search: "nothing like this"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(view.Filter(collection(), tt.spec)))
		})
	}
}

// результат равен пересечению трёх условий, взятых по отдельности
func TestFilter_IsIntersectionOfClauses(t *testing.T) {
	tasks := collection()
	statuses := []string{view.All, "todo", "in-progress", "completed"}
	priorities := []string{view.All, "low", "medium", "high"}
	searches := []string{"", "re", "PLAN", "x"}

	for _, st := range statuses {
		for _, pr := range priorities {
			for _, q := range searches {
				spec := view.Spec{Status: st, Priority: pr, Search: q}
				t.Run(fmt.Sprintf("%s/%s/%q", st, pr, q), func(t *testing.T) {
					byStatus := view.Filter(tasks, view.Spec{Status: st, Priority: view.All})
					byPriority := view.Filter(byStatus, view.Spec{Status: view.All, Priority: pr})
					bySearch := view.Filter(byPriority, view.Spec{Status: view.All, Priority: view.All, Search: q})

					assert.Equal(t, ids(bySearch), ids(view.Filter(tasks, spec)))
				})
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	tasks := collection()
	before := ids(tasks)

	first := view.Filter(tasks, view.Spec{Status: "in-progress"})
	second := view.Filter(tasks, view.Spec{Status: "in-progress"})

	assert.Equal(t, before, ids(tasks))
	assert.Equal(t, ids(first), ids(second))
}

func TestParseSpec(t *testing.T) {
	spec, err := view.ParseSpec("", "", "abc")
	require.NoError(t, err)
	assert.Equal(t, view.Spec{Status: view.All, Priority: view.All, Search: "abc"}, spec)

	spec, err = view.ParseSpec("completed", "low", "")
	require.NoError(t, err)
	assert.Equal(t, view.Spec{Status: "completed", Priority: "low"}, spec)

	var fieldErr *task.FieldError

	_, err = view.ParseSpec("done", "", "")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "status", fieldErr.Field)

	_, err = view.ParseSpec("", "urgent", "")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "priority", fieldErr.Field)
}

func TestAggregate(t *testing.T) {
	tasks := collection()
	stats := view.Aggregate(tasks)

	assert.Equal(t, view.Stats{Total: 5, Completed: 1, InProgress: 2, Pending: 1}, stats)
	assert.Equal(t, len(tasks), stats.Total)

	other := stats.Total - stats.Completed - stats.InProgress - stats.Pending
	assert.Equal(t, 1, other, "неизвестный статус учитывается только в total")
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, view.Stats{}, view.Aggregate(nil))
}
