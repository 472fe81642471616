package task_test

import (
	"encoding/json"
	"teamTasks/internal/models/task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTask_MarshalJSON проверяет формат сохраняемой задачи
func TestTask_MarshalJSON(t *testing.T) {
	created := time.Date(2025, time.February, 1, 8, 30, 0, 0, time.UTC)
	tk := task.Task{
		ID:        "42",
		Title:     "A",
		Status:    task.StatusInProgress,
		Priority:  task.PriorityLow,
		DueDate:   task.MustParseDate("2025-02-01"),
		CreatedAt: created,
		UpdatedAt: created,
	}

	data, err := json.Marshal(tk)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Len(t, raw, 10)
	assert.Equal(t, "in-progress", raw["status"])
	assert.Equal(t, "low", raw["priority"])
	assert.Equal(t, "2025-02-01", raw["dueDate"])
	assert.Equal(t, "2025-02-01T08:30:00Z", raw["createdAt"])
	assert.Equal(t, []any{}, raw["tags"])
	assert.Equal(t, []any{}, raw["sharedWith"])
}

func TestTask_JSONRoundTrip(t *testing.T) {
	original := task.SeedV1()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded []task.Task
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestDate_Parse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    task.Date
		expectError bool
	}{
		{name: "calendar date", input: "2025-01-10", expected: task.Date{Year: 2025, Month: time.January, Day: 10}},
		{name: "empty", input: "", expected: task.Date{}},
		{name: "timestamp is rejected", input: "2025-01-10T10:00:00Z", expectError: true},
		{name: "garbage", input: "tomorrow", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := task.ParseDate(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestDate_UnmarshalJSON_RejectsNumbers(t *testing.T) {
	var d task.Date
	assert.Error(t, json.Unmarshal([]byte(`20250110`), &d))
}

func TestTask_Clone(t *testing.T) {
	tk := &task.Task{ID: "1", Tags: []string{"a"}, SharedWith: []string{"x@y.com"}}
	c := tk.Clone()

	c.Tags[0] = "b"
	c.SharedWith = append(c.SharedWith, "z@y.com")

	assert.Equal(t, []string{"a"}, tk.Tags)
	assert.Equal(t, []string{"x@y.com"}, tk.SharedWith)
}

func TestTask_Apply(t *testing.T) {
	tk := &task.Task{
		ID:          "1",
		Title:       "Title",
		Description: "Description",
		Status:      task.StatusTodo,
		Priority:    task.PriorityLow,
		Tags:        []string{"a"},
		SharedWith:  []string{"x@y.com"},
	}

	tk.Apply(task.WithStatus(task.StatusCompleted), nil)

	assert.Equal(t, task.StatusCompleted, tk.Status)
	assert.Equal(t, "Title", tk.Title)
	assert.Equal(t, "Description", tk.Description)
	assert.Equal(t, []string{"a"}, tk.Tags)
	assert.Equal(t, []string{"x@y.com"}, tk.SharedWith)
}

func TestWithSharedWith_Dedupes(t *testing.T) {
	tk := &task.Task{}
	tk.Apply(task.WithSharedWith([]string{"a@b.c", "d@e.f", "a@b.c"}))
	assert.Equal(t, []string{"a@b.c", "d@e.f"}, tk.SharedWith)
}

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	tk := task.New("id-1", task.Input{Title: "A", SharedWith: []string{"x@y.com", "x@y.com"}}, now)

	assert.Equal(t, task.StatusTodo, tk.Status)
	assert.Equal(t, task.PriorityMedium, tk.Priority)
	assert.Equal(t, now, tk.CreatedAt)
	assert.Equal(t, now, tk.UpdatedAt)
	assert.Equal(t, []string{}, tk.Tags)
	assert.Equal(t, []string{"x@y.com"}, tk.SharedWith)
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input task.Input
		field string
	}{
		{name: "valid", input: task.Input{Title: "A", Status: task.StatusTodo, Priority: task.PriorityHigh}},
		{name: "empty title", input: task.Input{}, field: "title"},
		{name: "bad status", input: task.Input{Title: "A", Status: "done"}, field: "status"},
		{name: "bad priority", input: task.Input{Title: "A", Priority: "urgent"}, field: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErr *task.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}
