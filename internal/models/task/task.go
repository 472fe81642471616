package task

import (
	"encoding/json"
	"slices"
	"time"
)

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     Date      `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags"`
	SharedWith  []string  `json:"sharedWith"`
}

type Status string
type Priority string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in-progress"
const StatusCompleted Status = "completed"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// пустые срезы пишутся как [], а не null
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	out := plain(t)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.SharedWith == nil {
		out.SharedWith = []string{}
	}
	return json.Marshal(out)
}

// Clone возвращает глубокую копию задачи
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Tags = slices.Clone(t.Tags)
	c.SharedWith = slices.Clone(t.SharedWith)
	return &c
}

func (t *Task) IsSharedWith(identifier string) bool {
	return slices.Contains(t.SharedWith, identifier)
}

func CloneAll(tasks []*Task) []*Task {
	res := make([]*Task, len(tasks))
	for i, t := range tasks {
		res[i] = t.Clone()
	}
	return res
}

// Input - поля новой задачи, id и временные метки проставляет хранилище
type Input struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     Date     `json:"dueDate"`
	Tags        []string `json:"tags"`
	SharedWith  []string `json:"sharedWith"`
}

// Validate проверяет ввод так, как это делает форма создания задачи
func (in Input) Validate() error {
	if in.Title == "" {
		return &FieldError{Field: "title", Reason: "не может быть пустым"}
	}
	return in.ValidateEnums()
}

func (in Input) ValidateEnums() error {
	if in.Status != "" && !in.Status.Valid() {
		return &FieldError{Field: "status", Reason: "неизвестный статус " + string(in.Status)}
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return &FieldError{Field: "priority", Reason: "неизвестный приоритет " + string(in.Priority)}
	}
	return nil
}

// New собирает задачу из ввода. Пустые статус и приоритет получают значения по умолчанию
func New(id string, in Input, now time.Time) *Task {
	t := &Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        slices.Clone(in.Tags),
		SharedWith:  Dedupe(in.SharedWith),
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}

// Dedupe убирает повторы, сохраняя порядок первого вхождения
func Dedupe(values []string) []string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}
