package dto

import (
	"strings"
	"teamTasks/internal/models/task"
)

type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      task.Status   `json:"status"`
	Priority    task.Priority `json:"priority"`
	DueDate     task.Date     `json:"dueDate"`
	Tags        []string      `json:"tags"`
	SharedWith  []string      `json:"sharedWith"`
}

func (r CreateTaskRequest) Input() task.Input {
	return task.Input{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		Tags:        r.Tags,
		SharedWith:  r.SharedWith,
	}
}

// UpdateTaskRequest - частичное обновление: nil означает "не менять"
type UpdateTaskRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *task.Status   `json:"status,omitempty"`
	Priority    *task.Priority `json:"priority,omitempty"`
	DueDate     *task.Date     `json:"dueDate,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
	SharedWith  *[]string      `json:"sharedWith,omitempty"`
}

func (r UpdateTaskRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return &task.FieldError{Field: "title", Reason: "не может быть пустым"}
	}
	if r.Status != nil && !r.Status.Valid() {
		return &task.FieldError{Field: "status", Reason: "неизвестный статус " + string(*r.Status)}
	}
	if r.Priority != nil && !r.Priority.Valid() {
		return &task.FieldError{Field: "priority", Reason: "неизвестный приоритет " + string(*r.Priority)}
	}
	return nil
}

func (r UpdateTaskRequest) Empty() bool {
	return len(r.Options()) == 0
}

func (r UpdateTaskRequest) Options() []task.TaskOption {
	var options []task.TaskOption
	if r.Title != nil {
		options = append(options, task.WithTitle(strings.TrimSpace(*r.Title)))
	}
	if r.Description != nil {
		options = append(options, task.WithDescription(*r.Description))
	}
	if r.Status != nil {
		options = append(options, task.WithStatus(*r.Status))
	}
	if r.Priority != nil {
		options = append(options, task.WithPriority(*r.Priority))
	}
	if r.DueDate != nil {
		options = append(options, task.WithDueDate(*r.DueDate))
	}
	if r.Tags != nil {
		options = append(options, task.WithTags(*r.Tags))
	}
	if r.SharedWith != nil {
		options = append(options, task.WithSharedWith(*r.SharedWith))
	}
	return options
}

type ShareRequest struct {
	Identifier string `json:"identifier"`
}
