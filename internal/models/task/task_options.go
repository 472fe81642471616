package task

import "slices"

// TaskOption меняет одно поле задачи. Поля без опции при обновлении не трогаются
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(status Status) TaskOption {
	return func(task *Task) {
		task.Status = status
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithDueDate(dueDate Date) TaskOption {
	return func(task *Task) {
		task.DueDate = dueDate
	}
}

func WithTags(tags []string) TaskOption {
	if tags == nil {
		tags = []string{}
	}
	return func(task *Task) {
		task.Tags = slices.Clone(tags)
	}
}

func WithSharedWith(sharedWith []string) TaskOption {
	sharedWith = Dedupe(sharedWith)
	return func(task *Task) {
		task.SharedWith = slices.Clone(sharedWith)
	}
}

// Apply применяет опции к задаче, nil-опции пропускаются
func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
}
