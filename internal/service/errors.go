package service

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeAlreadyShared = "ALREADY_SHARED"
	CodeNotShared     = "NOT_SHARED"
	CodeLoadFailed    = "LOAD_FAILED"
	CodePersistFailed = "PERSIST_FAILED"
)

var ErrLoadFailed = errors.New("не удалось загрузить коллекцию задач")
var ErrPersistFailed = errors.New("не удалось сохранить коллекцию задач")
var ErrNotFound = errors.New("задача не найдена")

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}
	return busErr
}

func NewNotFound(id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("задача %s не найдена", id),
		Details: map[string]any{
			"resource": "task",
			"id":       id,
		},
		Err: ErrNotFound,
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewAlreadyShared(id, identifier string) *BusinessError {
	return &BusinessError{
		Code:    CodeAlreadyShared,
		Message: fmt.Sprintf("задача %s уже доступна %s", id, identifier),
		Details: map[string]any{
			"id":         id,
			"identifier": identifier,
		},
	}
}

func NewNotShared(id, identifier string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotShared,
		Message: fmt.Sprintf("задача %s не была доступна %s", id, identifier),
		Details: map[string]any{
			"id":         id,
			"identifier": identifier,
		},
	}
}

func NewLoadFailed(err error) *BusinessError {
	return &BusinessError{
		Code:    CodeLoadFailed,
		Message: "сохранённые задачи не удалось загрузить",
		Details: map[string]any{},
		Err:     fmt.Errorf("%w: %w", ErrLoadFailed, err),
	}
}

func NewPersistFailed(operation string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodePersistFailed,
		Message: "изменение не сохранено, повторите попытку",
		Details: map[string]any{
			"operation": operation,
		},
		Err: fmt.Errorf("%w: %w", ErrPersistFailed, err),
	}
}

// CodeOf возвращает код бизнес-ошибки или пустую строку
func CodeOf(err error) string {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr.Code
	}
	return ""
}
