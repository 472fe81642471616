package service

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"teamTasks/internal/logger"
	"teamTasks/internal/models/task"

	"go.uber.org/zap"
)

type ShareResult int

const (
	ShareFailed ShareResult = iota
	ShareSuccess
	ShareAlreadyShared
	ShareNotFound
	ShareNotShared
)

func (r ShareResult) String() string {
	switch r {
	case ShareSuccess:
		return "success"
	case ShareAlreadyShared:
		return "already_shared"
	case ShareNotFound:
		return "not_found"
	case ShareNotShared:
		return "not_shared"
	default:
		return "failed"
	}
}

var identifierPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func normalizeIdentifier(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", NewValidationError("identifier", "адрес не может быть пустым")
	}
	if !identifierPattern.MatchString(identifier) {
		return "", NewValidationError("identifier", "ожидался адрес вида user@example.com")
	}
	return identifier, nil
}

// normalizeIdentifiers проверяет каждый адрес списка sharedWith и убирает повторы после обрезки пробелов
func normalizeIdentifiers(identifiers []string) ([]string, error) {
	res := make([]string, 0, len(identifiers))
	for _, identifier := range identifiers {
		normalized, err := normalizeIdentifier(identifier)
		if err != nil {
			return nil, err
		}
		res = append(res, normalized)
	}
	return task.Dedupe(res), nil
}

// Share добавляет адрес в sharedWith. Повторный адрес не записывается и даёт ShareAlreadyShared
func (s *TaskService) Share(ctx context.Context, id, identifier string) (ShareResult, error) {
	identifier, err := normalizeIdentifier(identifier)
	if err != nil {
		return ShareFailed, err
	}

	result := ShareNotFound
	err = s.mutate(ctx, "share", func(current []*task.Task) ([]*task.Task, bool, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, false, nil
		}
		if current[i].IsSharedWith(identifier) {
			result = ShareAlreadyShared
			return nil, false, nil
		}

		updated := current[i].Clone()
		updated.SharedWith = append(updated.SharedWith, identifier)
		updated.UpdatedAt = s.stamp(current[i].UpdatedAt)

		next := slices.Clone(current)
		next[i] = updated
		result = ShareSuccess
		return next, true, nil
	})
	if err != nil {
		return ShareFailed, err
	}

	logger.Info("Service: Доступ к задаче",
		zap.String("task_id", id),
		zap.String("identifier", identifier),
		zap.Stringer("result", result))
	return result, nil
}

// Unshare убирает адрес из sharedWith и сохраняет коллекцию
func (s *TaskService) Unshare(ctx context.Context, id, identifier string) (ShareResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ShareFailed, NewValidationError("identifier", "адрес не может быть пустым")
	}

	result := ShareNotFound
	err := s.mutate(ctx, "unshare", func(current []*task.Task) ([]*task.Task, bool, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, false, nil
		}
		if !current[i].IsSharedWith(identifier) {
			result = ShareNotShared
			return nil, false, nil
		}

		updated := current[i].Clone()
		updated.SharedWith = slices.DeleteFunc(updated.SharedWith, func(v string) bool {
			return v == identifier
		})
		updated.UpdatedAt = s.stamp(current[i].UpdatedAt)

		next := slices.Clone(current)
		next[i] = updated
		result = ShareSuccess
		return next, true, nil
	})
	if err != nil {
		return ShareFailed, err
	}

	logger.Info("Service: Отзыв доступа к задаче",
		zap.String("task_id", id),
		zap.String("identifier", identifier),
		zap.Stringer("result", result))
	return result, nil
}

// Err переводит неуспешный результат в бизнес-ошибку для вызывающего кода
func (r ShareResult) Err(id, identifier string) error {
	switch r {
	case ShareSuccess:
		return nil
	case ShareAlreadyShared:
		return NewAlreadyShared(id, identifier)
	case ShareNotShared:
		return NewNotShared(id, identifier)
	case ShareNotFound:
		return NewNotFound(id)
	default:
		return NewBusinessError("SHARE_FAILED", "не удалось изменить доступ к задаче")
	}
}
