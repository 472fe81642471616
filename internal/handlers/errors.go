package handlers

import (
	"errors"
	"net/http"
	"teamTasks/internal/logger"
	"teamTasks/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError отвечает клиенту, если err - бизнес-ошибка, и возвращает true.
// Для остальных ошибок ничего не пишет
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	if statusCode >= http.StatusInternalServerError {
		logger.Error("HTTP: Бизнес-ошибка", err,
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))
	} else {
		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))
	}

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeAlreadyShared, service.CodeNotShared:
		return http.StatusConflict
	case service.CodePersistFailed, service.CodeLoadFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondError пишет бизнес-ошибку как есть, а прочие ошибки как 500
func respondError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusInternalServerError, err.Error())
}
