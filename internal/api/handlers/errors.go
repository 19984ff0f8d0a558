package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StatusOf HTTP-статус для ошибки по её виду
func StatusOf(err error) int {
	if ce, ok := domain.AsConflict(err); ok {
		if ce.Code == domain.CodeIllegalTransition {
			return http.StatusBadRequest
		}
		return http.StatusConflict
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает по виду ошибки: 400 / 404 / 409 / 500.
// Текст внутренних ошибок клиенту не отдаётся.
func RespondDomainError(w http.ResponseWriter, err error) {
	if ce, ok := domain.AsConflict(err); ok {
		RespondConflict(w, ce)
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, err.Error())
	case errors.Is(err, domain.ErrConflict):
		RespondError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		RespondError(w, http.StatusInternalServerError, CodeConfiguration, err.Error())
	default:
		RespondInternalError(w)
	}
}

// HandleError логирует ошибку use case (Warn для клиентских, Error для серверных) и отвечает
func HandleError(w http.ResponseWriter, logger Logger, route string, err error) {
	if StatusOf(err) >= http.StatusInternalServerError {
		logger.Error("%s - %v", route, err)
	} else {
		logger.Warn("%s - %v", route, err)
	}
	RespondDomainError(w, err)
}
