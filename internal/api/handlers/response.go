package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется заголовок X-User-ID"
)

// Error codes for non-conflict errors
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Conflict *ConflictResponse `json:"conflict,omitempty"`
}

// ConflictResponse бронирование, занимающее комнату, для исправления запроса клиентом
type ConflictResponse struct {
	RoomID    int64  `json:"roomId"`
	RoomName  string `json:"roomName"`
	BookingID int64  `json:"bookingId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// RespondJSON пишет JSON-ответ. nil data - пустое тело.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, &ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidation, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, msgUnauthorized)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// RespondConflict 409 с кодом конфликта и, если есть, занимающим комнату бронированием.
// Запрещённый переход статуса - ошибка клиента (400) с тем же кодом.
func RespondConflict(w http.ResponseWriter, ce *domain.ConflictError) {
	status := http.StatusConflict
	if ce.Code == domain.CodeIllegalTransition {
		status = http.StatusBadRequest
	}

	resp := &ErrorResponse{Code: ce.Code, Message: ce.Error()}
	if c := ce.Conflict; c != nil {
		resp.Conflict = &ConflictResponse{
			RoomID:    c.RoomID,
			RoomName:  c.RoomName,
			BookingID: c.BookingID,
			From:      c.From.Format(time.RFC3339),
			To:        c.To.Format(time.RFC3339),
		}
	}
	RespondJSON(w, status, resp)
}
