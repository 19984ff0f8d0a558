package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	conflictAt := time.Date(2025, 11, 12, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "validation",
			err:          fmt.Errorf("%w: quantity must be at least 1", domain.Kind(domain.ErrValidation, "charges: invalid input data")),
			expectedCode: http.StatusBadRequest,
			expectedBody: handlers.CodeValidation,
		},
		{
			name:         "not found",
			err:          domain.Kind(domain.ErrNotFound, "booking not found"),
			expectedCode: http.StatusNotFound,
			expectedBody: handlers.CodeNotFound,
		},
		{
			name: "room conflict",
			err: domain.NewConflictError(domain.CodeRoomConflict, domain.ErrConflict,
				&domain.RoomConflict{RoomID: 1, RoomName: "101", BookingID: 7, From: conflictAt, To: conflictAt.Add(22 * time.Hour)},
				"room 101 is taken"),
			expectedCode: http.StatusConflict,
			expectedBody: domain.CodeRoomConflict,
		},
		{
			name:         "invoice frozen",
			err:          domain.NewConflictError(domain.CodeInvoiceFrozen, domain.ErrConflict, nil, "invoice 3 is paid"),
			expectedCode: http.StatusConflict,
			expectedBody: domain.CodeInvoiceFrozen,
		},
		{
			name:         "illegal transition is a client error",
			err:          domain.NewConflictError(domain.CodeIllegalTransition, domain.ErrIllegalTransition, nil, "booking 1 is cancelled"),
			expectedCode: http.StatusBadRequest,
			expectedBody: domain.CodeIllegalTransition,
		},
		{
			name:         "configuration",
			err:          domain.Kind(domain.ErrConfiguration, "early check-in service is not configured"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: handlers.CodeConfiguration,
		},
		{
			name:         "internal",
			err:          errors.New("pq: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: handlers.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondDomainError(w, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedCode, handlers.StatusOf(tt.err))

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body.Code)
		})
	}
}

func TestRespondDomainError_ConflictBody(t *testing.T) {
	from := time.Date(2025, 11, 12, 14, 0, 0, 0, time.UTC)
	err := domain.NewConflictError(domain.CodeRoomConflict, domain.ErrConflict,
		&domain.RoomConflict{RoomID: 1, RoomName: "101", BookingID: 7, From: from, To: from.Add(22 * time.Hour)},
		"room 101 is taken")

	w := httptest.NewRecorder()
	handlers.RespondDomainError(w, fmt.Errorf("adjust_checkin: %w", err))

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Conflict)
	assert.Equal(t, int64(7), body.Conflict.BookingID)
	assert.Equal(t, "101", body.Conflict.RoomName)
	assert.Equal(t, "2025-11-12T14:00:00Z", body.Conflict.From)
	assert.Equal(t, "2025-11-13T12:00:00Z", body.Conflict.To)
}

func TestRespondDomainError_HidesInternalText(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondDomainError(w, errors.New("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "password")
}

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	tests := []struct {
		raw      string
		expected time.Time
		dateOnly bool
	}{
		{"2025-11-13T14:00:00+07:00", time.Date(2025, 11, 13, 14, 0, 0, 0, loc), false},
		{"2025-11-13T07:00:00Z", time.Date(2025, 11, 13, 14, 0, 0, 0, loc), false},
		{"2025-11-13T14:00:00", time.Date(2025, 11, 13, 14, 0, 0, 0, loc), false},
		{"2025-11-13T09:30", time.Date(2025, 11, 13, 9, 30, 0, 0, loc), false},
		{"2025-11-13", time.Date(2025, 11, 13, 0, 0, 0, 0, loc), true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, dateOnly, err := handlers.ParseDateTime(tt.raw, loc)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
			assert.Equal(t, tt.dateOnly, dateOnly)
		})
	}

	_, _, err = handlers.ParseDateTime("13/11/2025", loc)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
