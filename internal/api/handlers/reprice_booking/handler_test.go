package reprice_booking_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/api/handlers/reprice_booking"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	repriceBooking "github.com/m04kA/SMC-HotelService/internal/usecase/reprice_booking"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, bookingID int64) (*repriceBooking.Response, error) {
	args := m.Called(ctx, bookingID)
	if resp := args.Get(0); resp != nil {
		return resp.(*repriceBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(uc *useCaseMock, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/reprice", reprice_booking.NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, int64(42)).Return(&repriceBooking.Response{
		Booking:      &domain.Booking{ID: 42, Status: domain.StatusConfirmed, RoomTotal: decimal.NewFromInt(600000)},
		ChangedLines: 1,
	}, nil)

	w := serve(uc, "/bookings/42/reprice")
	require.Equal(t, http.StatusOK, w.Code)

	var body reprice_booking.RepriceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.ChangedLines)
	assert.Equal(t, int64(42), body.Booking.ID)
	assert.True(t, decimal.NewFromInt(600000).Equal(body.Booking.RoomTotal))
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{"not found", repriceBooking.ErrBookingNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"stay locked", domain.NewConflictError(domain.CodeStayLocked, domain.ErrStayLocked, nil, "booking 7 is checked_out"), http.StatusConflict, domain.CodeStayLocked},
		{"cancelled", domain.NewConflictError(domain.CodeIllegalTransition, domain.ErrIllegalTransition, nil, "booking 7 is cancelled"), http.StatusBadRequest, domain.CodeIllegalTransition},
		{"no price", domain.Kind(domain.ErrConfiguration, "pricing: no price configured"), http.StatusInternalServerError, handlers.CodeConfiguration},
		{"internal", errors.New("reprice_booking: internal error"), http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, int64(7)).Return(nil, tt.err)

			w := serve(uc, "/bookings/7/reprice")
			assert.Equal(t, tt.expectedCode, w.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestHandle_BadPath(t *testing.T) {
	uc := &useCaseMock{}

	w := serve(uc, "/bookings/0/reprice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
