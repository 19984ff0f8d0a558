package add_room_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/api/handlers/add_room"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
)

func TestHandle(t *testing.T) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	blocker := h.Book(t, checkIn, checkOut, hotel.Rooms[2].ID)

	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/items", add_room.NewHandler(h.AddRoom, logger.NewNop()).Handle).Methods(http.MethodPost)

	tests := []struct {
		name         string
		bookingID    string
		body         string
		expectedCode int
		expectedErr  string
	}{
		{"bad path", "abc", `{"roomId": 2}`, http.StatusBadRequest, handlers.CodeValidation},
		{"unknown field", fmt.Sprint(booking.Booking.ID), `{"room": 2}`, http.StatusBadRequest, handlers.CodeValidation},
		{"missing room", fmt.Sprint(booking.Booking.ID), `{}`, http.StatusBadRequest, handlers.CodeValidation},
		{"unknown booking", "9999", fmt.Sprintf(`{"roomId": %d}`, hotel.Rooms[1].ID), http.StatusNotFound, handlers.CodeNotFound},
		{"room taken", fmt.Sprint(booking.Booking.ID), fmt.Sprintf(`{"roomId": %d}`, hotel.Rooms[2].ID), http.StatusConflict, domain.CodeRoomConflict},
		{"duplicate", fmt.Sprint(booking.Booking.ID), fmt.Sprintf(`{"roomId": %d}`, hotel.Rooms[0].ID), http.StatusConflict, domain.CodeDuplicate},
		{"added", fmt.Sprint(booking.Booking.ID), fmt.Sprintf(`{"roomId": %d}`, hotel.Rooms[1].ID), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/bookings/"+tt.bookingID+"/items", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedErr == "" {
				var added add_room.AddRoomResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
				assert.Len(t, added.Lines, 2)
				return
			}

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedErr, body.Code)
			if tt.expectedErr == domain.CodeRoomConflict {
				require.NotNil(t, body.Conflict)
				assert.Equal(t, blocker.Booking.ID, body.Conflict.BookingID)
			}
		})
	}
}
