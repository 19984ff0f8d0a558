package change_room_test

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
	"github.com/m04kA/SMC-HotelService/internal/api/handlers/change_room"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectedErr  string
		movedLines   int
	}{
		{"same room", `{"fromRoomId": %[1]d, "toRoomId": %[1]d}`, http.StatusBadRequest, handlers.CodeValidation, 0},
		{"bad date", `{"fromRoomId": %d, "toRoomId": %d, "from": "14.11.2025"}`, http.StatusBadRequest, handlers.CodeValidation, 0},
		{"whole stay", `{"fromRoomId": %d, "toRoomId": %d}`, http.StatusOK, "", 3},
		{"from date", `{"fromRoomId": %d, "toRoomId": %d, "from": "2025-11-14"}`, http.StatusOK, "", 2},
		{"date range", `{"fromRoomId": %d, "toRoomId": %d, "from": "2025-11-14", "to": "2025-11-15"}`, http.StatusOK, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
			hotel := h.StandardHotel()
			checkIn, checkOut := h.Stay(2025, time.November, 13, 16)
			booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)

			r := mux.NewRouter()
			r.HandleFunc("/bookings/{bookingId}/change-room",
				change_room.NewHandler(h.ChangeRoom, h.Settings, logger.NewNop()).Handle).Methods(http.MethodPost)

			body := fmt.Sprintf(tt.body, hotel.Rooms[0].ID, hotel.Rooms[1].ID)
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/bookings/%d/change-room", booking.Booking.ID), strings.NewReader(body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedErr != "" {
				var errBody handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
				assert.Equal(t, tt.expectedErr, errBody.Code)
				return
			}

			var resp change_room.ChangeRoomResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.movedLines, resp.MovedLines)
		})
	}
}
