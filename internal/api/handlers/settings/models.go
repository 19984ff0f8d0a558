package settings

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelService/internal/service/settings/models"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// UpdateSettingsRequest HTTP request model. Отсутствующие поля не меняются;
// earlyCheckInServiceId = 0 отключает платный ранний заезд.
type UpdateSettingsRequest struct {
	DepositRate           *decimal.Decimal `json:"depositRate,omitempty"`
	StandardCheckIn       *string          `json:"standardCheckIn,omitempty"`
	StandardCheckOut      *string          `json:"standardCheckOut,omitempty"`
	EarlyCheckInGrace     *string          `json:"earlyCheckInGrace,omitempty"`
	EarliestEarlyCheckIn  *string          `json:"earliestEarlyCheckIn,omitempty"`
	EarlyCheckInServiceID *int64           `json:"earlyCheckInServiceId,omitempty" validate:"omitempty,gte=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() (*models.UpdateSettingsRequest, error) {
	req := &models.UpdateSettingsRequest{
		DepositRate:           r.DepositRate,
		EarlyCheckInServiceID: r.EarlyCheckInServiceID,
	}

	fields := []struct {
		name string
		raw  *string
		dst  **types.TimeString
	}{
		{"standardCheckIn", r.StandardCheckIn, &req.StandardCheckIn},
		{"standardCheckOut", r.StandardCheckOut, &req.StandardCheckOut},
		{"earlyCheckInGrace", r.EarlyCheckInGrace, &req.EarlyCheckInGrace},
		{"earliestEarlyCheckIn", r.EarliestEarlyCheckIn, &req.EarliestEarlyCheckIn},
	}
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		t, err := types.NewTimeStringFromString(*f.raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", handlers.ErrBadRequest, f.name, err)
		}
		*f.dst = &t
	}

	return req, nil
}
