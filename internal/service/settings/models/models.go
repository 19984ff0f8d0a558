package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

// UpdateSettingsRequest частичное обновление политики отеля: nil поля не меняются
type UpdateSettingsRequest struct {
	DepositRate           *decimal.Decimal
	StandardCheckIn       *types.TimeString
	StandardCheckOut      *types.TimeString
	EarlyCheckInGrace     *types.TimeString
	EarliestEarlyCheckIn  *types.TimeString
	EarlyCheckInServiceID *int64 // 0 отключает платный ранний заезд
}

// ApplyTo применяет изменения к копии настроек
func (r *UpdateSettingsRequest) ApplyTo(s *domain.HotelSettings) {
	if r.DepositRate != nil {
		s.DepositRate = *r.DepositRate
	}
	if r.StandardCheckIn != nil {
		s.StandardCheckIn = *r.StandardCheckIn
	}
	if r.StandardCheckOut != nil {
		s.StandardCheckOut = *r.StandardCheckOut
	}
	if r.EarlyCheckInGrace != nil {
		s.EarlyCheckInGrace = *r.EarlyCheckInGrace
	}
	if r.EarliestEarlyCheckIn != nil {
		s.EarliestEarlyCheckIn = *r.EarliestEarlyCheckIn
	}
	if r.EarlyCheckInServiceID != nil {
		if *r.EarlyCheckInServiceID == 0 {
			s.EarlyCheckInServiceID = nil
		} else {
			id := *r.EarlyCheckInServiceID
			s.EarlyCheckInServiceID = &id
		}
	}
}

// SettingsResponse политика отеля
type SettingsResponse struct {
	DepositRate           string    `json:"depositRate"`
	StandardCheckIn       string    `json:"standardCheckIn"`
	StandardCheckOut      string    `json:"standardCheckOut"`
	EarlyCheckInGrace     string    `json:"earlyCheckInGrace"`
	EarliestEarlyCheckIn  string    `json:"earliestEarlyCheckIn"`
	EarlyCheckInServiceID *int64    `json:"earlyCheckInServiceId,omitempty"`
	Timezone              string    `json:"timezone"`
	MoneyScale            int32     `json:"moneyScale"`
	UpdatedAt             time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в response
func FromDomainSettings(s *domain.HotelSettings) *SettingsResponse {
	return &SettingsResponse{
		DepositRate:           s.DepositRate.String(),
		StandardCheckIn:       s.StandardCheckIn.String(),
		StandardCheckOut:      s.StandardCheckOut.String(),
		EarlyCheckInGrace:     s.EarlyCheckInGrace.String(),
		EarliestEarlyCheckIn:  s.EarliestEarlyCheckIn.String(),
		EarlyCheckInServiceID: s.EarlyCheckInServiceID,
		Timezone:              s.Location.String(),
		MoneyScale:            s.MoneyScale,
		UpdatedAt:             s.UpdatedAt,
	}
}
