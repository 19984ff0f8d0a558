package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

// UseCase use case для получения свободной ёмкости типа комнат
type UseCase struct {
	availability AvailabilityCounter
	settings     SettingsProvider
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityCounter,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		settings:     settings,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободной ёмкости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: room type=%d, from=%s, to=%s, byNight=%t",
		req.RoomTypeID, req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat), req.ByNight)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно проживания
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	from, to := req.From, req.To
	if req.ByNight {
		from = settings.StandardCheckIn.On(domain.DateOf(req.From, settings.Location))
		to = settings.StandardCheckOut.On(domain.DateOf(req.To, settings.Location))
	}

	// 3. Ёмкость во всём окне и по ночам
	resp := &Response{RoomTypeID: req.RoomTypeID, From: from, To: to}
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		avail, err := uc.availability.AvailableCount(txCtx, availability.Query{
			RoomTypeID: req.RoomTypeID,
			From:       from,
			To:         to,
		})
		if err != nil {
			return err
		}
		resp.TotalRooms = avail.TotalRooms
		resp.Occupied = avail.OccupiedRooms
		resp.Held = avail.HeldRooms
		resp.Available = avail.DisplayAvailable()

		if !req.ByNight {
			return nil
		}

		resp.Nights, err = uc.nights(txCtx, req.RoomTypeID, from, to, settings)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailability: room type=%d has %d of %d rooms free", req.RoomTypeID, resp.Available, resp.TotalRooms)
	return resp, nil
}

// nights свободная ёмкость каждой ночи [заезд в день ночи, выезд на следующий день)
func (uc *UseCase) nights(ctx context.Context, roomTypeID int64, from, to time.Time, settings *domain.HotelSettings) ([]Night, error) {
	dates := domain.Nights(from, to, settings.Location)
	result := make([]Night, 0, len(dates))

	for _, date := range dates {
		avail, err := uc.availability.AvailableCount(ctx, availability.Query{
			RoomTypeID: roomTypeID,
			From:       settings.StandardCheckIn.On(date),
			To:         settings.StandardCheckOut.On(date.AddDate(0, 0, 1)),
		})
		if err != nil {
			return nil, err
		}
		result = append(result, Night{Date: date, Available: avail.DisplayAvailable()})
	}

	return result, nil
}
