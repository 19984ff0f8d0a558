package apply_early_checkin_fee

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	chargeRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/charge"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

// UseCase use case для начисления платы за ранний заезд.
// Цена проживания не пересчитывается: плата идёт отдельной услугой на последней строке каждой комнаты.
type UseCase struct {
	bookingRepo  BookingRepository
	chargeRepo   ChargeRepository
	settings     SettingsProvider
	ledger       Ledger
	recalc       Recalculator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	chargeRepo ChargeRepository,
	settings SettingsProvider,
	ledger Ledger,
	recalc Recalculator,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		chargeRepo:   chargeRepo,
		settings:     settings,
		ledger:       ledger,
		recalc:       recalc,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute начисляет почасовую плату. Повторный вызов не дублирует плату:
// количество существующего начисления поднимается до нового числа часов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyEarlyCheckInFee: booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	arrivedAt := now
	if req.ArrivedAt != nil {
		if req.ArrivedAt.After(now) {
			return nil, fmt.Errorf("%w: arrival time is in the future", ErrInvalidInput)
		}
		arrivedAt = *req.ArrivedAt
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}
	if !settings.HasEarlyCheckInService() {
		uc.logger.Error("ApplyEarlyCheckInFee: early check-in service is not configured")
		return nil, ErrFeeServiceMissing
	}

	resp := &Response{Fee: decimal.Zero}
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ApplyEarlyCheckInFee: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureChargesModifiable(); err != nil {
			uc.logger.Warn("ApplyEarlyCheckInFee: %v", err)
			return err
		}
		if booking.RentalMode != domain.RentalModeNight {
			return ErrNotNightly
		}

		// 2. Часы раннего заезда
		hours, err := EarlyHours(arrivedAt, booking.PlannedCheckIn, settings)
		if err != nil {
			uc.logger.Warn("ApplyEarlyCheckInFee: booking id=%d: %v", booking.ID, err)
			return err
		}
		resp.HoursEarly = hours

		// 3. Услуга платы
		service, err := uc.chargeRepo.GetService(txCtx, *settings.EarlyCheckInServiceID)
		if err != nil {
			if errors.Is(err, chargeRepo.ErrServiceNotFound) {
				uc.logger.Error("ApplyEarlyCheckInFee: early check-in service id=%d not found", *settings.EarlyCheckInServiceID)
				return ErrFeeServiceMissing
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}
		roomIDs := stay.RoomIDs()
		if len(roomIDs) == 0 {
			return ErrNoRooms
		}

		// 4. Начисление на последнюю активную строку каждой комнаты
		for _, roomID := range roomIDs {
			charge, err := uc.applyToRoom(txCtx, stay, roomID, service, hours)
			if err != nil {
				return err
			}
			resp.Charges = append(resp.Charges, charge)
			resp.Fee = resp.Fee.Add(charge.Total)
		}

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyEarlyCheckInFee: booking id=%d, %d hours early, fee=%s", req.BookingID, resp.HoursEarly, resp.Fee)
	return resp, nil
}

func (uc *UseCase) applyToRoom(ctx context.Context, stay *ledger.Stay, roomID int64, service *domain.Service, hours int) (*domain.ServiceCharge, error) {
	// Плата ищется на любой строке комнаты: после продления выезда последняя строка другая
	for _, c := range stay.Charges {
		if !c.IsActive() || c.RoomID != roomID || c.ServiceID != service.ID {
			continue
		}
		if c.Quantity < hours {
			c.SetQuantity(hours)
			if err := uc.chargeRepo.Update(ctx, c); err != nil {
				return nil, fmt.Errorf("%w: failed to update fee charge: %v", ErrInternal, err)
			}
		}
		return c, nil
	}

	line := stay.LatestLine(roomID)
	charge := &domain.ServiceCharge{
		BookingID:   stay.Booking.ID,
		RoomID:      line.RoomID,
		LineNo:      line.LineNo,
		ServiceID:   service.ID,
		ChargeNo:    domain.NextChargeNo(stay.Charges, line.Key(), service.ID),
		ServiceName: service.Name,
		UnitPrice:   service.UnitPrice,
		Status:      domain.ChargeActive,
		Origin:      domain.OriginAuto,
	}
	charge.SetQuantity(hours)

	if err := uc.chargeRepo.Create(ctx, charge); err != nil {
		return nil, fmt.Errorf("%w: failed to create fee charge: %v", ErrInternal, err)
	}
	stay.Charges = append(stay.Charges, charge)
	return charge, nil
}
