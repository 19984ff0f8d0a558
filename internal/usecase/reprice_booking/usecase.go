package reprice_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
)

// UseCase use case для переоценки строк бронирования.
// Переносы часовых броней и ранний заезд цену не пересчитывают, это делает отдельный вызов.
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	ledger      Ledger
	recalc      Recalculator
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	ledger Ledger,
	recalc Recalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		ledger:      ledger,
		recalc:      recalc,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute заново разрешает цены всех активных строк и пересчитывает итоги
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*Response, error) {
	uc.logger.Info("RepriceBooking: booking id=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	resp := &Response{}
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RepriceBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureChargesModifiable(); err != nil {
			uc.logger.Warn("RepriceBooking: %v", err)
			return err
		}

		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}

		resp.ChangedLines, err = uc.ledger.Reprice(txCtx, stay)
		if err != nil {
			return err
		}

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RepriceBooking: booking id=%d repriced, %d lines changed, expected=%s",
		bookingID, resp.ChangedLines, resp.Booking.ExpectedTotal)
	return resp, nil
}
