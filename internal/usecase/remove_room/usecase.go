package remove_room

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
)

// UseCase use case для удаления комнаты из бронирования
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

// Execute удаляет все активные строки комнаты. Строки с начислениями или уже
// выставленные в счёт отменяются вместе с начислениями, остальные удаляются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveRoom: booking id=%d, room id=%d", req.BookingID, req.RoomID)

	if req.BookingID <= 0 || req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and roomId must be positive", ErrInvalidInput)
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	resp := &Response{}
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RemoveRoom: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureStayModifiable(); err != nil {
			uc.logger.Warn("RemoveRoom: %v", err)
			return err
		}

		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}

		lines := stay.ActiveLines(req.RoomID)
		if len(lines) == 0 {
			uc.logger.Warn("RemoveRoom: room id=%d has no active lines in booking id=%d", req.RoomID, booking.ID)
			return ErrRoomNotInBooking
		}

		resp.RemovedLines, err = uc.ledger.RemoveLines(txCtx, stay, lines)
		if err != nil {
			return err
		}

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RemoveRoom: room id=%d removed from booking id=%d (%d lines), expected=%s",
		req.RoomID, req.BookingID, resp.RemovedLines, resp.Booking.ExpectedTotal)
	return resp, nil
}
