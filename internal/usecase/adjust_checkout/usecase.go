package adjust_checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

const operation = "AdjustCheckOut"

// UseCase use case для переноса планового выезда
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	conflicts   ConflictChecker
	ledger      Ledger
	recalc      Recalculator
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	conflicts ConflictChecker,
	ledger Ledger,
	recalc Recalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		conflicts:   conflicts,
		ledger:      ledger,
		recalc:      recalc,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute переносит выезд.
// NIGHT позже: проверка конфликтов на [old, new), новые ночи по ценам на каждую ночь.
// NIGHT раньше: удаление ночей в [new, old). HOUR: переписывается конец строк, цена заморожена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdjustCheckOut: booking id=%d, new check-out=%s", req.BookingID, req.NewCheckOut.Format(domain.DateTimeFormat))

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.NewCheckOut.IsZero() {
		return nil, fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	resp := &Response{}
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование до заселения
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("AdjustCheckOut: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureStayModifiable(); err != nil {
			uc.logger.Warn("AdjustCheckOut: %v", err)
			return err
		}

		newCheckOut := req.NewCheckOut.In(settings.Location)
		oldCheckOut := booking.PlannedCheckOut
		if !booking.PlannedCheckIn.Before(newCheckOut) {
			return fmt.Errorf("%w: new check-out must be after check-in %s",
				ErrInvalidInput, booking.PlannedCheckIn.Format(domain.DateTimeFormat))
		}
		if newCheckOut.Equal(oldCheckOut) {
			resp.Booking = booking
			return nil
		}

		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}

		// 2. Перенос строк по режиму аренды
		switch booking.RentalMode {
		case domain.RentalModeNight:
			if newCheckOut.After(oldCheckOut) {
				err = uc.extendLater(txCtx, stay, oldCheckOut, newCheckOut, resp)
			} else {
				err = uc.shortenEarlier(txCtx, stay, oldCheckOut, newCheckOut, resp)
			}
		case domain.RentalModeHour:
			err = uc.shiftHours(txCtx, stay, oldCheckOut, newCheckOut, resp)
		default:
			err = fmt.Errorf("%w: unknown rental mode %q", ErrInternal, booking.RentalMode)
		}
		if err != nil {
			return err
		}

		// 3. Новый плановый выезд и пересчёт
		booking.PlannedCheckOut = newCheckOut
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AdjustCheckOut: booking id=%d adjusted (added nights=%d, removed lines=%d, shifted lines=%d), expected=%s",
		req.BookingID, resp.AddedNights, resp.RemovedLines, resp.ShiftedLines, resp.Booking.ExpectedTotal)
	return resp, nil
}

// extendLater новые ночи [date(old), date(new)) на каждую комнату по ценам, действующим в эти ночи
func (uc *UseCase) extendLater(ctx context.Context, stay *ledger.Stay, oldCheckOut, newCheckOut time.Time, resp *Response) error {
	loc := stay.Settings.Location
	nights := domain.Nights(oldCheckOut, newCheckOut, loc)
	if len(nights) == 0 {
		return fmt.Errorf("%w: check-out moves within the same day", ErrNoDateChange)
	}
	if len(domain.Nights(stay.Booking.PlannedCheckIn, newCheckOut, loc)) > domain.MaxStayNights {
		return fmt.Errorf("%w: at most %d nights", ErrStayTooLong, domain.MaxStayNights)
	}

	roomIDs := stay.RoomIDs()
	q := availability.Query{From: oldCheckOut, To: newCheckOut}
	if err := uc.conflicts.EnsureRoomsFree(ctx, operation, roomIDs, &stay.Booking.ID, q); err != nil {
		return err
	}

	for _, roomID := range roomIDs {
		if _, err := uc.ledger.AddResolvedNights(ctx, stay, roomID, nights); err != nil {
			return err
		}
	}

	resp.AddedNights = len(nights)
	return nil
}

// shortenEarlier снимает ночи [date(new), date(old)); хотя бы одна ночь должна остаться
func (uc *UseCase) shortenEarlier(ctx context.Context, stay *ledger.Stay, oldCheckOut, newCheckOut time.Time, resp *Response) error {
	loc := stay.Settings.Location
	if domain.DaysBetween(domain.DateOf(newCheckOut, loc), domain.DateOf(oldCheckOut, loc)) <= 0 {
		return fmt.Errorf("%w: check-out moves within the same day", ErrNoDateChange)
	}
	if len(domain.Nights(stay.Booking.PlannedCheckIn, newCheckOut, loc)) == 0 {
		return ErrNoNightsLeft
	}

	lines := stay.NightLinesIn(domain.DateOf(newCheckOut, loc), domain.DateOf(oldCheckOut, loc))
	removed, err := uc.ledger.RemoveLines(ctx, stay, lines)
	if err != nil {
		return err
	}

	resp.RemovedLines = removed
	return nil
}

// shiftHours переписывает конец HOUR-строк; при продлении проверяются конфликты на [old, new)
func (uc *UseCase) shiftHours(ctx context.Context, stay *ledger.Stay, oldCheckOut, newCheckOut time.Time, resp *Response) error {
	if newCheckOut.After(oldCheckOut) {
		q := availability.Query{From: oldCheckOut, To: newCheckOut}
		if err := uc.conflicts.EnsureRoomsFree(ctx, operation, stay.RoomIDs(), &stay.Booking.ID, q); err != nil {
			return err
		}
	}

	shifted, err := uc.ledger.ShiftHours(ctx, stay, nil, &newCheckOut)
	if err != nil {
		return err
	}

	resp.ShiftedLines = shifted
	return nil
}
