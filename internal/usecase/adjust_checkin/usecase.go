package adjust_checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

const operation = "AdjustCheckIn"

// UseCase use case для переноса планового заезда
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

// Execute переносит заезд.
// NIGHT раньше: проверка конфликтов на [new, old) и новые ночи по цене уже забронированной ночи.
// NIGHT позже: удаление ночей в [old, new). HOUR: переписывается начало строк, цена заморожена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdjustCheckIn: booking id=%d, new check-in=%s", req.BookingID, req.NewCheckIn.Format(domain.DateTimeFormat))

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.NewCheckIn.IsZero() {
		return nil, fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
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
				uc.logger.Warn("AdjustCheckIn: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureStayModifiable(); err != nil {
			uc.logger.Warn("AdjustCheckIn: %v", err)
			return err
		}

		newCheckIn := req.NewCheckIn.In(settings.Location)
		oldCheckIn := booking.PlannedCheckIn
		if !newCheckIn.Before(booking.PlannedCheckOut) {
			return fmt.Errorf("%w: new check-in must be before check-out %s",
				ErrInvalidInput, booking.PlannedCheckOut.Format(domain.DateTimeFormat))
		}
		if newCheckIn.Equal(oldCheckIn) {
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
			if newCheckIn.Before(oldCheckIn) {
				err = uc.extendEarlier(txCtx, stay, newCheckIn, oldCheckIn, resp)
			} else {
				err = uc.shortenLater(txCtx, stay, newCheckIn, oldCheckIn, resp)
			}
		case domain.RentalModeHour:
			err = uc.shiftHours(txCtx, stay, newCheckIn, oldCheckIn, resp)
		default:
			err = fmt.Errorf("%w: unknown rental mode %q", ErrInternal, booking.RentalMode)
		}
		if err != nil {
			return err
		}

		// 3. Новый плановый заезд и пересчёт
		booking.PlannedCheckIn = newCheckIn
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AdjustCheckIn: booking id=%d adjusted (added nights=%d, removed lines=%d, shifted lines=%d), expected=%s",
		req.BookingID, resp.AddedNights, resp.RemovedLines, resp.ShiftedLines, resp.Booking.ExpectedTotal)
	return resp, nil
}

// extendEarlier новые ночи [date(new), date(old)) на каждую комнату по цене её самой ранней ночи
func (uc *UseCase) extendEarlier(ctx context.Context, stay *ledger.Stay, newCheckIn, oldCheckIn time.Time, resp *Response) error {
	// Считаются календарные ночи, а не полные сутки: строки привязаны к дате ночи (DESIGN.md, Open Questions)
	nights := domain.Nights(newCheckIn, oldCheckIn, stay.Settings.Location)
	if len(nights) == 0 {
		return fmt.Errorf("%w: use the early check-in fee for a same-day arrival", ErrNoDateChange)
	}
	if len(domain.Nights(newCheckIn, stay.Booking.PlannedCheckOut, stay.Settings.Location)) > domain.MaxStayNights {
		return fmt.Errorf("%w: at most %d nights", ErrStayTooLong, domain.MaxStayNights)
	}

	roomIDs := stay.RoomIDs()
	q := availability.Query{From: newCheckIn, To: oldCheckIn}
	if err := uc.conflicts.EnsureRoomsFree(ctx, operation, roomIDs, &stay.Booking.ID, q); err != nil {
		return err
	}

	for _, roomID := range roomIDs {
		price, ok := stay.SampledPrice(roomID)
		if !ok {
			continue
		}
		prices := make([]decimal.Decimal, len(nights))
		for i := range prices {
			prices[i] = price
		}
		if _, err := uc.ledger.AddNights(ctx, stay, roomID, nights, prices); err != nil {
			return err
		}
	}

	resp.AddedNights = len(nights)
	return nil
}

// shortenLater снимает ночи [date(old), date(new)); хотя бы одна ночь должна остаться
func (uc *UseCase) shortenLater(ctx context.Context, stay *ledger.Stay, newCheckIn, oldCheckIn time.Time, resp *Response) error {
	loc := stay.Settings.Location
	reduce := domain.DaysBetween(domain.DateOf(oldCheckIn, loc), domain.DateOf(newCheckIn, loc))
	if reduce <= 0 {
		return fmt.Errorf("%w: check-in moves within the same day", ErrNoDateChange)
	}
	if len(domain.Nights(newCheckIn, stay.Booking.PlannedCheckOut, loc)) == 0 {
		return ErrNoNightsLeft
	}

	lines := stay.NightLinesIn(domain.DateOf(oldCheckIn, loc), domain.DateOf(newCheckIn, loc))
	removed, err := uc.ledger.RemoveLines(ctx, stay, lines)
	if err != nil {
		return err
	}

	resp.RemovedLines = removed
	return nil
}

// shiftHours переписывает начало HOUR-строк; при раннем начале проверяются конфликты на [new, old)
func (uc *UseCase) shiftHours(ctx context.Context, stay *ledger.Stay, newCheckIn, oldCheckIn time.Time, resp *Response) error {
	if newCheckIn.Before(oldCheckIn) {
		q := availability.Query{From: newCheckIn, To: oldCheckIn}
		if err := uc.conflicts.EnsureRoomsFree(ctx, operation, stay.RoomIDs(), &stay.Booking.ID, q); err != nil {
			return err
		}
	}

	shifted, err := uc.ledger.ShiftHours(ctx, stay, &newCheckIn, nil)
	if err != nil {
		return err
	}

	resp.ShiftedLines = shifted
	return nil
}
