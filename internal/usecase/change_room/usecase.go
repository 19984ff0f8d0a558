package change_room

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
	"github.com/m04kA/SMC-HotelService/internal/service/ledger"
)

const operation = "ChangeRoom"

// UseCase use case для смены комнаты в бронировании
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	settings     SettingsProvider
	availability AvailabilityChecker
	ledger       Ledger
	recalc       Recalculator
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	settings SettingsProvider,
	availability AvailabilityChecker,
	ledger Ledger,
	recalc Recalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		settings:     settings,
		availability: availability,
		ledger:       ledger,
		recalc:       recalc,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute переносит активные строки комнаты на другую комнату: все или только ночи
// из диапазона дат. Начисления услуг переезжают вместе со строками.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeRoom: booking id=%d, room %d -> %d, range=%t, reprice=%t",
		req.BookingID, req.FromRoomID, req.ToRoomID, req.HasRange(), req.Reprice)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeRoom: validation failed: %v", err)
		return nil, err
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	resp := &Response{}
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование в изменяемом статусе
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ChangeRoom: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureStayModifiable(); err != nil {
			uc.logger.Warn("ChangeRoom: %v", err)
			return err
		}
		if req.HasRange() && booking.RentalMode != domain.RentalModeNight {
			return fmt.Errorf("%w: date range applies to nightly bookings only", ErrInvalidInput)
		}

		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}

		// 2. Переносимые строки и окно, которое они занимают
		lines, err := uc.linesToMove(stay, req, settings)
		if err != nil {
			return err
		}
		from, to := domain.EffectiveWindow(booking)
		if req.HasRange() {
			from, to = movedWindow(lines, booking, settings)
		}
		if targetTaken(stay, req.ToRoomID, lines) {
			return domain.NewConflictError(domain.CodeDuplicate, ErrRoomAlreadyAdded, nil,
				"room %d is already in booking %d for these nights", req.ToRoomID, booking.ID)
		}

		// 3. Новая комната
		target, err := uc.roomRepo.GetRoomByID(txCtx, req.ToRoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("ChangeRoom: room id=%d not found", req.ToRoomID)
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		if !target.IsBookable() {
			return domain.NewConflictError(domain.CodeRoomConflict, ErrRoomNotBookable, nil,
				"room %d (%s) is under maintenance", target.ID, target.Name)
		}

		current, err := uc.roomRepo.GetRoomByID(txCtx, req.FromRoomID)
		if err != nil {
			return fmt.Errorf("%w: failed to get current room: %v", ErrInternal, err)
		}
		typeChanged := current.RoomTypeID != target.RoomTypeID

		// 4. Новая комната свободна в окне переноса; при смене типа нужна свободная ёмкость
		q := availability.Query{RoomTypeID: target.RoomTypeID, From: from, To: to}
		if err := uc.availability.EnsureRoomsFree(txCtx, operation, []int64{target.ID}, &booking.ID, q); err != nil {
			return err
		}
		if typeChanged {
			if err := uc.availability.EnsureCapacity(txCtx, operation, q, 1); err != nil {
				return err
			}
		}

		// 5. Перенос строк и пересчёт. Цены другого типа комнаты разрешаются заново.
		resp.Repriced = req.Reprice || typeChanged
		if err := uc.ledger.MoveLines(txCtx, stay, lines, target, resp.Repriced); err != nil {
			return err
		}
		resp.MovedLines = len(lines)

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeRoom: booking id=%d moved %d lines to room %d, repriced=%t, expected=%s",
		req.BookingID, resp.MovedLines, req.ToRoomID, resp.Repriced, resp.Booking.ExpectedTotal)
	return resp, nil
}

// linesToMove активные строки исходной комнаты, при диапазоне - только его ночи
func (uc *UseCase) linesToMove(stay *ledger.Stay, req *Request, settings *domain.HotelSettings) ([]*domain.UsageLine, error) {
	if !req.HasRange() {
		lines := stay.ActiveLines(req.FromRoomID)
		if len(lines) == 0 {
			return nil, ErrRoomNotInBooking
		}
		return lines, nil
	}

	from, to := nightRange(req, stay.Booking, settings)
	lines := make([]*domain.UsageLine, 0)
	for _, l := range stay.NightLinesIn(from, to) {
		if l.RoomID == req.FromRoomID {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: room %d has no nights from %s to %s", ErrRoomNotInBooking, req.FromRoomID,
			from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}
	return lines, nil
}

// targetTaken у новой комнаты уже есть строки на переносимые ночи (часовое бронирование - любые строки)
func targetTaken(stay *ledger.Stay, roomID int64, lines []*domain.UsageLine) bool {
	for _, existing := range stay.ActiveLines(roomID) {
		if existing.NightDate == nil {
			return true
		}
		for _, l := range lines {
			if l.NightDate != nil && domain.SameDate(*existing.NightDate, *l.NightDate) {
				return true
			}
		}
	}
	return false
}
