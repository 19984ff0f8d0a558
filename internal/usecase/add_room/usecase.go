package add_room

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

const operation = "AddRoom"

// UseCase use case для добавления комнаты в бронирование
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

// Execute добавляет комнату: NIGHT - строка на каждую ночь по её цене, HOUR - одна строка на интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddRoom: booking id=%d, room id=%d", req.BookingID, req.RoomID)

	if req.BookingID <= 0 || req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and roomId must be positive", ErrInvalidInput)
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
				uc.logger.Warn("AddRoom: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if err := booking.EnsureStayModifiable(); err != nil {
			uc.logger.Warn("AddRoom: %v", err)
			return err
		}

		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}
		if stay.HasRoom(req.RoomID) {
			return domain.NewConflictError(domain.CodeDuplicate, ErrRoomAlreadyAdded, nil,
				"room %d is already in booking %d", req.RoomID, booking.ID)
		}

		// 2. Комната
		room, err := uc.roomRepo.GetRoomByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("AddRoom: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		if !room.IsBookable() {
			return domain.NewConflictError(domain.CodeRoomConflict, ErrRoomNotBookable, nil,
				"room %d (%s) is under maintenance", room.ID, room.Name)
		}

		// 3. Комната свободна во всём окне проживания
		from, to := domain.EffectiveWindow(booking)
		q := availability.Query{RoomTypeID: room.RoomTypeID, From: from, To: to}
		if err := uc.availability.EnsureRoomsFree(txCtx, operation, []int64{room.ID}, &booking.ID, q); err != nil {
			return err
		}
		if err := uc.availability.EnsureCapacity(txCtx, operation, q, 1); err != nil {
			return err
		}

		// 4. Строки и пересчёт
		resp.Lines, err = uc.ledger.AddRoom(txCtx, stay, room)
		if err != nil {
			return err
		}

		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AddRoom: room id=%d added to booking id=%d (%d lines), expected=%s",
		req.RoomID, req.BookingID, len(resp.Lines), resp.Booking.ExpectedTotal)
	return resp, nil
}
