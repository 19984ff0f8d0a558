package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	holdRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/hold"
	guestClient "github.com/m04kA/SMC-HotelService/internal/integrations/guestservice"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

const operation = "CreateBooking"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	holdRepo     HoldRepository
	guestClient  GuestServiceClient
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
	holdRepo HoldRepository,
	guestClient GuestServiceClient,
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
		holdRepo:     holdRepo,
		guestClient:  guestClient,
		settings:     settings,
		availability: availability,
		ledger:       ledger,
		recalc:       recalc,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Бронирование и строки всех комнат создаются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%d, mode=%s, %s - %s, rooms=%v",
		req.GuestID, req.RentalMode, req.CheckIn.Format(domain.DateTimeFormat), req.CheckOut.Format(domain.DateTimeFormat), req.RoomIDs)

	// 1. Валидация входных данных
	mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика отеля
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	if mode == domain.RentalModeNight {
		if err := validateNights(req.CheckIn, req.CheckOut, settings.Location); err != nil {
			uc.logger.Warn("CreateBooking: validation failed: %v", err)
			return nil, err
		}
	}

	// 3. Гость из справочника (при недоступности справочника создаём без имени)
	resp := &Response{}
	guestName := ""
	guest, err := uc.guestClient.GetGuestWithGracefulDegradation(ctx, req.GuestID)
	switch {
	case err == nil:
		guestName = guest.FullName
	case errors.Is(err, guestClient.ErrGuestNotFound):
		uc.logger.Warn("CreateBooking: guest id=%d not found", req.GuestID)
		return nil, ErrGuestNotFound
	case errors.Is(err, guestClient.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: guest directory degraded, creating booking without guest name")
		resp.GuestDegraded = true
	default:
		uc.logger.Error("CreateBooking: failed to get guest id=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: failed to get guest: %v", ErrInternal, err)
	}

	// 4. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Комнаты
		rooms, err := uc.loadRooms(txCtx, req.RoomIDs)
		if err != nil {
			return err
		}

		// 4.2. Удержание, которое расходуется бронированием
		var hold *domain.ProvisionalHold
		if req.HoldID != nil {
			hold, err = uc.holdRepo.GetByID(txCtx, *req.HoldID)
			if err != nil {
				if errors.Is(err, holdRepo.ErrHoldNotFound) {
					uc.logger.Warn("CreateBooking: hold id=%d not found", *req.HoldID)
					return ErrHoldNotFound
				}
				return fmt.Errorf("%w: failed to get hold: %v", ErrInternal, err)
			}
			if err := validateHold(hold, req.CheckIn, req.CheckOut, rooms); err != nil {
				uc.logger.Warn("CreateBooking: %v", err)
				return err
			}
		}

		// 4.3. Доступность: конкретные комнаты свободны и у типов есть ёмкость
		if len(rooms) > 0 {
			q := availability.Query{From: req.CheckIn, To: req.CheckOut}
			if err := uc.availability.EnsureRoomsFree(txCtx, operation, req.RoomIDs, nil, q); err != nil {
				return err
			}

			for roomTypeID, n := range countByType(rooms) {
				q := availability.Query{RoomTypeID: roomTypeID, From: req.CheckIn, To: req.CheckOut}
				if hold != nil && hold.RoomTypeID == roomTypeID {
					q.ExcludeHoldID = &hold.ID
				}
				if err := uc.availability.EnsureCapacity(txCtx, operation, q, n); err != nil {
					return err
				}
			}
		}

		// 4.4. Бронирование
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			GuestID:         req.GuestID,
			GuestName:       guestName,
			RentalMode:      mode,
			Status:          domain.StatusPending,
			PlannedCheckIn:  req.CheckIn,
			PlannedCheckOut: req.CheckOut,
			DepositRate:     settings.DepositRate,
			Note:            req.Note,
			CreatedBy:       req.CreatedBy,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.5. Строки использования каждой комнаты
		stay, err := uc.ledger.Load(txCtx, booking, settings)
		if err != nil {
			return err
		}
		for _, room := range rooms {
			lines, err := uc.ledger.AddRoom(txCtx, stay, room)
			if err != nil {
				return err
			}
			resp.Lines = append(resp.Lines, lines...)
		}

		// 4.6. Удержание израсходовано
		if hold != nil {
			if err := uc.holdRepo.UpdateStatus(txCtx, hold.ID, domain.HoldReleased); err != nil {
				return fmt.Errorf("%w: failed to release hold: %v", ErrInternal, err)
			}
		}

		// 4.7. Итоги и депозит
		resp.Booking, err = uc.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d with %d lines, expected=%s",
		resp.Booking.ID, len(resp.Lines), resp.Booking.ExpectedTotal)
	return resp, nil
}

// loadRooms читает комнаты в порядке запроса и проверяет, что их можно бронировать
func (uc *UseCase) loadRooms(ctx context.Context, ids []int64) ([]*domain.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := uc.roomRepo.GetRoomsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rooms: %v", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Room, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	rooms := make([]*domain.Room, 0, len(ids))
	for _, id := range ids {
		room, ok := byID[id]
		if !ok {
			uc.logger.Warn("CreateBooking: room id=%d not found", id)
			return nil, fmt.Errorf("%w: room %d", ErrRoomNotFound, id)
		}
		if !room.IsBookable() {
			uc.logger.Warn("CreateBooking: room id=%d is under maintenance", id)
			return nil, domain.NewConflictError(domain.CodeRoomConflict, ErrRoomNotBookable, nil,
				"room %d (%s) is under maintenance", room.ID, room.Name)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func countByType(rooms []*domain.Room) map[int64]int {
	result := make(map[int64]int)
	for _, r := range rooms {
		result[r.RoomTypeID]++
	}
	return result
}
