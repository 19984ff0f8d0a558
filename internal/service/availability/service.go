package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/room"
)

// Service проверка свободной ёмкости и конфликтов по комнатам.
// Пересечение окон полуоткрытое: start < to AND end > from; окно бронирования берётся
// только через domain.EffectiveWindow.
type Service struct {
	roomRepo      RoomRepository
	occupancyRepo OccupancyRepository
	holdRepo      HoldRepository
	recorder      ConflictRecorder
	logger        Logger
}

// NewService создает новый экземпляр сервиса доступности. recorder может быть nil.
func NewService(
	roomRepo RoomRepository,
	occupancyRepo OccupancyRepository,
	holdRepo HoldRepository,
	recorder ConflictRecorder,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:      roomRepo,
		occupancyRepo: occupancyRepo,
		holdRepo:      holdRepo,
		recorder:      recorder,
		logger:        logger,
	}
}

// AvailableCount свободная ёмкость типа комнат: всего комнат - занятые комнаты - удержания.
// Available может быть <= 0; для отображения используйте DisplayAvailable.
func (s *Service) AvailableCount(ctx context.Context, q Query) (*domain.RoomTypeAvailability, error) {
	if !q.From.Before(q.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}

	// 1. Тип комнат и его физические комнаты
	if _, err := s.roomRepo.GetRoomTypeByID(ctx, q.RoomTypeID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomTypeNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("%w: AvailableCount - get room type: %v", ErrInternal, err)
	}

	rooms, err := s.roomRepo.ListRoomsByType(ctx, q.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("%w: AvailableCount - list rooms: %v", ErrInternal, err)
	}

	// 2. Различные комнаты, занятые пересекающимися бронированиями
	candidates, err := s.occupancyRepo.ListOccupancy(ctx, domain.OccupancyFilter{
		RoomTypeID: &q.RoomTypeID,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: AvailableCount - list occupancy: %v", ErrInternal, err)
	}

	occupied := make(map[int64]struct{})
	for _, occ := range candidates {
		if overlapsWindow(occ, q) {
			occupied[occ.RoomID] = struct{}{}
		}
	}

	// 3. Удержания, которые ещё расходуют ёмкость
	holds, err := s.holdRepo.ListActiveOverlapping(ctx, q.RoomTypeID, q.From, q.To)
	if err != nil {
		return nil, fmt.Errorf("%w: AvailableCount - list holds: %v", ErrInternal, err)
	}

	held := 0
	for _, h := range holds {
		if q.ExcludeHoldID != nil && h.ID == *q.ExcludeHoldID {
			continue
		}
		if h.ConsumesCapacity() && domain.Overlaps(h.From, h.To, q.From, q.To) {
			held += h.Quantity
		}
	}

	return &domain.RoomTypeAvailability{
		RoomTypeID:    q.RoomTypeID,
		From:          q.From,
		To:            q.To,
		TotalRooms:    len(rooms),
		OccupiedRooms: len(occupied),
		HeldRooms:     held,
		Available:     len(rooms) - len(occupied) - held,
	}, nil
}

// EnsureCapacity возвращает ConflictError(NO_CAPACITY), если свободно меньше n комнат
func (s *Service) EnsureCapacity(ctx context.Context, operation string, q Query, n int) error {
	avail, err := s.AvailableCount(ctx, q)
	if err != nil {
		return err
	}

	if !avail.HasCapacity(n) {
		s.logger.Warn("%s: room type %d has %d free rooms in [%s, %s), requested %d",
			operation, q.RoomTypeID, avail.Available, q.From.Format(domain.DateTimeFormat),
			q.To.Format(domain.DateTimeFormat), n)
		s.record(operation)
		return domain.NewConflictError(domain.CodeNoCapacity, ErrNoCapacity, nil,
			"room type %d has %d free rooms, requested %d", q.RoomTypeID, avail.DisplayAvailable(), n)
	}

	return nil
}

// CheckRoomConflict первое бронирование (кроме excludeBookingID), занимающее одну из комнат
// в окне [from, to). nil - конфликтов нет.
func (s *Service) CheckRoomConflict(ctx context.Context, roomIDs []int64, excludeBookingID *int64, q Query) (*domain.RoomConflict, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	if !q.From.Before(q.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}

	candidates, err := s.occupancyRepo.ListOccupancy(ctx, domain.OccupancyFilter{
		RoomIDs:          roomIDs,
		ExcludeBookingID: excludeBookingID,
		From:             q.From,
		To:               q.To,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: CheckRoomConflict - list occupancy: %v", ErrInternal, err)
	}

	for _, occ := range candidates {
		if !overlapsWindow(occ, q) {
			continue
		}
		start, end := domain.EffectiveWindow(occ.Booking)
		return &domain.RoomConflict{
			RoomID:    occ.RoomID,
			RoomName:  occ.RoomName,
			BookingID: occ.Booking.ID,
			From:      start,
			To:        end,
		}, nil
	}

	return nil, nil
}

// EnsureRoomsFree возвращает ConflictError(ROOM_CONFLICT) с комнатой, бронированием и окном конфликта
func (s *Service) EnsureRoomsFree(ctx context.Context, operation string, roomIDs []int64, excludeBookingID *int64, q Query) error {
	conflict, err := s.CheckRoomConflict(ctx, roomIDs, excludeBookingID, q)
	if err != nil {
		return err
	}

	if conflict != nil {
		s.logger.Warn("%s: room %d (%s) is held by booking %d in [%s, %s)",
			operation, conflict.RoomID, conflict.RoomName, conflict.BookingID,
			conflict.From.Format(domain.DateTimeFormat), conflict.To.Format(domain.DateTimeFormat))
		s.record(operation)
		return domain.NewConflictError(domain.CodeRoomConflict, ErrRoomUnavailable, conflict,
			"room is not available from %s to %s",
			q.From.Format(domain.DateTimeFormat), q.To.Format(domain.DateTimeFormat))
	}

	return nil
}

func (s *Service) record(operation string) {
	if s.recorder != nil {
		s.recorder.Conflict(operation)
	}
}

// overlapsWindow бронирование занимает комнату на всё своё эффективное окно
func overlapsWindow(occ *domain.RoomOccupancy, q Query) bool {
	start, end := domain.EffectiveWindow(occ.Booking)
	return domain.Overlaps(start, end, q.From, q.To)
}
