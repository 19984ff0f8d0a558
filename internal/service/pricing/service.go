package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	priceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/price"
	roomRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/room"
)

// Service разрешение цен: SPECIAL-период поверх BASE
type Service struct {
	priceRepo    PriceRepository
	roomTypeRepo RoomTypeRepository
	settings     SettingsProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(
	priceRepo PriceRepository,
	roomTypeRepo RoomTypeRepository,
	settings SettingsProvider,
	logger Logger,
) *Service {
	return &Service{
		priceRepo:    priceRepo,
		roomTypeRepo: roomTypeRepo,
		settings:     settings,
		logger:       logger,
	}
}

// ResolvePrice цена за единицу на момент at.
// SPECIAL-период, содержащий at, с наибольшим ID периода; иначе BASE; иначе ErrNoPriceConfigured.
func (s *Service) ResolvePrice(ctx context.Context, roomTypeID int64, mode domain.RentalMode, at time.Time) (*domain.ResolvedPrice, error) {
	prices, err := s.resolveMany(ctx, roomTypeID, mode, []time.Time{at})
	if err != nil {
		return nil, err
	}
	return prices[0], nil
}

// NightPrices цена каждой ночи: каждая ночь оценивается отдельно на своё локальное
// время стандартного заезда, поэтому SPECIAL-период применяется только к попавшим в него ночам.
func (s *Service) NightPrices(ctx context.Context, roomTypeID int64, nights []time.Time, settings *domain.HotelSettings) ([]*domain.ResolvedPrice, error) {
	if len(nights) == 0 {
		return []*domain.ResolvedPrice{}, nil
	}

	instants := make([]time.Time, len(nights))
	for i, night := range nights {
		instants[i] = settings.NightPriceInstant(night)
	}

	return s.resolveMany(ctx, roomTypeID, domain.RentalModeNight, instants)
}

// StayPrice цена единицы для строки использования: ночь - на время заезда в дату ночи,
// часовая аренда - один раз на начало проживания.
func (s *Service) StayPrice(ctx context.Context, roomTypeID int64, mode domain.RentalMode, start time.Time, settings *domain.HotelSettings) (*domain.ResolvedPrice, error) {
	if mode == domain.RentalModeNight {
		return s.ResolvePrice(ctx, roomTypeID, mode, settings.NightPriceInstant(domain.DateOf(start, settings.Location)))
	}
	return s.ResolvePrice(ctx, roomTypeID, mode, start)
}

// ResolveForDate цена для отображения на дату: ночной тариф на время заезда этой даты,
// часовой - на начало дня заезда
func (s *Service) ResolveForDate(ctx context.Context, roomTypeID int64, mode domain.RentalMode, date time.Time) (*domain.ResolvedPrice, error) {
	s.logger.Info("ResolveForDate: roomType=%d, mode=%s, date=%s", roomTypeID, mode, date.Format(domain.DateFormat))

	if err := s.ensureRoomType(ctx, "ResolveForDate", roomTypeID); err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveForDate - settings: %v", ErrInternal, err)
	}

	night := domain.DateOf(date, settings.Location)
	return s.ResolvePrice(ctx, roomTypeID, mode, settings.NightPriceInstant(night))
}

// Calendar разбивка SPECIAL/BASE по дням [from, to)
func (s *Service) Calendar(ctx context.Context, roomTypeID int64, mode domain.RentalMode, from, to time.Time) (*Calendar, error) {
	s.logger.Info("Calendar: roomType=%d, mode=%s, from=%s, to=%s",
		roomTypeID, mode, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if err := s.ensureRoomType(ctx, "Calendar", roomTypeID); err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Calendar - settings: %v", ErrInternal, err)
	}

	days := domain.Nights(from, to, settings.Location)
	if len(days) > domain.MaxCalendarDays {
		return nil, fmt.Errorf("%w: calendar range is limited to %d days", ErrInvalidInput, domain.MaxCalendarDays)
	}

	instants := make([]time.Time, len(days))
	for i, d := range days {
		instants[i] = settings.NightPriceInstant(d)
	}

	prices, err := s.resolveMany(ctx, roomTypeID, mode, instants)
	if err != nil {
		return nil, err
	}

	calendar := &Calendar{
		RoomTypeID: roomTypeID,
		RentalMode: mode,
		From:       from,
		To:         to,
		Days:       make([]*CalendarDay, len(days)),
	}
	for i, d := range days {
		calendar.Days[i] = &CalendarDay{Date: d, Price: prices[i]}
	}

	return calendar, nil
}

// resolveMany разрешает цены для набора моментов двумя запросами: SPECIAL за весь диапазон и BASE
func (s *Service) resolveMany(ctx context.Context, roomTypeID int64, mode domain.RentalMode, instants []time.Time) ([]*domain.ResolvedPrice, error) {
	from, to := instants[0], instants[0]
	for _, at := range instants[1:] {
		if at.Before(from) {
			from = at
		}
		if at.After(to) {
			to = at
		}
	}

	specials, err := s.priceRepo.ListSpecialPrices(ctx, roomTypeID, mode, from, to)
	if err != nil {
		s.logger.Error("ResolvePrice: failed to list special prices for roomType=%d: %v", roomTypeID, err)
		return nil, fmt.Errorf("%w: ResolvePrice - list special prices: %v", ErrInternal, err)
	}

	base, err := s.priceRepo.GetBasePrice(ctx, roomTypeID, mode)
	if err != nil && !errors.Is(err, priceRepo.ErrPriceNotFound) {
		s.logger.Error("ResolvePrice: failed to get base price for roomType=%d: %v", roomTypeID, err)
		return nil, fmt.Errorf("%w: ResolvePrice - get base price: %v", ErrInternal, err)
	}

	result := make([]*domain.ResolvedPrice, len(instants))
	for i, at := range instants {
		picked := domain.PickPrice(specials, base, at)
		if picked == nil {
			s.logger.Error("ResolvePrice: no price configured for roomType=%d, mode=%s at %s",
				roomTypeID, mode, at.Format(domain.DateTimeFormat))
			return nil, fmt.Errorf("%w: roomType=%d mode=%s at %s",
				ErrNoPriceConfigured, roomTypeID, mode, at.Format(domain.DateTimeFormat))
		}
		result[i] = picked.Resolved(at)
	}

	return result, nil
}

func (s *Service) ensureRoomType(ctx context.Context, op string, roomTypeID int64) error {
	if _, err := s.roomTypeRepo.GetRoomTypeByID(ctx, roomTypeID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomTypeNotFound) {
			s.logger.Warn("%s: room type id=%d not found", op, roomTypeID)
			return ErrRoomTypeNotFound
		}
		return fmt.Errorf("%w: %s - get room type: %v", ErrInternal, op, err)
	}
	return nil
}
