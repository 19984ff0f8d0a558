package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Service журнал строк использования: добавление, удаление, перенос и переоценка строк.
// Все методы вызываются внутри транзакции операции и не проверяют доступность:
// это делает вызывающий до записи.
type Service struct {
	usageRepo   UsageRepository
	chargeRepo  ChargeRepository
	invoiceRepo InvoiceRepository
	roomRepo    RoomRepository
	prices      PriceResolver
	logger      Logger
}

// NewService создает новый экземпляр журнала использования
func NewService(
	usageRepo UsageRepository,
	chargeRepo ChargeRepository,
	invoiceRepo InvoiceRepository,
	roomRepo RoomRepository,
	prices PriceResolver,
	logger Logger,
) *Service {
	return &Service{
		usageRepo:   usageRepo,
		chargeRepo:  chargeRepo,
		invoiceRepo: invoiceRepo,
		roomRepo:    roomRepo,
		prices:      prices,
		logger:      logger,
	}
}

// Load перечитывает строки, начисления и счета бронирования
func (s *Service) Load(ctx context.Context, booking *domain.Booking, settings *domain.HotelSettings) (*Stay, error) {
	lines, err := s.usageRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - list lines: %v", ErrInternal, err)
	}

	charges, err := s.chargeRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - list charges: %v", ErrInternal, err)
	}

	invoices, err := s.invoiceRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - list invoices: %v", ErrInternal, err)
	}

	return &Stay{
		Booking:  booking,
		Lines:    lines,
		Charges:  charges,
		Invoices: invoices,
		Settings: settings,
	}, nil
}

// AddRoom создает строки комнаты на всё окно проживания:
// NIGHT - по строке на каждую ночь по её цене, HOUR - одну строку на весь интервал.
func (s *Service) AddRoom(ctx context.Context, stay *Stay, room *domain.Room) ([]*domain.UsageLine, error) {
	start, end := domain.EffectiveWindow(stay.Booking)

	if stay.Booking.RentalMode == domain.RentalModeHour {
		price, err := s.prices.StayPrice(ctx, room.RoomTypeID, domain.RentalModeHour, start, stay.Settings)
		if err != nil {
			return nil, err
		}

		line := &domain.UsageLine{
			BookingID: stay.Booking.ID,
			RoomID:    room.ID,
			LineNo:    domain.NextLineNo(stay.Lines, room.ID),
			Unit:      domain.UnitHour,
			StartAt:   &start,
			EndAt:     &end,
			Quantity:  1,
			Status:    domain.LineActive,
		}
		line.Reprice(price.UnitPrice)

		if err := s.create(ctx, stay, line); err != nil {
			return nil, err
		}
		return []*domain.UsageLine{line}, nil
	}

	nights := domain.Nights(start, end, stay.Settings.Location)
	prices, err := s.prices.NightPrices(ctx, room.RoomTypeID, nights, stay.Settings)
	if err != nil {
		return nil, err
	}

	unitPrices := make([]decimal.Decimal, len(prices))
	for i, p := range prices {
		unitPrices[i] = p.UnitPrice
	}

	return s.AddNights(ctx, stay, room.ID, nights, unitPrices)
}

// AddNights добавляет NIGHT-строки комнаты по заданным ценам (prices[i] - цена nights[i])
func (s *Service) AddNights(ctx context.Context, stay *Stay, roomID int64, nights []time.Time, prices []decimal.Decimal) ([]*domain.UsageLine, error) {
	created := make([]*domain.UsageLine, 0, len(nights))
	for i, night := range nights {
		n := night
		line := &domain.UsageLine{
			BookingID: stay.Booking.ID,
			RoomID:    roomID,
			LineNo:    domain.NextLineNo(stay.Lines, roomID),
			Unit:      domain.UnitNight,
			NightDate: &n,
			Quantity:  1,
			Status:    domain.LineActive,
		}
		line.Reprice(prices[i])

		if err := s.create(ctx, stay, line); err != nil {
			return nil, err
		}
		created = append(created, line)
	}
	return created, nil
}

// AddResolvedNights добавляет ночи комнаты по ценам, разрешённым на каждую ночь
func (s *Service) AddResolvedNights(ctx context.Context, stay *Stay, roomID int64, nights []time.Time) ([]*domain.UsageLine, error) {
	roomTypes, err := s.roomTypesOf(ctx, []int64{roomID})
	if err != nil {
		return nil, err
	}

	prices, err := s.prices.NightPrices(ctx, roomTypes[roomID], nights, stay.Settings)
	if err != nil {
		return nil, err
	}

	unitPrices := make([]decimal.Decimal, len(prices))
	for i, p := range prices {
		unitPrices[i] = p.UnitPrice
	}

	return s.AddNights(ctx, stay, roomID, nights, unitPrices)
}

// RemoveLines удаляет строки. Строки с начислениями или уже попавшие в выставленный счёт
// отменяются (вместе с их активными начислениями), остальные удаляются физически.
// Возвращает число затронутых строк.
func (s *Service) RemoveLines(ctx context.Context, stay *Stay, lines []*domain.UsageLine) (int, error) {
	billed := stay.IsBilled()
	removed := 0

	for _, line := range lines {
		if !line.IsActive() {
			continue
		}

		charges := stay.ChargesOn(line.Key())
		if billed || len(charges) > 0 {
			for _, c := range charges {
				if !c.IsActive() {
					continue
				}
				c.Status = domain.ChargeCancelled
				if err := s.chargeRepo.Update(ctx, c); err != nil {
					return removed, fmt.Errorf("%w: RemoveLines - cancel charge: %v", ErrInternal, err)
				}
			}

			line.Status = domain.LineCancelled
			if err := s.usageRepo.Update(ctx, line); err != nil {
				return removed, fmt.Errorf("%w: RemoveLines - cancel line: %v", ErrInternal, err)
			}
		} else {
			if err := s.usageRepo.Delete(ctx, line.Key()); err != nil {
				return removed, fmt.Errorf("%w: RemoveLines - delete line: %v", ErrInternal, err)
			}
			stay.Lines = withoutLine(stay.Lines, line.Key())
		}
		removed++
	}

	return removed, nil
}

// MoveLines переносит строки на другую комнату с новыми номерами строк.
// Начисления следуют за строкой. При reprice цена каждой строки разрешается заново
// по типу новой комнаты.
func (s *Service) MoveLines(ctx context.Context, stay *Stay, lines []*domain.UsageLine, target *domain.Room, reprice bool) error {
	for _, line := range lines {
		from := line.Key()
		to := domain.LineKey{
			BookingID: from.BookingID,
			RoomID:    target.ID,
			LineNo:    domain.NextLineNo(stay.Lines, target.ID),
		}

		if err := s.usageRepo.Rekey(ctx, from, to); err != nil {
			return fmt.Errorf("%w: MoveLines - rekey line: %v", ErrInternal, err)
		}

		line.RoomID = to.RoomID
		line.LineNo = to.LineNo
		for _, c := range stay.Charges {
			if c.OnLine(from) {
				c.RoomID = to.RoomID
				c.LineNo = to.LineNo
			}
		}
	}

	if !reprice {
		return nil
	}

	return s.repriceLines(ctx, stay, lines, map[int64]int64{target.ID: target.RoomTypeID})
}

// ShiftHours переписывает границы активных HOUR-строк. Цена строки не пересчитывается:
// переоценка выполняется отдельной операцией Reprice.
func (s *Service) ShiftHours(ctx context.Context, stay *Stay, start, end *time.Time) (int, error) {
	shifted := 0
	for _, line := range stay.ActiveLines(0) {
		if line.Unit != domain.UnitHour {
			continue
		}
		if start != nil {
			v := *start
			line.StartAt = &v
		}
		if end != nil {
			v := *end
			line.EndAt = &v
		}
		if err := s.usageRepo.Update(ctx, line); err != nil {
			return shifted, fmt.Errorf("%w: ShiftHours - update line: %v", ErrInternal, err)
		}
		shifted++
	}
	return shifted, nil
}

// Reprice заново разрешает цены всех активных строк. Возвращает число строк, чья сумма изменилась.
func (s *Service) Reprice(ctx context.Context, stay *Stay) (int, error) {
	lines := stay.ActiveLines(0)
	roomTypes, err := s.roomTypesOf(ctx, stay.RoomIDs())
	if err != nil {
		return 0, err
	}

	before := make(map[domain.LineKey]decimal.Decimal, len(lines))
	for _, l := range lines {
		before[l.Key()] = l.LineTotal
	}

	if err := s.repriceLines(ctx, stay, lines, roomTypes); err != nil {
		return 0, err
	}

	changed := 0
	for _, l := range lines {
		if !before[l.Key()].Equal(l.LineTotal) {
			changed++
		}
	}
	return changed, nil
}

func (s *Service) repriceLines(ctx context.Context, stay *Stay, lines []*domain.UsageLine, roomTypes map[int64]int64) error {
	for _, line := range lines {
		roomTypeID := roomTypes[line.RoomID]

		var price *domain.ResolvedPrice
		switch line.Unit {
		case domain.UnitNight:
			prices, err := s.prices.NightPrices(ctx, roomTypeID, []time.Time{*line.NightDate}, stay.Settings)
			if err != nil {
				return err
			}
			price = prices[0]
		case domain.UnitHour:
			p, err := s.prices.StayPrice(ctx, roomTypeID, domain.RentalModeHour, *line.StartAt, stay.Settings)
			if err != nil {
				return err
			}
			price = p
		}

		line.Reprice(price.UnitPrice)
		if err := s.usageRepo.Update(ctx, line); err != nil {
			return fmt.Errorf("%w: repriceLines - update line: %v", ErrInternal, err)
		}
	}
	return nil
}

func (s *Service) roomTypesOf(ctx context.Context, roomIDs []int64) (map[int64]int64, error) {
	rooms, err := s.roomRepo.GetRoomsByIDs(ctx, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: roomTypesOf - get rooms: %v", ErrInternal, err)
	}

	result := make(map[int64]int64, len(rooms))
	for _, r := range rooms {
		result[r.ID] = r.RoomTypeID
	}
	return result, nil
}

func (s *Service) create(ctx context.Context, stay *Stay, line *domain.UsageLine) error {
	if err := s.usageRepo.Create(ctx, line); err != nil {
		return fmt.Errorf("%w: create line: %v", ErrInternal, err)
	}
	stay.Lines = append(stay.Lines, line)
	return nil
}

func withoutLine(lines []*domain.UsageLine, key domain.LineKey) []*domain.UsageLine {
	result := make([]*domain.UsageLine, 0, len(lines))
	for _, l := range lines {
		if l.Key() != key {
			result = append(result, l)
		}
	}
	return result
}
