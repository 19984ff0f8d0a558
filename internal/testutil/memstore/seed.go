package memstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Фикстуры

// AddRoomType добавляет активный тип комнаты
func (s *Store) AddRoomType(code string) *domain.RoomType {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt := domain.RoomType{
		ID:           s.nextID(),
		Code:         code,
		Name:         code,
		MaxOccupancy: 2,
		Status:       domain.RoomTypeActive,
		CreatedAt:    s.stamp(),
	}
	s.data.roomTypes[rt.ID] = rt
	return &rt
}

// AddRoom добавляет свободную комнату указанного типа
func (s *Store) AddRoom(roomTypeID int64, name string) *domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := domain.Room{
		ID:         s.nextID(),
		RoomTypeID: roomTypeID,
		Name:       name,
		Floor:      1,
		Status:     domain.RoomAvailable,
		CreatedAt:  s.stamp(),
	}
	s.data.rooms[room.ID] = room
	return &room
}

// AddBasePrice цена BASE-периода
func (s *Store) AddBasePrice(roomTypeID int64, mode domain.RentalMode, unitPrice int64) *domain.Price {
	return s.addPrice(roomTypeID, mode, unitPrice, domain.TimePeriod{Name: "base", Kind: domain.PeriodBase})
}

// AddSpecialPrice цена SPECIAL-периода [startsAt, endsAt]
func (s *Store) AddSpecialPrice(roomTypeID int64, mode domain.RentalMode, unitPrice int64, startsAt, endsAt time.Time) *domain.Price {
	return s.addPrice(roomTypeID, mode, unitPrice, domain.TimePeriod{
		Name:     "special",
		Kind:     domain.PeriodSpecial,
		StartsAt: &startsAt,
		EndsAt:   &endsAt,
	})
}

func (s *Store) addPrice(roomTypeID int64, mode domain.RentalMode, unitPrice int64, period domain.TimePeriod) *domain.Price {
	s.mu.Lock()
	defer s.mu.Unlock()

	period.ID = s.nextID()
	p := domain.Price{
		ID:         s.nextID(),
		RoomTypeID: roomTypeID,
		RentalMode: mode,
		Period:     period,
		UnitPrice:  decimal.NewFromInt(unitPrice),
	}
	s.data.prices[p.ID] = p
	return &p
}

// AddService добавляет активную услугу в каталог
func (s *Store) AddService(code string, unitPrice int64) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc := domain.Service{
		ID:        s.nextID(),
		Code:      code,
		Name:      code,
		Unit:      "unit",
		UnitPrice: decimal.NewFromInt(unitPrice),
		Active:    true,
	}
	s.data.services[svc.ID] = svc
	return &svc
}

// AddPromotion добавляет акцию без ограничения по датам
func (s *Store) AddPromotion(code string, kind domain.DiscountKind, value int64) *domain.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Promotion{
		ID:     s.nextID(),
		Code:   code,
		Name:   code,
		Kind:   kind,
		Value:  decimal.NewFromInt(value),
		Active: true,
	}
	s.data.promotions[p.ID] = p
	return &p
}

// SetSettings сохраняет политику отеля
func (s *Store) SetSettings(settings *domain.HotelSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *settings
	s.data.settings = &stored
}

// Просмотр состояния

func (s *Store) Booking(id int64) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.data.bookings[id]
	if !ok {
		return nil
	}
	return &b
}

func (s *Store) Lines(bookingID int64) []*domain.UsageLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.linesOf(bookingID)
}

// ActiveLines только активные строки бронирования
func (s *Store) ActiveLines(bookingID int64) []*domain.UsageLine {
	result := make([]*domain.UsageLine, 0)
	for _, l := range s.Lines(bookingID) {
		if l.IsActive() {
			result = append(result, l)
		}
	}
	return result
}

func (s *Store) ChargesOf(bookingID int64) []*domain.ServiceCharge {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chargesOf(bookingID)
}

func (s *Store) Invoice(id int64) *domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.data.invoices[id]
	if !ok {
		return nil
	}
	return &inv
}

func (s *Store) Hold(id int64) *domain.ProvisionalHold {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.data.holds[id]
	if !ok {
		return nil
	}
	return s.withInvoiceStatus(h)
}

func (s *Store) Room(id int64) *domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.data.rooms[id]
	if !ok {
		return nil
	}
	return &room
}

func (s *Store) Tasks() []domain.HousekeepingTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.HousekeepingTask(nil), s.data.tasks...)
}
