// Package memstore in-memory реализация репозиториев и менеджера транзакций для тестов
// сервисов и use case'ов. Семантика повторяет postgres-репозитории: те же sentinel-ошибки,
// копии вместо общих указателей, откат состояния при ошибке транзакции.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

type txKey struct{}

type linkKey struct {
	InvoiceID int64
	BookingID int64
}

type state struct {
	roomTypes    map[int64]domain.RoomType
	rooms        map[int64]domain.Room
	prices       map[int64]domain.Price
	bookings     map[int64]domain.Booking
	lines        map[domain.LineKey]domain.UsageLine
	services     map[int64]domain.Service
	charges      map[domain.ChargeKey]domain.ServiceCharge
	promotions   map[int64]domain.Promotion
	applications map[int64]domain.PromotionApplication
	invoices     map[int64]domain.Invoice
	links        map[linkKey]time.Time
	holds        map[int64]domain.ProvisionalHold
	tasks        []domain.HousekeepingTask
	settings     *domain.HotelSettings
	seq          int64
}

func newState() *state {
	return &state{
		roomTypes:    make(map[int64]domain.RoomType),
		rooms:        make(map[int64]domain.Room),
		prices:       make(map[int64]domain.Price),
		bookings:     make(map[int64]domain.Booking),
		lines:        make(map[domain.LineKey]domain.UsageLine),
		services:     make(map[int64]domain.Service),
		charges:      make(map[domain.ChargeKey]domain.ServiceCharge),
		promotions:   make(map[int64]domain.Promotion),
		applications: make(map[int64]domain.PromotionApplication),
		invoices:     make(map[int64]domain.Invoice),
		links:        make(map[linkKey]time.Time),
		holds:        make(map[int64]domain.ProvisionalHold),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.roomTypes {
		c.roomTypes[k] = v
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.prices {
		c.prices[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.charges {
		c.charges[k] = v
	}
	for k, v := range s.promotions {
		c.promotions[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	for k, v := range s.holds {
		c.holds[k] = v
	}
	c.tasks = append(c.tasks, s.tasks...)
	if s.settings != nil {
		settings := *s.settings
		c.settings = &settings
	}
	c.seq = s.seq
	return c
}

// Store общее состояние всех репозиториев
type Store struct {
	txMu sync.Mutex // одна транзакция за раз: аналог SERIALIZABLE
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

func (s *Store) nextID() int64 {
	s.data.seq++
	return s.data.seq
}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// DoSerializable выполняет fn атомарно: при ошибке все изменения откатываются
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly выполняет fn под той же блокировкой
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.rollback(snapshot)
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.rollback(snapshot)
	}
	return err
}

func (s *Store) rollback(snapshot *state) {
	s.mu.Lock()
	s.data = snapshot
	s.mu.Unlock()
}

// Repositories

func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s} }
func (s *Store) Usage() *UsageRepo { return &UsageRepo{s} }
func (s *Store) Charges() *ChargeRepo { return &ChargeRepo{s} }
func (s *Store) Rooms() *RoomRepo { return &RoomRepo{s} }
func (s *Store) Prices() *PriceRepo { return &PriceRepo{s} }
func (s *Store) Promotions() *PromotionRepo { return &PromotionRepo{s} }
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s} }
func (s *Store) Holds() *HoldRepo { return &HoldRepo{s} }
func (s *Store) Housekeeping() *HousekeepingRepo { return &HousekeepingRepo{s} }
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s} }
