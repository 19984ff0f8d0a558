// Package harness собирает сервисы и use case'ы поверх memstore так же, как cmd/main.go
// собирает их поверх postgres. Используется тестами пакетов service и usecase.
package harness

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/config"
	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/internal/integrations/guestservice"
	availabilityService "github.com/m04kA/SMC-HotelService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-HotelService/internal/service/bookings"
	chargesService "github.com/m04kA/SMC-HotelService/internal/service/charges"
	holdsService "github.com/m04kA/SMC-HotelService/internal/service/holds"
	invoicesService "github.com/m04kA/SMC-HotelService/internal/service/invoices"
	invoiceModels "github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	ledgerService "github.com/m04kA/SMC-HotelService/internal/service/ledger"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	pricingService "github.com/m04kA/SMC-HotelService/internal/service/pricing"
	promotionsService "github.com/m04kA/SMC-HotelService/internal/service/promotions"
	recalcService "github.com/m04kA/SMC-HotelService/internal/service/recalc"
	settingsService "github.com/m04kA/SMC-HotelService/internal/service/settings"
	"github.com/m04kA/SMC-HotelService/internal/testutil/memstore"
	addRoomUC "github.com/m04kA/SMC-HotelService/internal/usecase/add_room"
	adjustCheckInUC "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkin"
	adjustCheckOutUC "github.com/m04kA/SMC-HotelService/internal/usecase/adjust_checkout"
	earlyFeeUC "github.com/m04kA/SMC-HotelService/internal/usecase/apply_early_checkin_fee"
	changeRoomUC "github.com/m04kA/SMC-HotelService/internal/usecase/change_room"
	createBookingUC "github.com/m04kA/SMC-HotelService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-HotelService/internal/usecase/get_availability"
	removeRoomUC "github.com/m04kA/SMC-HotelService/internal/usecase/remove_room"
	repriceUC "github.com/m04kA/SMC-HotelService/internal/usecase/reprice_booking"
	"github.com/m04kA/SMC-HotelService/pkg/clock"
	"github.com/m04kA/SMC-HotelService/pkg/logger"
)

// Harness собранное приложение без HTTP
type Harness struct {
	Store  *memstore.Store
	Clock  *clock.Fake
	Guests *Guests
	Loc    *time.Location

	Settings     *settingsService.Service
	Pricing      *pricingService.Service
	Availability *availabilityService.Service
	Recalc       *recalcService.Service
	Ledger       *ledgerService.Service
	Bookings     *bookingsService.Service
	Charges      *chargesService.Service
	Promotions   *promotionsService.Service
	Holds        *holdsService.Service
	Invoices     *invoicesService.Service
	Lifecycle    *lifecycleService.Service

	CreateBooking   *createBookingUC.UseCase
	AddRoom         *addRoomUC.UseCase
	RemoveRoom      *removeRoomUC.UseCase
	ChangeRoom      *changeRoomUC.UseCase
	AdjustCheckIn   *adjustCheckInUC.UseCase
	AdjustCheckOut  *adjustCheckOutUC.UseCase
	Reprice         *repriceUC.UseCase
	EarlyFee        *earlyFeeUC.UseCase
	GetAvailability *getAvailabilityUC.UseCase
}

// New собирает приложение с политикой отеля по умолчанию; часы стоят на now
func New(t *testing.T, now time.Time) *Harness {
	t.Helper()

	defaults, err := config.Default().Hotel.Settings()
	require.NoError(t, err)

	log := logger.NewNop()
	store := memstore.New()
	fake := clock.NewFake(now)
	guests := NewGuests()

	h := &Harness{Store: store, Clock: fake, Guests: guests, Loc: defaults.Location}

	h.Settings = settingsService.NewService(store.Settings(), store.Charges(), defaults, log)
	h.Pricing = pricingService.NewService(store.Prices(), store.Rooms(), h.Settings, log)
	h.Availability = availabilityService.NewService(store.Rooms(), store.Usage(), store.Holds(), nil, log)
	h.Recalc = recalcService.NewService(
		store.Bookings(), store.Usage(), store.Charges(), store.Promotions(), store.Invoices(), h.Settings, nil, log)
	h.Ledger = ledgerService.NewService(store.Usage(), store.Charges(), store.Invoices(), store.Rooms(), h.Pricing, log)
	h.Bookings = bookingsService.NewService(
		store.Bookings(), store.Usage(), store.Charges(), store.Promotions(), store.Invoices(), store, log)
	h.Charges = chargesService.NewService(store.Bookings(), store.Usage(), store.Charges(), h.Recalc, store, log)
	h.Promotions = promotionsService.NewService(
		store.Bookings(), store.Promotions(), store.Invoices(), h.Settings, h.Recalc, store, fake, log)
	h.Holds = holdsService.NewService(store.Holds(), store.Invoices(), h.Availability, store, log)
	h.Invoices = invoicesService.NewService(
		store.Invoices(), store.Bookings(), store.Holds(), h.Recalc, nil, store, fake, log)
	h.Lifecycle = lifecycleService.NewService(
		store.Bookings(), store.Usage(), store.Rooms(), store.Invoices(), store.Housekeeping(),
		h.Availability, h.Recalc, nil, store, fake, log)

	h.CreateBooking = createBookingUC.NewUseCase(
		store.Bookings(), store.Rooms(), store.Holds(), guests, h.Settings, h.Availability, h.Ledger, h.Recalc, store, log)
	h.AddRoom = addRoomUC.NewUseCase(
		store.Bookings(), store.Rooms(), h.Settings, h.Availability, h.Ledger, h.Recalc, store, log)
	h.RemoveRoom = removeRoomUC.NewUseCase(store.Bookings(), h.Settings, h.Ledger, h.Recalc, store, log)
	h.ChangeRoom = changeRoomUC.NewUseCase(
		store.Bookings(), store.Rooms(), h.Settings, h.Availability, h.Ledger, h.Recalc, store, log)
	h.AdjustCheckIn = adjustCheckInUC.NewUseCase(
		store.Bookings(), h.Settings, h.Availability, h.Ledger, h.Recalc, store, log)
	h.AdjustCheckOut = adjustCheckOutUC.NewUseCase(
		store.Bookings(), h.Settings, h.Availability, h.Ledger, h.Recalc, store, log)
	h.Reprice = repriceUC.NewUseCase(store.Bookings(), h.Settings, h.Ledger, h.Recalc, store, log)
	h.EarlyFee = earlyFeeUC.NewUseCase(
		store.Bookings(), store.Charges(), h.Settings, h.Ledger, h.Recalc, store, fake, log)
	h.GetAvailability = getAvailabilityUC.NewUseCase(h.Availability, h.Settings, store, log)

	return h
}

// At момент в часовом поясе отеля
func (h *Harness) At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, h.Loc)
}

// Stay стандартное проживание: заезд 14:00 первого дня, выезд 12:00 последнего
func (h *Harness) Stay(year int, month time.Month, fromDay, toDay int) (time.Time, time.Time) {
	return h.At(year, month, fromDay, 14, 0), h.At(year, month, toDay, 12, 0)
}

// Book создает NIGHT-бронирование гостя 1 и требует успеха
func (h *Harness) Book(t *testing.T, checkIn, checkOut time.Time, roomIDs ...int64) *createBookingUC.Response {
	t.Helper()

	resp, err := h.CreateBooking.Execute(context.Background(), &createBookingUC.Request{
		GuestID:    1,
		RentalMode: string(domain.RentalModeNight),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomIDs:    roomIDs,
	})
	require.NoError(t, err)
	return resp
}

// PayDeposit выставляет и оплачивает депозитный счёт бронирования
func (h *Harness) PayDeposit(t *testing.T, bookingID int64) *invoiceModels.InvoiceResponse {
	t.Helper()
	ctx := context.Background()

	inv, err := h.Invoices.Create(ctx, &invoiceModels.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: []int64{bookingID},
	})
	require.NoError(t, err)

	_, err = h.Invoices.Pay(ctx, &invoiceModels.PaymentRequest{InvoiceID: inv.ID})
	require.NoError(t, err)
	return inv
}

// Hotel типовой отель: тип "Standard" с тремя комнатами и базовой ценой 500 000 за ночь
type Hotel struct {
	RoomType *domain.RoomType
	Rooms    []*domain.Room
}

func (h *Harness) StandardHotel() *Hotel {
	rt := h.Store.AddRoomType("Standard")
	hotel := &Hotel{RoomType: rt}
	for _, name := range []string{"101", "102", "103"} {
		hotel.Rooms = append(hotel.Rooms, h.Store.AddRoom(rt.ID, name))
	}
	h.Store.AddBasePrice(rt.ID, domain.RentalModeNight, 500000)
	h.Store.AddBasePrice(rt.ID, domain.RentalModeHour, 120000)
	return hotel
}

// Guests справочник гостей в памяти
type Guests struct {
	mu       sync.Mutex
	guests   map[int64]*guestservice.Guest
	degraded bool
}

func NewGuests() *Guests {
	return &Guests{guests: map[int64]*guestservice.Guest{
		1: {ID: 1, FullName: "Nguyen Van A"},
	}}
}

// Add регистрирует гостя
func (g *Guests) Add(guest *guestservice.Guest) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.guests[guest.ID] = guest
}

// SetDegraded имитирует недоступность справочника
func (g *Guests) SetDegraded(degraded bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.degraded = degraded
}

func (g *Guests) GetGuestWithGracefulDegradation(_ context.Context, guestID int64) (*guestservice.Guest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.degraded {
		return nil, guestservice.ErrServiceDegraded
	}
	guest, ok := g.guests[guestID]
	if !ok {
		return nil, guestservice.ErrGuestNotFound
	}
	copied := *guest
	return &copied, nil
}
