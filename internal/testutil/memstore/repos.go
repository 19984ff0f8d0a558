package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	chargeRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/charge"
	holdRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/hold"
	invoiceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/invoice"
	priceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/price"
	promotionRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/promotion"
	roomRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/room"
	settingsRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/settings"
	usageRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/usage"
)

// ---------------------------------------------------------------- bookings

type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b.ID = r.s.nextID()
	b.CreatedAt = r.s.stamp()
	b.UpdatedAt = b.CreatedAt
	r.s.data.bookings[b.ID] = *b

	created := *b
	return &created, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Booking, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		if b, ok := r.s.data.bookings[id]; ok {
			result = append(result, &b)
		}
	}
	return result, nil
}

func (r *BookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if filter.GuestID != nil && b.GuestID != *filter.GuestID {
			continue
		}
		if filter.From != nil && !b.PlannedCheckOut.After(*filter.From) {
			continue
		}
		if filter.To != nil && !b.PlannedCheckIn.Before(*filter.To) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && b.Status.IsInactive() {
			continue
		}
		b := b
		result = append(result, &b)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].PlannedCheckIn.Equal(result[j].PlannedCheckIn) {
			return result[i].PlannedCheckIn.After(result[j].PlannedCheckIn)
		}
		return result[i].ID > result[j].ID
	})

	if filter.Limit > 0 {
		start := int(filter.Offset)
		if start > len(result) {
			start = len(result)
		}
		end := start + int(filter.Limit)
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}
	return result, nil
}

func (r *BookingRepo) Update(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.bookings[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.UpdatedAt = r.s.stamp()
	r.s.data.bookings[b.ID] = *b
	return nil
}

// ---------------------------------------------------------------- usage lines

type UsageRepo struct{ s *Store }

func (r *UsageRepo) ListByBooking(_ context.Context, bookingID int64) ([]*domain.UsageLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.linesOf(bookingID), nil
}

func (r *UsageRepo) Create(_ context.Context, line *domain.UsageLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.data.lines[line.Key()]; exists {
		return usageRepo.ErrExecQuery
	}
	line.CreatedAt = r.s.stamp()
	line.UpdatedAt = line.CreatedAt
	r.s.data.lines[line.Key()] = *line
	return nil
}

func (r *UsageRepo) Update(_ context.Context, line *domain.UsageLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.lines[line.Key()]; !ok {
		return usageRepo.ErrLineNotFound
	}
	line.UpdatedAt = r.s.stamp()
	r.s.data.lines[line.Key()] = *line
	return nil
}

// Rekey переносит строку; начисления следуют за ней (ON UPDATE CASCADE)
func (r *UsageRepo) Rekey(_ context.Context, from, to domain.LineKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	line, ok := r.s.data.lines[from]
	if !ok {
		return usageRepo.ErrLineNotFound
	}
	if _, exists := r.s.data.lines[to]; exists {
		return usageRepo.ErrExecQuery
	}

	delete(r.s.data.lines, from)
	line.RoomID = to.RoomID
	line.LineNo = to.LineNo
	r.s.data.lines[to] = line

	for key, c := range r.s.data.charges {
		if !c.OnLine(from) {
			continue
		}
		delete(r.s.data.charges, key)
		c.RoomID = to.RoomID
		c.LineNo = to.LineNo
		r.s.data.charges[c.Key()] = c
	}
	return nil
}

func (r *UsageRepo) Delete(_ context.Context, key domain.LineKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.lines[key]; !ok {
		return usageRepo.ErrLineNotFound
	}
	delete(r.s.data.lines, key)
	return nil
}

// ListOccupancy кандидаты на пересечение: комнаты с активными строками занимающих бронирований
func (r *UsageRepo) ListOccupancy(_ context.Context, filter domain.OccupancyFilter) ([]*domain.RoomOccupancy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type pair struct{ roomID, bookingID int64 }
	seen := make(map[pair]struct{})
	result := make([]*domain.RoomOccupancy, 0)

	for _, line := range r.s.data.lines {
		if !line.IsActive() {
			continue
		}
		if len(filter.RoomIDs) > 0 && !containsID(filter.RoomIDs, line.RoomID) {
			continue
		}
		if filter.ExcludeBookingID != nil && line.BookingID == *filter.ExcludeBookingID {
			continue
		}

		b, ok := r.s.data.bookings[line.BookingID]
		if !ok || !b.Status.Occupies() {
			continue
		}
		room, ok := r.s.data.rooms[line.RoomID]
		if !ok {
			continue
		}
		if filter.RoomTypeID != nil && room.RoomTypeID != *filter.RoomTypeID {
			continue
		}

		startsBefore := b.PlannedCheckIn.Before(filter.To) ||
			(b.ActualCheckIn != nil && b.ActualCheckIn.Before(filter.To))
		endsAfter := b.PlannedCheckOut.After(filter.From) ||
			(b.ActualCheckOut != nil && b.ActualCheckOut.After(filter.From))
		if !startsBefore || !endsAfter {
			continue
		}

		k := pair{room.ID, b.ID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		booking := b
		result = append(result, &domain.RoomOccupancy{
			RoomID:     room.ID,
			RoomName:   room.Name,
			RoomTypeID: room.RoomTypeID,
			Booking:    &booking,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].RoomID != result[j].RoomID {
			return result[i].RoomID < result[j].RoomID
		}
		return result[i].Booking.ID < result[j].Booking.ID
	})
	return result, nil
}

func (s *Store) linesOf(bookingID int64) []*domain.UsageLine {
	result := make([]*domain.UsageLine, 0)
	for _, l := range s.data.lines {
		if l.BookingID == bookingID {
			l := l
			result = append(result, &l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RoomID != result[j].RoomID {
			return result[i].RoomID < result[j].RoomID
		}
		return result[i].LineNo < result[j].LineNo
	})
	return result
}

// ---------------------------------------------------------------- service charges

type ChargeRepo struct{ s *Store }

func (r *ChargeRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.data.services[id]
	if !ok {
		return nil, chargeRepo.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *ChargeRepo) ListByBooking(_ context.Context, bookingID int64) ([]*domain.ServiceCharge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.chargesOf(bookingID), nil
}

func (r *ChargeRepo) Create(_ context.Context, c *domain.ServiceCharge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.lines[domain.LineKey{BookingID: c.BookingID, RoomID: c.RoomID, LineNo: c.LineNo}]; !ok {
		return chargeRepo.ErrExecQuery
	}
	if _, exists := r.s.data.charges[c.Key()]; exists {
		return chargeRepo.ErrExecQuery
	}
	c.CreatedAt = r.s.stamp()
	c.UpdatedAt = c.CreatedAt
	r.s.data.charges[c.Key()] = *c
	return nil
}

func (r *ChargeRepo) Update(_ context.Context, c *domain.ServiceCharge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.charges[c.Key()]; !ok {
		return chargeRepo.ErrChargeNotFound
	}
	c.UpdatedAt = r.s.stamp()
	r.s.data.charges[c.Key()] = *c
	return nil
}

func (s *Store) chargesOf(bookingID int64) []*domain.ServiceCharge {
	result := make([]*domain.ServiceCharge, 0)
	for _, c := range s.data.charges {
		if c.BookingID == bookingID {
			c := c
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.RoomID != b.RoomID:
			return a.RoomID < b.RoomID
		case a.LineNo != b.LineNo:
			return a.LineNo < b.LineNo
		case a.ServiceID != b.ServiceID:
			return a.ServiceID < b.ServiceID
		}
		return a.ChargeNo < b.ChargeNo
	})
	return result
}

// ---------------------------------------------------------------- rooms

type RoomRepo struct{ s *Store }

func (r *RoomRepo) GetRoomByID(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.data.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *RoomRepo) GetRoomsByIDs(_ context.Context, ids []int64) ([]*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Room, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		if room, ok := r.s.data.rooms[id]; ok {
			result = append(result, &room)
		}
	}
	return result, nil
}

func (r *RoomRepo) ListRoomsByType(_ context.Context, roomTypeID int64) ([]*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Room, 0)
	for _, room := range r.s.data.rooms {
		if room.RoomTypeID == roomTypeID {
			room := room
			result = append(result, &room)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *RoomRepo) UpdateRoomsStatus(_ context.Context, ids []int64, status domain.RoomStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range ids {
		room, ok := r.s.data.rooms[id]
		if !ok {
			continue
		}
		room.Status = status
		room.UpdatedAt = r.s.stamp()
		r.s.data.rooms[id] = room
	}
	return nil
}

func (r *RoomRepo) GetRoomTypeByID(_ context.Context, id int64) (*domain.RoomType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rt, ok := r.s.data.roomTypes[id]
	if !ok {
		return nil, roomRepo.ErrRoomTypeNotFound
	}
	return &rt, nil
}

// ---------------------------------------------------------------- prices

type PriceRepo struct{ s *Store }

func (r *PriceRepo) GetBasePrice(_ context.Context, roomTypeID int64, mode domain.RentalMode) (*domain.Price, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.data.prices {
		if p.RoomTypeID == roomTypeID && p.RentalMode == mode && p.Period.Kind == domain.PeriodBase {
			return &p, nil
		}
	}
	return nil, priceRepo.ErrPriceNotFound
}

func (r *PriceRepo) ListSpecialPrices(_ context.Context, roomTypeID int64, mode domain.RentalMode, from, to time.Time) ([]*domain.Price, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Price, 0)
	for _, p := range r.s.data.prices {
		if p.RoomTypeID != roomTypeID || p.RentalMode != mode || p.Period.Kind != domain.PeriodSpecial {
			continue
		}
		if p.Period.StartsAt == nil || p.Period.EndsAt == nil {
			continue
		}
		if p.Period.StartsAt.After(to) || p.Period.EndsAt.Before(from) {
			continue
		}
		p := p
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period.ID > result[j].Period.ID })
	return result, nil
}

// ---------------------------------------------------------------- promotions

type PromotionRepo struct{ s *Store }

func (r *PromotionRepo) GetByID(_ context.Context, id int64) (*domain.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.promotions[id]
	if !ok {
		return nil, promotionRepo.ErrPromotionNotFound
	}
	return &p, nil
}

func (r *PromotionRepo) GetByCode(_ context.Context, code string) (*domain.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.data.promotions {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, promotionRepo.ErrPromotionNotFound
}

func (r *PromotionRepo) GetApplication(_ context.Context, bookingID int64) (*domain.PromotionApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.data.applications[bookingID]
	if !ok {
		return nil, promotionRepo.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *PromotionRepo) CreateApplication(_ context.Context, a *domain.PromotionApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.data.applications[a.BookingID]; exists {
		return promotionRepo.ErrApplicationExists
	}
	r.s.data.applications[a.BookingID] = *a
	return nil
}

func (r *PromotionRepo) DeleteApplication(_ context.Context, bookingID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.applications[bookingID]; !ok {
		return promotionRepo.ErrApplicationNotFound
	}
	delete(r.s.data.applications, bookingID)
	return nil
}

// ---------------------------------------------------------------- invoices

type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv.ID = r.s.nextID()
	inv.CreatedAt = r.s.stamp()
	inv.UpdatedAt = inv.CreatedAt
	r.s.data.invoices[inv.ID] = *inv
	return inv, nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id int64) (*domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.data.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	return &inv, nil
}

func (r *InvoiceRepo) ListByBooking(_ context.Context, bookingID int64) ([]*domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Invoice, 0)
	for key := range r.s.data.links {
		if key.BookingID != bookingID {
			continue
		}
		if inv, ok := r.s.data.invoices[key.InvoiceID]; ok {
			result = append(result, &inv)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.invoices[inv.ID]; !ok {
		return invoiceRepo.ErrInvoiceNotFound
	}
	inv.UpdatedAt = r.s.stamp()
	r.s.data.invoices[inv.ID] = *inv
	return nil
}

// MarkPaid ISSUED -> PAID ровно один раз; ссылка на платёж уникальна среди счетов
func (r *InvoiceRepo) MarkPaid(_ context.Context, id int64, paidAt time.Time, paymentRef string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for otherID, other := range r.s.data.invoices {
		if otherID != id && other.PaymentRef != nil && *other.PaymentRef == paymentRef {
			return false, invoiceRepo.ErrPaymentRefExists
		}
	}

	inv, ok := r.s.data.invoices[id]
	if !ok || inv.Status != domain.InvoiceIssued {
		return false, nil
	}

	ref := paymentRef
	at := paidAt
	inv.Status = domain.InvoicePaid
	inv.PaidAt = &at
	inv.PaymentRef = &ref
	inv.UpdatedAt = r.s.stamp()
	r.s.data.invoices[id] = inv
	return true, nil
}

func (r *InvoiceRepo) CreateLink(_ context.Context, link *domain.InvoiceLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := linkKey{InvoiceID: link.InvoiceID, BookingID: link.BookingID}
	if _, exists := r.s.data.links[key]; exists {
		return invoiceRepo.ErrLinkExists
	}
	link.CreatedAt = r.s.stamp()
	r.s.data.links[key] = link.CreatedAt
	return nil
}

func (r *InvoiceRepo) DeleteLink(_ context.Context, invoiceID, bookingID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := linkKey{InvoiceID: invoiceID, BookingID: bookingID}
	if _, ok := r.s.data.links[key]; !ok {
		return invoiceRepo.ErrLinkNotFound
	}
	delete(r.s.data.links, key)
	return nil
}

func (r *InvoiceRepo) ListBookingIDs(_ context.Context, invoiceID int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int64, 0)
	for key := range r.s.data.links {
		if key.InvoiceID == invoiceID {
			ids = append(ids, key.BookingID)
		}
	}
	return sortedIDs(ids), nil
}

// ---------------------------------------------------------------- provisional holds

type HoldRepo struct{ s *Store }

func (r *HoldRepo) Create(_ context.Context, h *domain.ProvisionalHold) (*domain.ProvisionalHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h.ID = r.s.nextID()
	h.CreatedAt = r.s.stamp()
	h.UpdatedAt = h.CreatedAt
	r.s.data.holds[h.ID] = *h
	return r.s.withInvoiceStatus(*h), nil
}

func (r *HoldRepo) GetByID(_ context.Context, id int64) (*domain.ProvisionalHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.data.holds[id]
	if !ok {
		return nil, holdRepo.ErrHoldNotFound
	}
	return r.s.withInvoiceStatus(h), nil
}

func (r *HoldRepo) ListByInvoice(_ context.Context, invoiceID int64) ([]*domain.ProvisionalHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.holdsWhere(func(h domain.ProvisionalHold) bool {
		return h.InvoiceID != nil && *h.InvoiceID == invoiceID
	}), nil
}

func (r *HoldRepo) ListActiveOverlapping(_ context.Context, roomTypeID int64, from, to time.Time) ([]*domain.ProvisionalHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.holdsWhere(func(h domain.ProvisionalHold) bool {
		return h.RoomTypeID == roomTypeID &&
			(h.Status == domain.HoldConfirmed || h.Status == domain.HoldAllocated) &&
			h.From.Before(to) && h.To.After(from)
	}), nil
}

func (r *HoldRepo) UpdateStatus(_ context.Context, id int64, status domain.HoldStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.data.holds[id]
	if !ok {
		return holdRepo.ErrHoldNotFound
	}
	h.Status = status
	h.UpdatedAt = r.s.stamp()
	r.s.data.holds[id] = h
	return nil
}

func (s *Store) holdsWhere(match func(h domain.ProvisionalHold) bool) []*domain.ProvisionalHold {
	result := make([]*domain.ProvisionalHold, 0)
	for _, h := range s.data.holds {
		if match(h) {
			result = append(result, s.withInvoiceStatus(h))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// withInvoiceStatus статус счёта подставляется так же, как join в postgres-репозитории
func (s *Store) withInvoiceStatus(h domain.ProvisionalHold) *domain.ProvisionalHold {
	h.InvoiceStatus = nil
	if h.InvoiceID != nil {
		if inv, ok := s.data.invoices[*h.InvoiceID]; ok {
			status := inv.Status
			h.InvoiceStatus = &status
		}
	}
	return &h
}

// ---------------------------------------------------------------- housekeeping

type HousekeepingRepo struct{ s *Store }

func (r *HousekeepingRepo) Create(_ context.Context, task *domain.HousekeepingTask) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task.ID = r.s.nextID()
	task.CreatedAt = r.s.stamp()
	r.s.data.tasks = append(r.s.data.tasks, *task)
	return nil
}

// ---------------------------------------------------------------- settings

type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) Get(_ context.Context) (*domain.HotelSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.data.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	settings := *r.s.data.settings
	return &settings, nil
}

func (r *SettingsRepo) Upsert(_ context.Context, settings *domain.HotelSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	settings.UpdatedAt = r.s.stamp()
	stored := *settings
	r.s.data.settings = &stored
	return nil
}

// ---------------------------------------------------------------- helpers

func sortedIDs(ids []int64) []int64 {
	result := append([]int64(nil), ids...)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
