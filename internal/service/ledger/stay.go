package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
)

// Stay снимок бронирования внутри транзакции: строки, начисления и связанные счета.
// Методы Service поддерживают снимок в согласованном с БД состоянии.
type Stay struct {
	Booking  *domain.Booking
	Lines    []*domain.UsageLine
	Charges  []*domain.ServiceCharge
	Invoices []*domain.Invoice
	Settings *domain.HotelSettings
}

// ActiveLines активные строки, опционально только одной комнаты (roomID = 0 - все)
func (s *Stay) ActiveLines(roomID int64) []*domain.UsageLine {
	result := make([]*domain.UsageLine, 0)
	for _, l := range s.Lines {
		if !l.IsActive() {
			continue
		}
		if roomID != 0 && l.RoomID != roomID {
			continue
		}
		result = append(result, l)
	}
	return result
}

// RoomIDs комнаты с активными строками
func (s *Stay) RoomIDs() []int64 {
	return domain.RoomIDsOf(s.Lines)
}

// HasRoom true, если у комнаты есть активные строки
func (s *Stay) HasRoom(roomID int64) bool {
	return len(s.ActiveLines(roomID)) > 0
}

// IsBilled строки уже попали в выставленный (не аннулированный) счёт
func (s *Stay) IsBilled() bool {
	for _, inv := range s.Invoices {
		if inv.Status != domain.InvoiceVoid {
			return true
		}
	}
	return false
}

// HasPaidInvoice к бронированию привязан оплаченный счёт
func (s *Stay) HasPaidInvoice() bool {
	for _, inv := range s.Invoices {
		if inv.IsPaid() {
			return true
		}
	}
	return false
}

// ChargesOn все начисления строки (включая отменённые)
func (s *Stay) ChargesOn(key domain.LineKey) []*domain.ServiceCharge {
	result := make([]*domain.ServiceCharge, 0)
	for _, c := range s.Charges {
		if c.OnLine(key) {
			result = append(result, c)
		}
	}
	return result
}

// NightLinesIn активные NIGHT-строки, чья дата ночи попадает в [from, to)
func (s *Stay) NightLinesIn(from, to time.Time) []*domain.UsageLine {
	result := make([]*domain.UsageLine, 0)
	for _, l := range s.ActiveLines(0) {
		if l.Unit != domain.UnitNight || l.NightDate == nil {
			continue
		}
		if !l.NightDate.Before(from) && l.NightDate.Before(to) {
			result = append(result, l)
		}
	}
	return result
}

// LatestLine последняя активная строка комнаты (по дате ночи или началу, затем по номеру)
func (s *Stay) LatestLine(roomID int64) *domain.UsageLine {
	var latest *domain.UsageLine
	for _, l := range s.ActiveLines(roomID) {
		if latest == nil || lineStart(l).After(lineStart(latest)) ||
			(lineStart(l).Equal(lineStart(latest)) && l.LineNo > latest.LineNo) {
			latest = l
		}
	}
	return latest
}

// SampledPrice цена за ночь, по которой добавляются ночи при раннем заезде:
// цена самой ранней активной строки комнаты
func (s *Stay) SampledPrice(roomID int64) (decimal.Decimal, bool) {
	var earliest *domain.UsageLine
	for _, l := range s.ActiveLines(roomID) {
		if earliest == nil || lineStart(l).Before(lineStart(earliest)) {
			earliest = l
		}
	}
	if earliest == nil {
		return decimal.Zero, false
	}
	return earliest.UnitPrice, true
}

func lineStart(l *domain.UsageLine) time.Time {
	if l.NightDate != nil {
		return *l.NightDate
	}
	if l.StartAt != nil {
		return *l.StartAt
	}
	return time.Time{}
}
