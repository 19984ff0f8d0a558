package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service позиция каталога услуг (завтрак, поздний выезд, ранний заезд...)
type Service struct {
	ID        int64
	Code      string
	Name      string
	Unit      string
	UnitPrice decimal.Decimal
	Active    bool
}

// ChargeOrigin who created the charge
type ChargeOrigin string

const (
	OriginStaff   ChargeOrigin = "staff"
	OriginAuto    ChargeOrigin = "auto"
	OriginChatbot ChargeOrigin = "chatbot"
)

// ParseChargeOrigin
func ParseChargeOrigin(s string) (ChargeOrigin, bool) {
	switch o := ChargeOrigin(s); o {
	case OriginStaff, OriginAuto, OriginChatbot:
		return o, true
	}
	return "", false
}

// ChargeStatus статус начисления
type ChargeStatus string

const (
	ChargeActive    ChargeStatus = "active"
	ChargeCancelled ChargeStatus = "cancelled"
)

// ChargeKey (booking, room, line, service, charge_no)
type ChargeKey struct {
	BookingID int64
	RoomID    int64
	LineNo    int
	ServiceID int64
	ChargeNo  int
}

// ServiceCharge начисление за услугу, привязанное к конкретной строке использования
type ServiceCharge struct {
	BookingID int64
	RoomID    int64
	LineNo    int
	ServiceID int64
	ChargeNo  int

	ServiceName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Status      ChargeStatus
	Origin      ChargeOrigin

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *ServiceCharge) Key() ChargeKey {
	return ChargeKey{
		BookingID: c.BookingID,
		RoomID:    c.RoomID,
		LineNo:    c.LineNo,
		ServiceID: c.ServiceID,
		ChargeNo:  c.ChargeNo,
	}
}

func (c *ServiceCharge) IsActive() bool {
	return c.Status == ChargeActive
}

// SetQuantity updates quantity and total
func (c *ServiceCharge) SetQuantity(q int) {
	c.Quantity = q
	c.Total = c.UnitPrice.Mul(decimal.NewFromInt(int64(q)))
}

// OnLine reports whether the charge belongs to the usage line
func (c *ServiceCharge) OnLine(k LineKey) bool {
	return c.BookingID == k.BookingID && c.RoomID == k.RoomID && c.LineNo == k.LineNo
}

// NextChargeNo следующий номер начисления услуги на строке
func NextChargeNo(charges []*ServiceCharge, line LineKey, serviceID int64) int {
	maxNo := 0
	for _, c := range charges {
		if c.OnLine(line) && c.ServiceID == serviceID && c.ChargeNo > maxNo {
			maxNo = c.ChargeNo
		}
	}
	return maxNo + 1
}
