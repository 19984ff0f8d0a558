package domain

import "time"

// HoldStatus sub-status of a provisional hold
type HoldStatus string

const (
	HoldConfirmed HoldStatus = "confirmed"
	HoldAllocated HoldStatus = "allocated"
	HoldReleased  HoldStatus = "released"
)

// ProvisionalHold inventory reserved for an online booking before payment clears
type ProvisionalHold struct {
	ID            int64
	RoomTypeID    int64
	Quantity      int
	From          time.Time
	To            time.Time
	Status        HoldStatus
	InvoiceID     *int64
	InvoiceStatus *InvoiceStatus // читается join'ом, не хранится
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ConsumesCapacity hold counts against availability while it is confirmed or
// allocated and its invoice (if any) is not paid.
func (h *ProvisionalHold) ConsumesCapacity() bool {
	if h.Status != HoldConfirmed && h.Status != HoldAllocated {
		return false
	}
	return h.InvoiceStatus == nil || *h.InvoiceStatus != InvoicePaid
}
