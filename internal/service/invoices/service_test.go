package invoices_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	holdsService "github.com/m04kA/SMC-HotelService/internal/service/holds"
	"github.com/m04kA/SMC-HotelService/internal/service/invoices"
	"github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
)

func setup(t *testing.T) (*harness.Harness, *harness.Hotel, int64) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	return h, hotel, booking.Booking.ID
}

func deposit(t *testing.T, h *harness.Harness, bookingIDs ...int64) *models.InvoiceResponse {
	t.Helper()
	inv, err := h.Invoices.Create(context.Background(), &models.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: bookingIDs,
	})
	require.NoError(t, err)
	return inv
}

func TestCreate_DepositTotals(t *testing.T) {
	h, _, bookingID := setup(t)

	inv, err := h.Invoices.Create(context.Background(), &models.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: []int64{bookingID, bookingID},
		Fee:        decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.InvoiceIssued), inv.Status)
	assert.Equal(t, []int64{bookingID}, inv.BookingIDs, "duplicate ids are linked once")
	assert.True(t, decimal.NewFromInt(300000).Equal(inv.Total))
	assert.True(t, decimal.NewFromInt(310000).Equal(inv.FinalAmount))
}

func TestCreate_Validation(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()

	_, err := h.Invoices.Create(ctx, &models.CreateInvoiceRequest{Kind: "refund", BookingIDs: []int64{bookingID}})
	assert.True(t, errors.Is(err, invoices.ErrInvalidInput))

	_, err = h.Invoices.Create(ctx, &models.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceFinal),
		BookingIDs: []int64{bookingID},
		Fee:        decimal.NewFromInt(-1),
	})
	assert.True(t, errors.Is(err, invoices.ErrInvalidInput))

	_, err = h.Invoices.Create(ctx, &models.CreateInvoiceRequest{Kind: string(domain.InvoiceFinal), BookingIDs: []int64{9999}})
	assert.True(t, errors.Is(err, invoices.ErrBookingNotFound))
}

func TestPay_ExactlyOnce(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()
	inv := deposit(t, h, bookingID)

	first, err := h.Invoices.Pay(ctx, &models.PaymentRequest{InvoiceID: inv.ID, PaymentRef: "PAY-42"})
	require.NoError(t, err)
	assert.False(t, first.AlreadyPaid)
	assert.Equal(t, []int64{bookingID}, first.ConfirmedBookings)
	assert.Equal(t, string(domain.InvoicePaid), first.Invoice.Status)
	require.NotNil(t, first.Invoice.PaymentRef)
	assert.Equal(t, "PAY-42", *first.Invoice.PaymentRef)

	booking := h.Store.Booking(bookingID)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.True(t, decimal.NewFromInt(300000).Equal(booking.DepositPaid))

	// Повторное уведомление с другой ссылкой ничего не меняет
	h.Clock.Advance(time.Hour)
	second, err := h.Invoices.Pay(ctx, &models.PaymentRequest{InvoiceID: inv.ID, PaymentRef: "PAY-43"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyPaid)
	assert.Empty(t, second.ConfirmedBookings)

	stored := h.Store.Invoice(inv.ID)
	assert.Equal(t, "PAY-42", *stored.PaymentRef)
	assert.True(t, first.Invoice.PaidAt.Equal(*stored.PaidAt))
	assert.True(t, first.Invoice.FinalAmount.Equal(stored.FinalAmount))
	assert.True(t, decimal.NewFromInt(300000).Equal(h.Store.Booking(bookingID).DepositPaid))
}

func TestPay_GeneratesReference(t *testing.T) {
	h, _, bookingID := setup(t)
	inv := deposit(t, h, bookingID)

	resp, err := h.Invoices.Pay(context.Background(), &models.PaymentRequest{InvoiceID: inv.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.Invoice.PaymentRef)
	assert.NotEmpty(t, *resp.Invoice.PaymentRef)
}

func TestPay_DuplicateReference(t *testing.T) {
	h, hotel, bookingID := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 20, 21)
	other := h.Book(t, checkIn, checkOut, hotel.Rooms[1].ID)

	first := deposit(t, h, bookingID)
	second := deposit(t, h, other.Booking.ID)

	_, err := h.Invoices.Pay(ctx, &models.PaymentRequest{InvoiceID: first.ID, PaymentRef: "PAY-1"})
	require.NoError(t, err)

	_, err = h.Invoices.Pay(ctx, &models.PaymentRequest{InvoiceID: second.ID, PaymentRef: "PAY-1"})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeDuplicate, ce.Code)
	assert.True(t, errors.Is(err, invoices.ErrDuplicatePayment))

	assert.Equal(t, domain.InvoiceIssued, h.Store.Invoice(second.ID).Status)
	assert.Equal(t, domain.StatusPending, h.Store.Booking(other.Booking.ID).Status)
}

func TestPay_FinalInvoiceDoesNotConfirm(t *testing.T) {
	h, _, bookingID := setup(t)

	inv, err := h.Invoices.Create(context.Background(), &models.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceFinal),
		BookingIDs: []int64{bookingID},
	})
	require.NoError(t, err)

	resp, err := h.Invoices.Pay(context.Background(), &models.PaymentRequest{InvoiceID: inv.ID})
	require.NoError(t, err)
	assert.Empty(t, resp.ConfirmedBookings)
	assert.Equal(t, domain.StatusPending, h.Store.Booking(bookingID).Status)
	assert.True(t, h.Store.Booking(bookingID).DepositPaid.IsZero())
}

func TestDraftLifecycle(t *testing.T) {
	h, _, bookingID := setup(t)
	ctx := context.Background()

	inv, err := h.Invoices.Create(ctx, &models.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceFinal),
		BookingIDs: []int64{bookingID},
		Draft:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvoiceDraft), inv.Status)

	_, err = h.Invoices.Pay(ctx, &models.PaymentRequest{InvoiceID: inv.ID})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)

	issued, err := h.Invoices.Issue(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvoiceIssued), issued.Status)

	_, err = h.Invoices.Issue(ctx, inv.ID)
	ce, ok = domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
}

func TestVoid(t *testing.T) {
	h, hotel, bookingID := setup(t)
	ctx := context.Background()
	inv := deposit(t, h, bookingID)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	hold, err := h.Holds.Create(ctx, &holdsService.CreateHoldRequest{
		RoomTypeID: hotel.RoomType.ID,
		Quantity:   1,
		From:       checkIn,
		To:         checkOut,
		InvoiceID:  &inv.ID,
	})
	require.NoError(t, err)

	voided, err := h.Invoices.Void(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvoiceVoid), voided.Status)
	assert.Equal(t, domain.HoldReleased, h.Store.Hold(hold.ID).Status)

	_, err = h.Invoices.Pay(ctx, &models.PaymentRequest{InvoiceID: inv.ID})
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)

	_, err = h.Invoices.Void(ctx, inv.ID)
	ce, ok = domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)
}

func TestVoid_PaidInvoiceIsFrozen(t *testing.T) {
	h, _, bookingID := setup(t)
	inv := h.PayDeposit(t, bookingID)

	_, err := h.Invoices.Void(context.Background(), inv.ID)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)
	assert.Equal(t, domain.InvoicePaid, h.Store.Invoice(inv.ID).Status)
}

func TestLinkUnlink(t *testing.T) {
	h, hotel, bookingID := setup(t)
	ctx := context.Background()

	checkIn, checkOut := h.Stay(2025, time.November, 20, 21)
	other := h.Book(t, checkIn, checkOut, hotel.Rooms[1].ID)

	inv := deposit(t, h, bookingID)

	linked, err := h.Invoices.Link(ctx, inv.ID, other.Booking.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{bookingID, other.Booking.ID}, linked.BookingIDs)
	assert.True(t, decimal.NewFromInt(450000).Equal(linked.Total))

	_, err = h.Invoices.Link(ctx, inv.ID, other.Booking.ID)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeDuplicate, ce.Code)

	unlinked, err := h.Invoices.Unlink(ctx, inv.ID, other.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{bookingID}, unlinked.BookingIDs)
	assert.True(t, decimal.NewFromInt(300000).Equal(unlinked.Total))

	_, err = h.Invoices.Unlink(ctx, inv.ID, other.Booking.ID)
	assert.True(t, errors.Is(err, invoices.ErrLinkNotFound))

	_, err = h.Lifecycle.Cancel(ctx, &lifecycleService.CancelRequest{BookingID: other.Booking.ID})
	require.NoError(t, err)
	_, err = h.Invoices.Link(ctx, inv.ID, other.Booking.ID)
	ce, ok = domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
}

func TestLink_PaidInvoiceIsFrozen(t *testing.T) {
	h, hotel, bookingID := setup(t)

	checkIn, checkOut := h.Stay(2025, time.November, 20, 21)
	other := h.Book(t, checkIn, checkOut, hotel.Rooms[1].ID)
	inv := h.PayDeposit(t, bookingID)

	_, err := h.Invoices.Link(context.Background(), inv.ID, other.Booking.ID)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)
}

func TestGet_NotFound(t *testing.T) {
	h, _, _ := setup(t)

	_, err := h.Invoices.Get(context.Background(), 9999)
	assert.True(t, errors.Is(err, invoices.ErrInvoiceNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
