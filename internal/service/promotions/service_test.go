package promotions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	invoiceModels "github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
	lifecycleService "github.com/m04kA/SMC-HotelService/internal/service/lifecycle"
	"github.com/m04kA/SMC-HotelService/internal/service/promotions"
	"github.com/m04kA/SMC-HotelService/internal/testutil/harness"
)

func setup(t *testing.T) (*harness.Harness, int64) {
	h := harness.New(t, time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC))
	hotel := h.StandardHotel()
	h.Store.AddPromotion("AUTUMN10", domain.DiscountPercent, 10)

	checkIn, checkOut := h.Stay(2025, time.November, 13, 15)
	booking := h.Book(t, checkIn, checkOut, hotel.Rooms[0].ID)
	return h, booking.Booking.ID
}

func TestApply_FreezesDiscount(t *testing.T) {
	h, bookingID := setup(t)

	result, err := h.Promotions.Apply(context.Background(), bookingID, " AUTUMN10 ")
	require.NoError(t, err)

	assert.Equal(t, "AUTUMN10", result.Application.PromotionCode)
	assert.True(t, decimal.NewFromInt(100000).Equal(result.Application.Discount))
	assert.True(t, decimal.NewFromInt(100000).Equal(result.Booking.DiscountTotal))
	assert.True(t, decimal.NewFromInt(900000).Equal(result.Booking.ExpectedTotal))
	assert.True(t, decimal.NewFromInt(270000).Equal(result.Booking.DepositRequired))
}

func TestApply_SecondPromotionIsDuplicate(t *testing.T) {
	h, bookingID := setup(t)
	ctx := context.Background()
	h.Store.AddPromotion("FLAT50K", domain.DiscountFixed, 50000)

	_, err := h.Promotions.Apply(ctx, bookingID, "AUTUMN10")
	require.NoError(t, err)

	for _, code := range []string{"AUTUMN10", "FLAT50K"} {
		_, err = h.Promotions.Apply(ctx, bookingID, code)
		ce, ok := domain.AsConflict(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, domain.CodeDuplicate, ce.Code)
		assert.True(t, errors.Is(err, promotions.ErrAlreadyApplied))
	}

	assert.True(t, decimal.NewFromInt(100000).Equal(h.Store.Booking(bookingID).DiscountTotal))
}

func TestRemove_AfterPaidInvoiceIsFrozen(t *testing.T) {
	h, bookingID := setup(t)
	ctx := context.Background()

	_, err := h.Promotions.Apply(ctx, bookingID, "AUTUMN10")
	require.NoError(t, err)
	h.PayDeposit(t, bookingID)

	_, err = h.Promotions.Remove(ctx, bookingID)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)
	assert.True(t, errors.Is(err, promotions.ErrInvoiceLocked))

	assert.True(t, decimal.NewFromInt(100000).Equal(h.Store.Booking(bookingID).DiscountTotal))
}

func TestRemove_IssuedInvoiceBlocks(t *testing.T) {
	h, bookingID := setup(t)
	ctx := context.Background()

	_, err := h.Promotions.Apply(ctx, bookingID, "AUTUMN10")
	require.NoError(t, err)

	inv, err := h.Invoices.Create(ctx, &invoiceModels.CreateInvoiceRequest{
		Kind:       string(domain.InvoiceDeposit),
		BookingIDs: []int64{bookingID},
	})
	require.NoError(t, err)

	_, err = h.Promotions.Remove(ctx, bookingID)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)

	// После аннулирования счёта акцию можно снять
	_, err = h.Invoices.Void(ctx, inv.ID)
	require.NoError(t, err)

	result, err := h.Promotions.Remove(ctx, bookingID)
	require.NoError(t, err)
	assert.True(t, result.Booking.DiscountTotal.IsZero())
	assert.True(t, decimal.NewFromInt(1000000).Equal(result.Booking.ExpectedTotal))
}

func TestApply_AfterPaidInvoiceIsFrozen(t *testing.T) {
	h, bookingID := setup(t)
	h.PayDeposit(t, bookingID)

	_, err := h.Promotions.Apply(context.Background(), bookingID, "AUTUMN10")
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeInvoiceFrozen, ce.Code)
}

func TestApplyRemove_Errors(t *testing.T) {
	h, bookingID := setup(t)
	ctx := context.Background()

	_, err := h.Promotions.Apply(ctx, bookingID, "  ")
	assert.True(t, errors.Is(err, promotions.ErrInvalidInput))

	_, err = h.Promotions.Apply(ctx, bookingID, "NOPE")
	assert.True(t, errors.Is(err, promotions.ErrPromotionNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = h.Promotions.Apply(ctx, 9999, "AUTUMN10")
	assert.True(t, errors.Is(err, promotions.ErrBookingNotFound))

	_, err = h.Promotions.Remove(ctx, bookingID)
	assert.True(t, errors.Is(err, promotions.ErrNotApplied))

	_, err = h.Lifecycle.Cancel(ctx, &lifecycleService.CancelRequest{BookingID: bookingID})
	require.NoError(t, err)

	_, err = h.Promotions.Apply(ctx, bookingID, "AUTUMN10")
	ce, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.CodeIllegalTransition, ce.Code)
}
