package recalc

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	invoiceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/invoice"
	promotionRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/promotion"
)

const (
	targetBooking = "booking"
	targetInvoice = "invoice"
)

// Service пересчёт итогов бронирования и счетов.
// Итоги всегда выводятся заново из сохранённых строк, начислений и скидки,
// поэтому повторный вызов без изменений даёт те же числа.
type Service struct {
	bookingRepo   BookingRepository
	usageRepo     UsageRepository
	chargeRepo    ChargeRepository
	promotionRepo PromotionRepository
	invoiceRepo   InvoiceRepository
	settings      SettingsProvider
	recorder      Recorder
	logger        Logger
}

// NewService создает новый экземпляр сервиса пересчёта. recorder может быть nil.
func NewService(
	bookingRepo BookingRepository,
	usageRepo UsageRepository,
	chargeRepo ChargeRepository,
	promotionRepo PromotionRepository,
	invoiceRepo InvoiceRepository,
	settings SettingsProvider,
	recorder Recorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		usageRepo:     usageRepo,
		chargeRepo:    chargeRepo,
		promotionRepo: promotionRepo,
		invoiceRepo:   invoiceRepo,
		settings:      settings,
		recorder:      recorder,
		logger:        logger,
	}
}

// RecalculateBooking пересчитывает итоги бронирования и затем все его открытые счета.
// Отменённые и неявившиеся бронирования не пересчитываются.
func (s *Service) RecalculateBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: RecalculateBooking - get booking: %v", ErrInternal, err)
	}

	if booking.Status.IsInactive() {
		return booking, nil
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateBooking - settings: %v", ErrInternal, err)
	}

	// 1. Строки, начисления и зафиксированная скидка
	lines, err := s.usageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateBooking - list lines: %v", ErrInternal, err)
	}

	charges, err := s.chargeRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateBooking - list charges: %v", ErrInternal, err)
	}

	discount := decimal.Zero
	app, err := s.promotionRepo.GetApplication(ctx, bookingID)
	switch {
	case err == nil:
		discount = app.Discount
	case errors.Is(err, promotionRepo.ErrApplicationNotFound):
	default:
		return nil, fmt.Errorf("%w: RecalculateBooking - get promotion: %v", ErrInternal, err)
	}

	// 2. Итоги и депозит
	totals := domain.ComputeBookingTotals(lines, charges, discount, booking.DepositRate, settings.MoneyScale)
	booking.ApplyTotals(totals)

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: RecalculateBooking - update booking: %v", ErrInternal, err)
	}
	s.record(targetBooking)

	s.logger.Info("RecalculateBooking: booking id=%d expected=%s deposit=%s (rooms=%s, services=%s, discount=%s)",
		booking.ID, booking.ExpectedTotal, booking.DepositRequired, booking.RoomTotal, booking.ServiceTotal, booking.DiscountTotal)

	// 3. Открытые счета, покрывающие бронирование
	if err := s.RecalculateInvoicesOf(ctx, bookingID); err != nil {
		return nil, err
	}

	return booking, nil
}

// RecalculateInvoicesOf пересчитывает все открытые счета, к которым привязано бронирование
func (s *Service) RecalculateInvoicesOf(ctx context.Context, bookingID int64) error {
	invoices, err := s.invoiceRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("%w: RecalculateInvoicesOf - list invoices: %v", ErrInternal, err)
	}

	for _, inv := range invoices {
		if inv.IsFrozen() {
			continue
		}
		if _, err := s.RecalculateInvoice(ctx, inv.ID); err != nil {
			return err
		}
	}

	return nil
}

// RecalculateInvoice пересчитывает итоги счёта по его бронированиям.
// Оплаченные и аннулированные счета заморожены и возвращаются без изменений.
func (s *Service) RecalculateInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("%w: RecalculateInvoice - get invoice: %v", ErrInternal, err)
	}

	if inv.IsFrozen() {
		s.logger.Info("RecalculateInvoice: invoice id=%d is %s, totals are frozen", inv.ID, inv.Status)
		return inv, nil
	}

	bookingIDs, err := s.invoiceRepo.ListBookingIDs(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateInvoice - list links: %v", ErrInternal, err)
	}

	bookings := make([]*domain.Booking, 0)
	if len(bookingIDs) > 0 {
		bookings, err = s.bookingRepo.GetByIDs(ctx, bookingIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: RecalculateInvoice - get bookings: %v", ErrInternal, err)
		}
	}

	inv.ApplyTotals(domain.ComputeInvoiceTotals(inv.Kind, inv.Fee, bookings))

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("%w: RecalculateInvoice - update invoice: %v", ErrInternal, err)
	}
	s.record(targetInvoice)

	s.logger.Info("RecalculateInvoice: invoice id=%d total=%s final=%s (%d bookings)",
		inv.ID, inv.Total, inv.FinalAmount, len(bookings))
	return inv, nil
}

func (s *Service) record(target string) {
	if s.recorder != nil {
		s.recorder.Recalculated(target)
	}
}
