package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	promotionRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/promotion"
)

// Result применённая акция и пересчитанное бронирование
type Result struct {
	Application *domain.PromotionApplication
	Booking     *domain.Booking
}

// Service применение акций к бронированиям. Не более одной акции на бронирование;
// сумма скидки фиксируется в момент применения.
type Service struct {
	bookingRepo   BookingRepository
	promotionRepo PromotionRepository
	invoiceRepo   InvoiceRepository
	settings      SettingsProvider
	recalc        Recalculator
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса акций
func NewService(
	bookingRepo BookingRepository,
	promotionRepo PromotionRepository,
	invoiceRepo InvoiceRepository,
	settings SettingsProvider,
	recalc Recalculator,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		promotionRepo: promotionRepo,
		invoiceRepo:   invoiceRepo,
		settings:      settings,
		recalc:        recalc,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Apply применяет акцию по коду
func (s *Service) Apply(ctx context.Context, bookingID int64, code string) (*Result, error) {
	code = strings.TrimSpace(code)
	s.logger.Info("Apply: promotion %q for booking id=%d", code, bookingID)

	if code == "" {
		return nil, fmt.Errorf("%w: promotion code is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	result := &Result{}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.loadBooking(txCtx, "Apply", bookingID)
		if err != nil {
			return err
		}

		// 1. Акция из каталога
		promo, err := s.promotionRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
				s.logger.Warn("Apply: promotion %q not found", code)
				return ErrPromotionNotFound
			}
			return fmt.Errorf("%w: Apply - get promotion: %v", ErrInternal, err)
		}
		if !promo.IsApplicableAt(now) {
			s.logger.Warn("Apply: promotion %q is not applicable at %s", code, now.Format(domain.DateTimeFormat))
			return ErrNotApplicable
		}

		// 2. Одна акция на бронирование
		_, err = s.promotionRepo.GetApplication(txCtx, booking.ID)
		switch {
		case err == nil:
			return domain.NewConflictError(domain.CodeDuplicate, ErrAlreadyApplied, nil,
				"booking %d already has a promotion", booking.ID)
		case !errors.Is(err, promotionRepo.ErrApplicationNotFound):
			return fmt.Errorf("%w: Apply - get application: %v", ErrInternal, err)
		}

		// 3. Оплаченный счёт фиксирует сумму
		invoices, err := s.invoiceRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: Apply - list invoices: %v", ErrInternal, err)
		}
		for _, inv := range invoices {
			if inv.IsPaid() {
				return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceLocked, nil,
					"booking %d is linked to paid invoice %d", booking.ID, inv.ID)
			}
		}

		settings, err := s.settings.Current(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Apply - settings: %v", ErrInternal, err)
		}

		app := &domain.PromotionApplication{
			BookingID:     booking.ID,
			PromotionID:   promo.ID,
			PromotionCode: promo.Code,
			Discount:      promo.ComputeDiscount(booking.GrossTotal(), settings.MoneyScale),
			AppliedAt:     now,
		}
		if err := s.promotionRepo.CreateApplication(txCtx, app); err != nil {
			if errors.Is(err, promotionRepo.ErrApplicationExists) {
				return domain.NewConflictError(domain.CodeDuplicate, ErrAlreadyApplied, nil,
					"booking %d already has a promotion", booking.ID)
			}
			return fmt.Errorf("%w: Apply - create application: %v", ErrInternal, err)
		}
		result.Application = app

		result.Booking, err = s.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Apply: promotion %q applied to booking id=%d, discount=%s", code, bookingID, result.Application.Discount)
	return result, nil
}

// Remove снимает акцию, пока бронирование не покрыто действующим счётом
func (s *Service) Remove(ctx context.Context, bookingID int64) (*Result, error) {
	s.logger.Info("Remove: promotion of booking id=%d", bookingID)

	result := &Result{}
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.loadBooking(txCtx, "Remove", bookingID)
		if err != nil {
			return err
		}

		app, err := s.promotionRepo.GetApplication(txCtx, booking.ID)
		if err != nil {
			if errors.Is(err, promotionRepo.ErrApplicationNotFound) {
				return ErrNotApplied
			}
			return fmt.Errorf("%w: Remove - get application: %v", ErrInternal, err)
		}

		invoices, err := s.invoiceRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: Remove - list invoices: %v", ErrInternal, err)
		}
		for _, inv := range invoices {
			if inv.Status != domain.InvoiceVoid {
				return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceLocked, nil,
					"booking %d is linked to invoice %d", booking.ID, inv.ID)
			}
		}

		if err := s.promotionRepo.DeleteApplication(txCtx, booking.ID); err != nil {
			if errors.Is(err, promotionRepo.ErrApplicationNotFound) {
				return ErrNotApplied
			}
			return fmt.Errorf("%w: Remove - delete application: %v", ErrInternal, err)
		}
		result.Application = app

		result.Booking, err = s.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Remove: promotion %q removed from booking id=%d", result.Application.PromotionCode, bookingID)
	return result, nil
}

func (s *Service) loadBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
	}

	if err := booking.EnsureChargesModifiable(); err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, err
	}
	return booking, nil
}
