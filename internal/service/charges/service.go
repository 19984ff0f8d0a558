package charges

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	chargeRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/charge"
)

// Service начисления за услуги на строках использования
type Service struct {
	bookingRepo BookingRepository
	usageRepo   UsageRepository
	chargeRepo  ChargeRepository
	recalc      Recalculator
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса начислений
func NewService(
	bookingRepo BookingRepository,
	usageRepo UsageRepository,
	chargeRepo ChargeRepository,
	recalc Recalculator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		usageRepo:   usageRepo,
		chargeRepo:  chargeRepo,
		recalc:      recalc,
		txManager:   txManager,
		logger:      logger,
	}
}

// Add начисляет услугу по цене каталога на активную строку комнаты
func (s *Service) Add(ctx context.Context, req *AddChargeRequest) (*Result, error) {
	s.logger.Info("Add: service=%d x%d for booking id=%d room=%d", req.ServiceID, req.Quantity, req.BookingID, req.RoomID)

	if err := validateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	origin := req.Origin
	if origin == "" {
		origin = domain.OriginStaff
	}

	result := &Result{}
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.loadBooking(txCtx, "Add", req.BookingID)
		if err != nil {
			return err
		}

		// 1. Строка, к которой привязывается начисление
		lines, err := s.usageRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: Add - list lines: %v", ErrInternal, err)
		}
		line := findLine(lines, req.RoomID, req.LineNo)
		if line == nil {
			s.logger.Warn("Add: booking id=%d has no active line for room=%d", booking.ID, req.RoomID)
			return ErrLineNotFound
		}

		// 2. Услуга каталога
		service, err := s.chargeRepo.GetService(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, chargeRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Add - get service: %v", ErrInternal, err)
		}
		if !service.Active {
			s.logger.Warn("Add: service id=%d is inactive", service.ID)
			return ErrServiceNotFound
		}

		existing, err := s.chargeRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: Add - list charges: %v", ErrInternal, err)
		}

		// 3. Начисление
		charge := &domain.ServiceCharge{
			BookingID:   booking.ID,
			RoomID:      line.RoomID,
			LineNo:      line.LineNo,
			ServiceID:   service.ID,
			ChargeNo:    domain.NextChargeNo(existing, line.Key(), service.ID),
			ServiceName: service.Name,
			UnitPrice:   service.UnitPrice,
			Status:      domain.ChargeActive,
			Origin:      origin,
		}
		charge.SetQuantity(req.Quantity)

		if err := s.chargeRepo.Create(txCtx, charge); err != nil {
			return fmt.Errorf("%w: Add - create charge: %v", ErrInternal, err)
		}
		result.Charge = charge

		result.Booking, err = s.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Add: charge %d/%d/%d/%d created, total=%s", result.Charge.RoomID, result.Charge.LineNo,
		result.Charge.ServiceID, result.Charge.ChargeNo, result.Charge.Total)
	return result, nil
}

// UpdateQuantity меняет количество активного начисления
func (s *Service) UpdateQuantity(ctx context.Context, key domain.ChargeKey, quantity int) (*Result, error) {
	s.logger.Info("UpdateQuantity: charge %+v -> %d", key, quantity)

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	return s.mutate(ctx, "UpdateQuantity", key, func(c *domain.ServiceCharge) {
		c.SetQuantity(quantity)
	})
}

// Remove отменяет начисление. Строка начисления остаётся в истории со статусом cancelled.
func (s *Service) Remove(ctx context.Context, key domain.ChargeKey) (*Result, error) {
	s.logger.Info("Remove: charge %+v", key)

	return s.mutate(ctx, "Remove", key, func(c *domain.ServiceCharge) {
		c.Status = domain.ChargeCancelled
	})
}

func (s *Service) mutate(ctx context.Context, op string, key domain.ChargeKey, change func(c *domain.ServiceCharge)) (*Result, error) {
	result := &Result{}
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.loadBooking(txCtx, op, key.BookingID)
		if err != nil {
			return err
		}

		charges, err := s.chargeRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: %s - list charges: %v", ErrInternal, op, err)
		}

		var charge *domain.ServiceCharge
		for _, c := range charges {
			if c.Key() == key {
				charge = c
				break
			}
		}
		if charge == nil {
			s.logger.Warn("%s: charge %+v not found", op, key)
			return ErrChargeNotFound
		}
		if !charge.IsActive() {
			return domain.NewConflictError(domain.CodeIllegalTransition, ErrChargeCancelled, nil,
				"charge %d/%d/%d/%d is cancelled", key.RoomID, key.LineNo, key.ServiceID, key.ChargeNo)
		}

		change(charge)
		if err := s.chargeRepo.Update(txCtx, charge); err != nil {
			if errors.Is(err, chargeRepo.ErrChargeNotFound) {
				return ErrChargeNotFound
			}
			return fmt.Errorf("%w: %s - update charge: %v", ErrInternal, op, err)
		}
		result.Charge = charge

		result.Booking, err = s.recalc.RecalculateBooking(txCtx, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d expected total=%s", op, result.Booking.ID, result.Booking.ExpectedTotal)
	return result, nil
}

// loadBooking читает бронирование и проверяет, что начисления можно менять
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

func validateQuantity(q int) error {
	if q < 1 || q > domain.MaxServiceQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxServiceQuantity)
	}
	return nil
}

// findLine активная строка комнаты: указанная или с наибольшим номером
func findLine(lines []*domain.UsageLine, roomID int64, lineNo *int) *domain.UsageLine {
	var latest *domain.UsageLine
	for _, l := range lines {
		if !l.IsActive() || l.RoomID != roomID {
			continue
		}
		if lineNo != nil {
			if l.LineNo == *lineNo {
				return l
			}
			continue
		}
		if latest == nil || l.LineNo > latest.LineNo {
			latest = l
		}
	}
	return latest
}
