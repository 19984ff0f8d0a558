package holds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	holdRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/hold"
	invoiceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

// CreateHoldRequest удержание ёмкости типа комнат до оплаты онлайн-бронирования
type CreateHoldRequest struct {
	RoomTypeID int64
	Quantity   int
	From       time.Time
	To         time.Time
	InvoiceID  *int64
}

// Service удержания ёмкости
type Service struct {
	holdRepo     HoldRepository
	invoiceRepo  InvoiceRepository
	availability CapacityChecker
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса удержаний
func NewService(
	holdRepo HoldRepository,
	invoiceRepo InvoiceRepository,
	availability CapacityChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		holdRepo:     holdRepo,
		invoiceRepo:  invoiceRepo,
		availability: availability,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает удержание, если у типа комнат хватает свободной ёмкости в окне
func (s *Service) Create(ctx context.Context, req *CreateHoldRequest) (*domain.ProvisionalHold, error) {
	s.logger.Info("Create: hold %d x room type %d from %s to %s", req.Quantity, req.RoomTypeID,
		req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))

	if req.RoomTypeID <= 0 {
		return nil, fmt.Errorf("%w: roomTypeId must be positive", ErrInvalidInput)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	var created *domain.ProvisionalHold
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.InvoiceID != nil {
			inv, err := s.invoiceRepo.GetByID(txCtx, *req.InvoiceID)
			if err != nil {
				if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
					return ErrInvoiceNotFound
				}
				return fmt.Errorf("%w: Create - get invoice: %v", ErrInternal, err)
			}
			if inv.Status == domain.InvoiceVoid {
				return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceVoid, nil,
					"invoice %d is void", inv.ID)
			}
		}

		q := availability.Query{RoomTypeID: req.RoomTypeID, From: req.From, To: req.To}
		if err := s.availability.EnsureCapacity(txCtx, "CreateHold", q, req.Quantity); err != nil {
			return err
		}

		var err error
		created, err = s.holdRepo.Create(txCtx, &domain.ProvisionalHold{
			RoomTypeID: req.RoomTypeID,
			Quantity:   req.Quantity,
			From:       req.From,
			To:         req.To,
			Status:     domain.HoldConfirmed,
			InvoiceID:  req.InvoiceID,
		})
		if err != nil {
			return fmt.Errorf("%w: Create - create hold: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: hold id=%d created", created.ID)
	return created, nil
}

// Release освобождает удержание. Повторное освобождение ничего не меняет.
func (s *Service) Release(ctx context.Context, holdID int64) (*domain.ProvisionalHold, error) {
	s.logger.Info("Release: hold id=%d", holdID)

	var hold *domain.ProvisionalHold
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		hold, err = s.holdRepo.GetByID(txCtx, holdID)
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotFound) {
				s.logger.Warn("Release: hold id=%d not found", holdID)
				return ErrHoldNotFound
			}
			return fmt.Errorf("%w: Release - get hold: %v", ErrInternal, err)
		}

		if hold.Status == domain.HoldReleased {
			return nil
		}

		if err := s.holdRepo.UpdateStatus(txCtx, hold.ID, domain.HoldReleased); err != nil {
			return fmt.Errorf("%w: Release - update hold: %v", ErrInternal, err)
		}
		hold.Status = domain.HoldReleased
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Release: hold id=%d released", holdID)
	return hold, nil
}
