package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	promotionRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Service чтение бронирований
type Service struct {
	bookingRepo   BookingRepository
	usageRepo     UsageRepository
	chargeRepo    ChargeRepository
	promotionRepo PromotionRepository
	invoiceRepo   InvoiceRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	usageRepo UsageRepository,
	chargeRepo ChargeRepository,
	promotionRepo PromotionRepository,
	invoiceRepo InvoiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		usageRepo:     usageRepo,
		chargeRepo:    chargeRepo,
		promotionRepo: promotionRepo,
		invoiceRepo:   invoiceRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает бронирование со строками, начислениями, акцией и счетами.
// Всё читается в одной read-only транзакции, чтобы итоги совпадали со строками.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingDetailsResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	var resp *models.BookingDetailsResponse
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("GetByID: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		lines, err := s.usageRepo.ListByBooking(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: GetByID - list lines: %v", ErrInternal, err)
		}

		charges, err := s.chargeRepo.ListByBooking(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: GetByID - list charges: %v", ErrInternal, err)
		}

		app, err := s.promotionRepo.GetApplication(txCtx, id)
		if err != nil && !errors.Is(err, promotionRepo.ErrApplicationNotFound) {
			return fmt.Errorf("%w: GetByID - get promotion: %v", ErrInternal, err)
		}

		invoices, err := s.invoiceRepo.ListByBooking(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: GetByID - list invoices: %v", ErrInternal, err)
		}

		resp = &models.BookingDetailsResponse{
			BookingResponse: *models.FromDomainBooking(booking),
			Lines:           models.FromDomainLines(lines),
			Charges:         models.FromDomainCharges(charges),
			Promotion:       models.FromDomainApplication(app),
			Invoices:        make([]models.InvoiceSummary, 0, len(invoices)),
		}
		for _, inv := range invoices {
			resp.Invoices = append(resp.Invoices, models.InvoiceSummary{
				ID:          inv.ID,
				Kind:        string(inv.Kind),
				Status:      string(inv.Status),
				FinalAmount: inv.FinalAmount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d (%d lines, %d charges)",
		id, len(resp.Lines), len(resp.Charges))
	return resp, nil
}

// List получает бронирования по фильтру: статус, период, включение неактивных
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.GuestID != nil {
		logMsg += fmt.Sprintf(", guest=%d", *req.GuestID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	switch {
	case filter.Limit == 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetGuestBookings история бронирований гостя, опционально по статусу
func (s *Service) GetGuestBookings(ctx context.Context, guestID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetGuestBookings: fetching bookings for guest=%d", guestID)

	if guestID <= 0 {
		return nil, fmt.Errorf("%w: guestId must be positive", ErrInvalidInput)
	}

	return s.List(ctx, &models.ListBookingsRequest{
		GuestID:         &guestID,
		Status:          status,
		IncludeInactive: true,
		Limit:           maxListLimit,
	})
}
