package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	invoiceRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-HotelService/internal/service/invoices/models"
)

// Service счета: создание, выставление, оплата, аннулирование и связи с бронированиями.
// Оплаченный или аннулированный счёт заморожен: его итоги и связи больше не меняются.
type Service struct {
	invoiceRepo  InvoiceRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	recalc       Recalculator
	recorder     TransitionRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса счетов. recorder может быть nil.
func NewService(
	invoiceRepo InvoiceRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	recalc Recalculator,
	recorder TransitionRecorder,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		invoiceRepo:  invoiceRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		recalc:       recalc,
		recorder:     recorder,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create создает счёт, привязывает бронирования и сразу считает итоги
func (s *Service) Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error) {
	s.logger.Info("Create: creating %s invoice for bookings=%v", req.Kind, req.BookingIDs)

	kind, ok := domain.ParseInvoiceKind(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown invoice kind %q", ErrInvalidInput, req.Kind)
	}
	if req.Fee.IsNegative() {
		return nil, fmt.Errorf("%w: fee must not be negative", ErrInvalidInput)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	status := domain.InvoiceIssued
	if req.Draft {
		status = domain.InvoiceDraft
	}

	var (
		result     *domain.Invoice
		bookingIDs []int64
	)
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := s.invoiceRepo.Create(txCtx, &domain.Invoice{
			Kind:   kind,
			Status: status,
			Fee:    req.Fee,
			Note:   req.Note,
		})
		if err != nil {
			return fmt.Errorf("%w: Create - create invoice: %v", ErrInternal, err)
		}

		for _, bookingID := range uniqueIDs(req.BookingIDs) {
			if err := s.link(txCtx, "Create", created.ID, bookingID); err != nil {
				return err
			}
			bookingIDs = append(bookingIDs, bookingID)
		}

		result, err = s.recalc.RecalculateInvoice(txCtx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: invoice id=%d created (%s, %s, final=%s)", result.ID, result.Kind, result.Status, result.FinalAmount)
	return models.FromDomainInvoice(result, bookingIDs), nil
}

// Get получает счёт с привязанными бронированиями
func (s *Service) Get(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("Get: fetching invoice id=%d", invoiceID)

	var resp *models.InvoiceResponse
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		inv, err := s.getInvoice(txCtx, "Get", invoiceID)
		if err != nil {
			return err
		}

		bookingIDs, err := s.invoiceRepo.ListBookingIDs(txCtx, invoiceID)
		if err != nil {
			return fmt.Errorf("%w: Get - list links: %v", ErrInternal, err)
		}

		resp = models.FromDomainInvoice(inv, bookingIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Issue выставляет черновик счёта
func (s *Service) Issue(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("Issue: issuing invoice id=%d", invoiceID)

	return s.mutate(ctx, "Issue", invoiceID, func(txCtx context.Context, inv *domain.Invoice) error {
		if inv.Status != domain.InvoiceDraft {
			return domain.NewConflictError(domain.CodeIllegalTransition, ErrNotIssued, nil,
				"invoice %d is %s, only a draft can be issued", inv.ID, inv.Status)
		}
		inv.Status = domain.InvoiceIssued
		if err := s.invoiceRepo.Update(txCtx, inv); err != nil {
			return fmt.Errorf("%w: Issue - update invoice: %v", ErrInternal, err)
		}
		_, err := s.recalc.RecalculateInvoice(txCtx, inv.ID)
		return err
	})
}

// Void аннулирует неоплаченный счёт и освобождает его удержания
func (s *Service) Void(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("Void: voiding invoice id=%d", invoiceID)

	return s.mutate(ctx, "Void", invoiceID, func(txCtx context.Context, inv *domain.Invoice) error {
		if inv.IsFrozen() {
			s.logger.Warn("Void: invoice id=%d is %s", inv.ID, inv.Status)
			return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceFrozen, nil,
				"invoice %d is %s", inv.ID, inv.Status)
		}

		inv.Status = domain.InvoiceVoid
		if err := s.invoiceRepo.Update(txCtx, inv); err != nil {
			return fmt.Errorf("%w: Void - update invoice: %v", ErrInternal, err)
		}

		holds, err := s.holdRepo.ListByInvoice(txCtx, inv.ID)
		if err != nil {
			return fmt.Errorf("%w: Void - list holds: %v", ErrInternal, err)
		}
		for _, h := range holds {
			if h.Status == domain.HoldReleased {
				continue
			}
			if err := s.holdRepo.UpdateStatus(txCtx, h.ID, domain.HoldReleased); err != nil {
				return fmt.Errorf("%w: Void - release hold: %v", ErrInternal, err)
			}
		}
		return nil
	})
}

// Pay фиксирует оплату. ISSUED -> PAID выполняется ровно один раз: повторное уведомление
// для оплаченного счёта ничего не меняет. Оплата депозитного счёта переносит депозит в
// бронирования, подтверждает ожидающие бронирования и распределяет удержания.
func (s *Service) Pay(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Pay: payment for invoice id=%d ref=%q", req.InvoiceID, req.PaymentRef)

	ref := req.PaymentRef
	if ref == "" {
		ref = uuid.NewString()
	}
	paidAt := s.timeProvider.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	resp := &models.PaymentResponse{ConfirmedBookings: []int64{}}
	var transitions []domain.BookingStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		inv, err := s.getInvoice(txCtx, "Pay", req.InvoiceID)
		if err != nil {
			return err
		}

		bookingIDs, err := s.invoiceRepo.ListBookingIDs(txCtx, inv.ID)
		if err != nil {
			return fmt.Errorf("%w: Pay - list links: %v", ErrInternal, err)
		}

		switch inv.Status {
		case domain.InvoicePaid:
			s.logger.Info("Pay: invoice id=%d already paid, ignoring duplicate callback", inv.ID)
			resp.AlreadyPaid = true
			resp.Invoice = models.FromDomainInvoice(inv, bookingIDs)
			return nil
		case domain.InvoiceVoid:
			return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceFrozen, nil,
				"invoice %d is void", inv.ID)
		case domain.InvoiceDraft:
			return domain.NewConflictError(domain.CodeIllegalTransition, ErrNotIssued, nil,
				"invoice %d is a draft and cannot be paid", inv.ID)
		}

		// 1. Защищённый переход ISSUED -> PAID
		changed, err := s.invoiceRepo.MarkPaid(txCtx, inv.ID, paidAt, ref)
		if err != nil {
			if errors.Is(err, invoiceRepo.ErrPaymentRefExists) {
				return domain.NewConflictError(domain.CodeDuplicate, ErrDuplicatePayment, nil,
					"payment reference %q is already used", ref)
			}
			return fmt.Errorf("%w: Pay - mark paid: %v", ErrInternal, err)
		}
		if !changed {
			s.logger.Info("Pay: invoice id=%d was paid concurrently", inv.ID)
			resp.AlreadyPaid = true
		} else {
			inv.Status = domain.InvoicePaid
			inv.PaidAt = &paidAt
			inv.PaymentRef = &ref
		}
		resp.Invoice = models.FromDomainInvoice(inv, bookingIDs)

		if !changed || inv.Kind != domain.InvoiceDeposit {
			return nil
		}

		// 2. Депозит: перенос в бронирования и подтверждение ожидающих
		for _, bookingID := range bookingIDs {
			booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
			if err != nil {
				return fmt.Errorf("%w: Pay - get booking: %v", ErrInternal, err)
			}
			if booking.Status.IsInactive() {
				continue
			}

			booking.DepositPaid = booking.DepositRequired
			if booking.Status == domain.StatusPending {
				if err := booking.Transition(domain.StatusConfirmed); err != nil {
					return err
				}
				resp.ConfirmedBookings = append(resp.ConfirmedBookings, booking.ID)
				transitions = append(transitions, domain.StatusPending)
			}

			if err := s.bookingRepo.Update(txCtx, booking); err != nil {
				return fmt.Errorf("%w: Pay - update booking: %v", ErrInternal, err)
			}
			if _, err := s.recalc.RecalculateBooking(txCtx, booking.ID); err != nil {
				return err
			}
		}

		// 3. Удержания счёта переходят в ALLOCATED
		holds, err := s.holdRepo.ListByInvoice(txCtx, inv.ID)
		if err != nil {
			return fmt.Errorf("%w: Pay - list holds: %v", ErrInternal, err)
		}
		for _, h := range holds {
			if h.Status != domain.HoldConfirmed {
				continue
			}
			if err := s.holdRepo.UpdateStatus(txCtx, h.ID, domain.HoldAllocated); err != nil {
				return fmt.Errorf("%w: Pay - allocate hold: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		for _, from := range transitions {
			s.recorder.Transition(string(from), string(domain.StatusConfirmed))
		}
	}

	s.logger.Info("Pay: invoice id=%d paid (alreadyPaid=%t, confirmed=%v)",
		req.InvoiceID, resp.AlreadyPaid, resp.ConfirmedBookings)
	return resp, nil
}

// Link привязывает бронирование к открытому счёту и пересчитывает счёт
func (s *Service) Link(ctx context.Context, invoiceID, bookingID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("Link: linking booking id=%d to invoice id=%d", bookingID, invoiceID)

	return s.mutate(ctx, "Link", invoiceID, func(txCtx context.Context, inv *domain.Invoice) error {
		if inv.IsFrozen() {
			return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceFrozen, nil,
				"invoice %d is %s, links are frozen", inv.ID, inv.Status)
		}
		if err := s.link(txCtx, "Link", inv.ID, bookingID); err != nil {
			return err
		}
		_, err := s.recalc.RecalculateInvoice(txCtx, inv.ID)
		return err
	})
}

// Unlink отвязывает бронирование от открытого счёта и пересчитывает счёт
func (s *Service) Unlink(ctx context.Context, invoiceID, bookingID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("Unlink: unlinking booking id=%d from invoice id=%d", bookingID, invoiceID)

	return s.mutate(ctx, "Unlink", invoiceID, func(txCtx context.Context, inv *domain.Invoice) error {
		if inv.IsFrozen() {
			return domain.NewConflictError(domain.CodeInvoiceFrozen, ErrInvoiceFrozen, nil,
				"invoice %d is %s, links are frozen", inv.ID, inv.Status)
		}
		if err := s.invoiceRepo.DeleteLink(txCtx, inv.ID, bookingID); err != nil {
			if errors.Is(err, invoiceRepo.ErrLinkNotFound) {
				return ErrLinkNotFound
			}
			return fmt.Errorf("%w: Unlink - delete link: %v", ErrInternal, err)
		}
		_, err := s.recalc.RecalculateInvoice(txCtx, inv.ID)
		return err
	})
}

// Recalculate пересчитывает итоги счёта; замороженный счёт возвращается как есть
func (s *Service) Recalculate(ctx context.Context, invoiceID int64) (*models.InvoiceResponse, error) {
	s.logger.Info("Recalculate: invoice id=%d", invoiceID)

	return s.mutate(ctx, "Recalculate", invoiceID, func(txCtx context.Context, inv *domain.Invoice) error {
		_, err := s.recalc.RecalculateInvoice(txCtx, inv.ID)
		return err
	})
}

// mutate читает счёт в транзакции, выполняет шаг и возвращает перечитанный результат
func (s *Service) mutate(
	ctx context.Context,
	op string,
	invoiceID int64,
	step func(txCtx context.Context, inv *domain.Invoice) error,
) (*models.InvoiceResponse, error) {
	var resp *models.InvoiceResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		inv, err := s.getInvoice(txCtx, op, invoiceID)
		if err != nil {
			return err
		}

		if err := step(txCtx, inv); err != nil {
			return err
		}

		updated, err := s.getInvoice(txCtx, op, invoiceID)
		if err != nil {
			return err
		}
		bookingIDs, err := s.invoiceRepo.ListBookingIDs(txCtx, invoiceID)
		if err != nil {
			return fmt.Errorf("%w: %s - list links: %v", ErrInternal, op, err)
		}

		resp = models.FromDomainInvoice(updated, bookingIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: invoice id=%d is %s (final=%s)", op, resp.ID, resp.Status, resp.FinalAmount)
	return resp, nil
}

func (s *Service) getInvoice(ctx context.Context, op string, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("%s: invoice id=%d not found", op, invoiceID)
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("%w: %s - get invoice: %v", ErrInternal, op, err)
	}
	return inv, nil
}

// link проверяет бронирование и создаёт связь
func (s *Service) link(ctx context.Context, op string, invoiceID, bookingID int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
	}
	if booking.Status.IsInactive() {
		return domain.NewConflictError(domain.CodeIllegalTransition, ErrBookingInactive, nil,
			"booking %d is %s", booking.ID, booking.Status)
	}

	if err := s.invoiceRepo.CreateLink(ctx, &domain.InvoiceLink{InvoiceID: invoiceID, BookingID: bookingID}); err != nil {
		if errors.Is(err, invoiceRepo.ErrLinkExists) {
			return domain.NewConflictError(domain.CodeDuplicate, ErrAlreadyLinked, nil,
				"booking %d is already linked to invoice %d", bookingID, invoiceID)
		}
		return fmt.Errorf("%w: %s - create link: %v", ErrInternal, op, err)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

