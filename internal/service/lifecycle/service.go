package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelService/internal/service/availability"
)

// Service жизненный цикл бронирования:
// PENDING -> CONFIRMED -> CHECKED_IN -> CHECKED_OUT, PENDING|CONFIRMED -> CANCELLED|NO_SHOW.
// Каждый переход выполняется в одной сериализуемой транзакции.
type Service struct {
	bookingRepo      BookingRepository
	usageRepo        UsageRepository
	roomRepo         RoomRepository
	invoiceRepo      InvoiceRepository
	housekeepingRepo HousekeepingRepository
	availability     AvailabilityChecker
	recalc           Recalculator
	recorder         TransitionRecorder
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла. recorder может быть nil.
func NewService(
	bookingRepo BookingRepository,
	usageRepo UsageRepository,
	roomRepo RoomRepository,
	invoiceRepo InvoiceRepository,
	housekeepingRepo HousekeepingRepository,
	availability AvailabilityChecker,
	recalc Recalculator,
	recorder TransitionRecorder,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		usageRepo:        usageRepo,
		roomRepo:         roomRepo,
		invoiceRepo:      invoiceRepo,
		housekeepingRepo: housekeepingRepo,
		availability:     availability,
		recalc:           recalc,
		recorder:         recorder,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Confirm PENDING -> CONFIRMED, только если к бронированию привязан оплаченный депозитный счёт
func (s *Service) Confirm(ctx context.Context, bookingID int64) (*Result, error) {
	s.logger.Info("Confirm: booking id=%d", bookingID)

	return s.transition(ctx, "Confirm", bookingID, domain.StatusConfirmed, func(txCtx context.Context, booking *domain.Booking, result *Result) error {
		invoices, err := s.invoiceRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: Confirm - list invoices: %v", ErrInternal, err)
		}

		for _, inv := range invoices {
			if inv.Kind == domain.InvoiceDeposit && inv.IsPaid() {
				if booking.DepositPaid.IsZero() {
					booking.DepositPaid = booking.DepositRequired
				}
				return nil
			}
		}

		s.logger.Warn("Confirm: booking id=%d has no paid deposit invoice", booking.ID)
		return domain.NewConflictError(domain.CodeDepositNotPaid, ErrDepositNotPaid, nil,
			"booking %d has no paid deposit invoice", booking.ID)
	})
}

// CheckIn PENDING|CONFIRMED -> CHECKED_IN. Фактический заезд - сейчас или указанный момент в прошлом;
// если он раньше планового, интервал [факт, план) проверяется на конфликты. Комнаты становятся OCCUPIED.
func (s *Service) CheckIn(ctx context.Context, req *CheckInRequest) (*Result, error) {
	s.logger.Info("CheckIn: booking id=%d", req.BookingID)

	now := s.timeProvider.Now()
	actual := now
	if req.ActualCheckIn != nil {
		actual = *req.ActualCheckIn
		if actual.After(now) {
			s.logger.Warn("CheckIn: actual check-in %s is in the future", actual.Format(domain.DateTimeFormat))
			return nil, fmt.Errorf("%w: actualCheckIn must not be in the future", ErrInvalidCheckIn)
		}
	}

	return s.transition(ctx, "CheckIn", req.BookingID, domain.StatusCheckedIn, func(txCtx context.Context, booking *domain.Booking, result *Result) error {
		if !actual.Before(booking.PlannedCheckOut) {
			return fmt.Errorf("%w: actualCheckIn must be before planned check-out", ErrInvalidCheckIn)
		}

		roomIDs, err := s.activeRooms(txCtx, booking.ID)
		if err != nil {
			return err
		}
		if len(roomIDs) == 0 {
			s.logger.Warn("CheckIn: booking id=%d has no rooms", booking.ID)
			return ErrNoRooms
		}

		// Ранний заезд занимает комнаты до планового начала
		if actual.Before(booking.PlannedCheckIn) {
			q := availability.Query{From: actual, To: booking.PlannedCheckIn}
			if err := s.availability.EnsureRoomsFree(txCtx, "CheckIn", roomIDs, &booking.ID, q); err != nil {
				return err
			}
		}

		booking.ActualCheckIn = &actual

		if err := s.roomRepo.UpdateRoomsStatus(txCtx, roomIDs, domain.RoomOccupied); err != nil {
			return fmt.Errorf("%w: CheckIn - update rooms: %v", ErrInternal, err)
		}
		return nil
	})
}

// CheckOut CHECKED_IN -> CHECKED_OUT. Если бронирование не покрыто ни одним действующим счётом,
// сначала выставляется итоговый счёт. Комнаты становятся AVAILABLE, на каждую ставится уборка.
func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*Result, error) {
	s.logger.Info("CheckOut: booking id=%d", bookingID)

	now := s.timeProvider.Now()

	return s.transition(ctx, "CheckOut", bookingID, domain.StatusCheckedOut, func(txCtx context.Context, booking *domain.Booking, result *Result) error {
		roomIDs, err := s.activeRooms(txCtx, booking.ID)
		if err != nil {
			return err
		}

		booking.ActualCheckOut = &now

		// 1. Итоговый счёт, если бронирование ещё не выставлено
		invoices, err := s.invoiceRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: CheckOut - list invoices: %v", ErrInternal, err)
		}

		covered := false
		for _, inv := range invoices {
			if inv.Status != domain.InvoiceVoid {
				covered = true
				break
			}
		}

		if !covered {
			inv, err := s.invoiceRepo.Create(txCtx, &domain.Invoice{
				Kind:   domain.InvoiceFinal,
				Status: domain.InvoiceIssued,
			})
			if err != nil {
				return fmt.Errorf("%w: CheckOut - create invoice: %v", ErrInternal, err)
			}
			if err := s.invoiceRepo.CreateLink(txCtx, &domain.InvoiceLink{InvoiceID: inv.ID, BookingID: booking.ID}); err != nil {
				return fmt.Errorf("%w: CheckOut - link invoice: %v", ErrInternal, err)
			}
			result.IssuedInvoiceID = &inv.ID
			s.logger.Info("CheckOut: issued final invoice id=%d for booking id=%d", inv.ID, booking.ID)
		}

		// 2. Комнаты свободны, уборка по каждой
		if err := s.roomRepo.UpdateRoomsStatus(txCtx, roomIDs, domain.RoomAvailable); err != nil {
			return fmt.Errorf("%w: CheckOut - update rooms: %v", ErrInternal, err)
		}

		for _, roomID := range roomIDs {
			id := booking.ID
			task := &domain.HousekeepingTask{
				RoomID:    roomID,
				BookingID: &id,
				Kind:      domain.TaskKindCleaning,
				Status:    domain.TaskOpen,
				DueAt:     now,
			}
			if err := s.housekeepingRepo.Create(txCtx, task); err != nil {
				return fmt.Errorf("%w: CheckOut - create cleaning task: %v", ErrInternal, err)
			}
		}
		result.CleaningTasks = len(roomIDs)

		return nil
	})
}

// Cancel PENDING|CONFIRMED -> CANCELLED
func (s *Service) Cancel(ctx context.Context, req *CancelRequest) (*Result, error) {
	s.logger.Info("Cancel: booking id=%d", req.BookingID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.transition(ctx, "Cancel", req.BookingID, domain.StatusCancelled, func(txCtx context.Context, booking *domain.Booking, result *Result) error {
		booking.CancellationReason = req.Reason
		return nil
	})
}

// NoShow PENDING|CONFIRMED -> NO_SHOW, только после планового заезда
func (s *Service) NoShow(ctx context.Context, bookingID int64) (*Result, error) {
	s.logger.Info("NoShow: booking id=%d", bookingID)

	now := s.timeProvider.Now()

	return s.transition(ctx, "NoShow", bookingID, domain.StatusNoShow, func(txCtx context.Context, booking *domain.Booking, result *Result) error {
		if now.Before(booking.PlannedCheckIn) {
			s.logger.Warn("NoShow: booking id=%d planned check-in %s has not passed", booking.ID,
				booking.PlannedCheckIn.Format(domain.DateTimeFormat))
			return ErrTooEarlyForNoShow
		}
		return nil
	})
}

// transition общий каркас перехода: перечитать бронирование, проверить переход,
// выполнить шаг, сохранить, пересчитать итоги и счета
func (s *Service) transition(
	ctx context.Context,
	op string,
	bookingID int64,
	next domain.BookingStatus,
	step func(txCtx context.Context, booking *domain.Booking, result *Result) error,
) (*Result, error) {
	result := &Result{To: next}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("%s: booking id=%d not found", op, bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
		}

		result.From = booking.Status
		if err := booking.Transition(next); err != nil {
			s.logger.Warn("%s: %v", op, err)
			return err
		}

		if err := step(txCtx, booking, result); err != nil {
			return err
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: %s - update booking: %v", ErrInternal, op, err)
		}

		// Отменённые бронирования не пересчитываются, но их открытые счета - да
		if next.IsInactive() {
			if err := s.recalc.RecalculateInvoicesOf(txCtx, booking.ID); err != nil {
				return err
			}
			result.Booking = booking
			return nil
		}

		updated, err := s.recalc.RecalculateBooking(txCtx, booking.ID)
		if err != nil {
			return err
		}
		result.Booking = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.Transition(string(result.From), string(result.To))
	}
	s.logger.Info("%s: booking id=%d moved %s -> %s", op, bookingID, result.From, result.To)
	return result, nil
}

func (s *Service) activeRooms(ctx context.Context, bookingID int64) ([]int64, error) {
	lines, err := s.usageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: list lines: %v", ErrInternal, err)
	}
	return domain.RoomIDsOf(lines), nil
}

