package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

// Columns колонки bookings в порядке ScanBooking (используются и в join-запросах других репозиториев)
var Columns = []string{
	"id",
	"guest_id",
	"guest_name",
	"rental_mode",
	"status",
	"planned_check_in",
	"planned_check_out",
	"actual_check_in",
	"actual_check_out",
	"room_total",
	"service_total",
	"discount_total",
	"expected_total",
	"deposit_rate",
	"deposit_required",
	"deposit_paid",
	"note",
	"cancellation_reason",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"guest_id",
			"guest_name",
			"rental_mode",
			"status",
			"planned_check_in",
			"planned_check_out",
			"deposit_rate",
			"note",
			"created_by",
		).
		Values(
			booking.GuestID,
			booking.GuestName,
			booking.RentalMode,
			booking.Status,
			booking.PlannedCheckIn,
			booking.PlannedCheckOut,
			booking.DepositRate,
			booking.Note,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): все мутации перечитывают бронирование через этот метод.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(Columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := ScanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIDs получает бронирования по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(Columns...).
		From("bookings").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией
// Поддерживает фильтрацию по:
// - гостю (GuestID)
// - статусу (Status) или исключению неактивных (IncludeInactive)
// - окну проживания (From, To): плановый выезд после From и плановый заезд до To
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(Columns...).
		From("bookings")

	if filter.GuestID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"guest_id": *filter.GuestID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"planned_check_out": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"planned_check_in": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	selectBuilder = selectBuilder.OrderBy("planned_check_in DESC", "id DESC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования: статус, окно проживания, итоги, заметки
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("guest_name", booking.GuestName).
		Set("status", booking.Status).
		Set("planned_check_in", booking.PlannedCheckIn).
		Set("planned_check_out", booking.PlannedCheckOut).
		Set("actual_check_in", booking.ActualCheckIn).
		Set("actual_check_out", booking.ActualCheckOut).
		Set("room_total", booking.RoomTotal).
		Set("service_total", booking.ServiceTotal).
		Set("discount_total", booking.DiscountTotal).
		Set("expected_total", booking.ExpectedTotal).
		Set("deposit_rate", booking.DepositRate).
		Set("deposit_required", booking.DepositRequired).
		Set("deposit_paid", booking.DepositPaid).
		Set("note", booking.Note).
		Set("cancellation_reason", booking.CancellationReason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// RowScanner общий интерфейс *sql.Row и *sql.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanBooking сканирует колонки Columns (и дополнительные dest после них)
func ScanBooking(row RowScanner, extra ...interface{}) (*domain.Booking, error) {
	var b domain.Booking
	var actualIn, actualOut, createdAt, updatedAt sql.NullTime
	var createdBy sql.NullInt64

	dest := []interface{}{
		&b.ID,
		&b.GuestID,
		&b.GuestName,
		&b.RentalMode,
		&b.Status,
		&b.PlannedCheckIn,
		&b.PlannedCheckOut,
		&actualIn,
		&actualOut,
		&b.RoomTotal,
		&b.ServiceTotal,
		&b.DiscountTotal,
		&b.ExpectedTotal,
		&b.DepositRate,
		&b.DepositRequired,
		&b.DepositPaid,
		&b.Note,
		&b.CancellationReason,
		&createdBy,
		&createdAt,
		&updatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if actualIn.Valid {
		b.ActualCheckIn = &actualIn.Time
	}
	if actualOut.Valid {
		b.ActualCheckOut = &actualOut.Time
	}
	if createdBy.Valid {
		b.CreatedBy = &createdBy.Int64
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := ScanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
