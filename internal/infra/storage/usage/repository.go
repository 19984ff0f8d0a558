package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

// Repository строки использования (комнато-ночи и комнато-часы)
type Repository struct {
	db  DBExecutor
	loc *time.Location // night_date хранится как DATE и читается как полночь в часовом поясе отеля
}

// NewRepository создает новый экземпляр репозитория строк использования
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// ListByBooking возвращает все строки бронирования (включая отменённые).
// Внутри транзакции строки блокируются.
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.UsageLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"booking_id",
		"room_id",
		"line_no",
		"unit",
		"night_date",
		"start_at",
		"end_at",
		"quantity",
		"unit_price",
		"line_total",
		"status",
		"created_at",
		"updated_at",
	).
		From("usage_lines").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("room_id ASC", "line_no ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]*domain.UsageLine, 0)
	for rows.Next() {
		var l domain.UsageLine
		var nightDate, startAt, endAt, createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&l.BookingID,
			&l.RoomID,
			&l.LineNo,
			&l.Unit,
			&nightDate,
			&startAt,
			&endAt,
			&l.Quantity,
			&l.UnitPrice,
			&l.LineTotal,
			&l.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}

		if nightDate.Valid {
			d := nightDate.Time
			local := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, r.loc)
			l.NightDate = &local
		}
		if startAt.Valid {
			l.StartAt = &startAt.Time
		}
		if endAt.Valid {
			l.EndAt = &endAt.Time
		}
		l.CreatedAt = createdAt.Time
		l.UpdatedAt = updatedAt.Time

		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// Create добавляет строку использования. Номер строки назначает вызывающий (domain.NextLineNo).
func (r *Repository) Create(ctx context.Context, line *domain.UsageLine) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("usage_lines").
		Columns(
			"booking_id",
			"room_id",
			"line_no",
			"unit",
			"night_date",
			"start_at",
			"end_at",
			"quantity",
			"unit_price",
			"line_total",
			"status",
		).
		Values(
			line.BookingID,
			line.RoomID,
			line.LineNo,
			line.Unit,
			r.nightValue(line.NightDate),
			line.StartAt,
			line.EndAt,
			line.Quantity,
			line.UnitPrice,
			line.LineTotal,
			line.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	line.CreatedAt = createdAt.Time
	line.UpdatedAt = updatedAt.Time

	return nil
}

// Update сохраняет изменяемые поля строки (ключ не меняется)
func (r *Repository) Update(ctx context.Context, line *domain.UsageLine) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("usage_lines").
		Set("night_date", r.nightValue(line.NightDate)).
		Set("start_at", line.StartAt).
		Set("end_at", line.EndAt).
		Set("quantity", line.Quantity).
		Set("unit_price", line.UnitPrice).
		Set("line_total", line.LineTotal).
		Set("status", line.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyOf(line.Key())).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Update", query, args)
}

// Rekey переносит строку на другую комнату/номер. Начисления услуг следуют
// за строкой через ON UPDATE CASCADE.
func (r *Repository) Rekey(ctx context.Context, from, to domain.LineKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("usage_lines").
		Set("room_id", to.RoomID).
		Set("line_no", to.LineNo).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyOf(from)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Rekey - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Rekey", query, args)
}

// Delete физически удаляет строку (только строки без начислений и без выставленных счетов)
func (r *Repository) Delete(ctx context.Context, key domain.LineKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("usage_lines").
		Where(keyOf(key)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Delete", query, args)
}

// ListOccupancy возвращает кандидатов на пересечение: комнаты с ACTIVE строками бронирований
// в занимающих статусах, чьё плановое или фактическое окно может пересекать [From, To).
// Точное пересечение по эффективному окну проверяет вызывающий через domain.EffectiveWindow.
func (r *Repository) ListOccupancy(ctx context.Context, filter domain.OccupancyFilter) ([]*domain.RoomOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(bookingRepo.Columns)+3)
	for _, c := range bookingRepo.Columns {
		columns = append(columns, "b."+c)
	}
	columns = append(columns, "rm.id", "rm.name", "rm.room_type_id")

	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		Distinct().
		From("usage_lines ul").
		Join("bookings b ON b.id = ul.booking_id").
		Join("rooms rm ON rm.id = ul.room_id").
		Where(squirrel.Eq{"ul.status": domain.LineActive}).
		Where(squirrel.Eq{"b.status": occupying}).
		Where(squirrel.Or{
			squirrel.Lt{"b.planned_check_in": filter.To},
			squirrel.Lt{"b.actual_check_in": filter.To},
		}).
		Where(squirrel.Or{
			squirrel.Gt{"b.planned_check_out": filter.From},
			squirrel.Gt{"b.actual_check_out": filter.From},
		})

	if len(filter.RoomIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"ul.room_id": filter.RoomIDs})
	}
	if filter.RoomTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"rm.room_type_id": *filter.RoomTypeID})
	}
	if filter.ExcludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *filter.ExcludeBookingID})
	}

	query, args, err := selectBuilder.OrderBy("rm.id ASC", "b.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.RoomOccupancy, 0)
	for rows.Next() {
		var occ domain.RoomOccupancy
		booking, err := bookingRepo.ScanBooking(rows, &occ.RoomID, &occ.RoomName, &occ.RoomTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOccupancy - scan row: %v", ErrScanRow, err)
		}
		occ.Booking = booking
		result = append(result, &occ)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupancy - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) execOne(ctx context.Context, executor dbmetrics.Executor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

// nightValue дата ночи передаётся строкой, чтобы драйвер не сдвигал её часовым поясом
func (r *Repository) nightValue(night *time.Time) interface{} {
	if night == nil {
		return nil
	}
	return night.In(r.loc).Format(domain.DateFormat)
}

func keyOf(k domain.LineKey) squirrel.Eq {
	return squirrel.Eq{
		"booking_id": k.BookingID,
		"room_id":    k.RoomID,
		"line_no":    k.LineNo,
	}
}
