package charge

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

// Repository каталог услуг и начисления по строкам использования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория начислений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу каталога по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"unit",
		"unit_price",
		"active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.Unit,
		&s.UnitPrice,
		&s.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListByBooking возвращает все начисления бронирования (включая отменённые)
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.ServiceCharge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"booking_id",
		"room_id",
		"line_no",
		"service_id",
		"charge_no",
		"service_name",
		"quantity",
		"unit_price",
		"total",
		"status",
		"origin",
		"created_at",
		"updated_at",
	).
		From("service_charges").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("room_id ASC", "line_no ASC", "service_id ASC", "charge_no ASC")

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

	charges := make([]*domain.ServiceCharge, 0)
	for rows.Next() {
		var c domain.ServiceCharge
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&c.BookingID,
			&c.RoomID,
			&c.LineNo,
			&c.ServiceID,
			&c.ChargeNo,
			&c.ServiceName,
			&c.Quantity,
			&c.UnitPrice,
			&c.Total,
			&c.Status,
			&c.Origin,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		charges = append(charges, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return charges, nil
}

// Create добавляет начисление. Номер начисления назначает вызывающий (domain.NextChargeNo).
func (r *Repository) Create(ctx context.Context, c *domain.ServiceCharge) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_charges").
		Columns(
			"booking_id",
			"room_id",
			"line_no",
			"service_id",
			"charge_no",
			"service_name",
			"quantity",
			"unit_price",
			"total",
			"status",
			"origin",
		).
		Values(
			c.BookingID,
			c.RoomID,
			c.LineNo,
			c.ServiceID,
			c.ChargeNo,
			c.ServiceName,
			c.Quantity,
			c.UnitPrice,
			c.Total,
			c.Status,
			c.Origin,
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

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return nil
}

// Update сохраняет количество, цену, сумму и статус начисления
func (r *Repository) Update(ctx context.Context, c *domain.ServiceCharge) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_charges").
		Set("quantity", c.Quantity).
		Set("unit_price", c.UnitPrice).
		Set("total", c.Total).
		Set("status", c.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"booking_id": c.BookingID,
			"room_id":    c.RoomID,
			"line_no":    c.LineNo,
			"service_id": c.ServiceID,
			"charge_no":  c.ChargeNo,
		}).
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
		return ErrChargeNotFound
	}

	return nil
}
