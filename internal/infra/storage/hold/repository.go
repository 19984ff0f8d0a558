package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

// Repository предварительные удержания номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectHolds() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"h.id",
		"h.room_type_id",
		"h.quantity",
		"h.hold_from",
		"h.hold_to",
		"h.status",
		"h.invoice_id",
		"i.status",
		"h.created_at",
		"h.updated_at",
	).
		From("provisional_holds h").
		LeftJoin("invoices i ON i.id = h.invoice_id")
}

// Create создает удержание
func (r *Repository) Create(ctx context.Context, h *domain.ProvisionalHold) (*domain.ProvisionalHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provisional_holds").
		Columns("room_type_id", "quantity", "hold_from", "hold_to", "status", "invoice_id").
		Values(h.RoomTypeID, h.Quantity, h.From, h.To, h.Status, h.InvoiceID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return h, nil
}

// GetByID получает удержание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ProvisionalHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectHolds().Where(squirrel.Eq{"h.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF h")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hold: %v", ErrScanRow, err)
	}

	return h, nil
}

// ListByInvoice возвращает удержания счёта
func (r *Repository) ListByInvoice(ctx context.Context, invoiceID int64) ([]*domain.ProvisionalHold, error) {
	query, args, err := selectHolds().
		Where(squirrel.Eq{"h.invoice_id": invoiceID}).
		OrderBy("h.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByInvoice - build select query: %v", ErrBuildQuery, err)
	}

	return r.list(ctx, "ListByInvoice", query, args)
}

// ListActiveOverlapping возвращает не снятые удержания типа комнат, пересекающие [from, to).
// Учитывать ли удержание в ёмкости, решает domain.ProvisionalHold.ConsumesCapacity.
func (r *Repository) ListActiveOverlapping(ctx context.Context, roomTypeID int64, from, to time.Time) ([]*domain.ProvisionalHold, error) {
	query, args, err := selectHolds().
		Where(squirrel.Eq{"h.room_type_id": roomTypeID}).
		Where(squirrel.Eq{"h.status": []string{string(domain.HoldConfirmed), string(domain.HoldAllocated)}}).
		Where(squirrel.Lt{"h.hold_from": to}).
		Where(squirrel.Gt{"h.hold_to": from}).
		OrderBy("h.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.list(ctx, "ListActiveOverlapping", query, args)
}

// UpdateStatus меняет статус удержания
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.HoldStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("provisional_holds").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op, query string, args []interface{}) ([]*domain.ProvisionalHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	holds := make([]*domain.ProvisionalHold, 0)
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return holds, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.ProvisionalHold, error) {
	var h domain.ProvisionalHold
	var invoiceID sql.NullInt64
	var invoiceStatus sql.NullString
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&h.ID,
		&h.RoomTypeID,
		&h.Quantity,
		&h.From,
		&h.To,
		&h.Status,
		&invoiceID,
		&invoiceStatus,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if invoiceID.Valid {
		h.InvoiceID = &invoiceID.Int64
	}
	if invoiceStatus.Valid {
		st := domain.InvoiceStatus(invoiceStatus.String)
		h.InvoiceStatus = &st
	}
	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return &h, nil
}
