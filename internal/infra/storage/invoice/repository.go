package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var invoiceColumns = []string{
	"i.id",
	"i.kind",
	"i.status",
	"i.total",
	"i.discount",
	"i.fee",
	"i.deposit_deducted",
	"i.final_amount",
	"i.paid_at",
	"i.payment_ref",
	"i.note",
	"i.created_at",
	"i.updated_at",
}

// Repository счета и их связи с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает счёт
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"kind",
			"status",
			"total",
			"discount",
			"fee",
			"deposit_deducted",
			"final_amount",
			"note",
		).
		Values(
			inv.Kind,
			inv.Status,
			inv.Total,
			inv.Discount,
			inv.Fee,
			inv.DepositDeducted,
			inv.FinalAmount,
			inv.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return inv, nil
}

// GetByID получает счёт по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(invoiceColumns...).
		From("invoices i").
		Where(squirrel.Eq{"i.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan invoice: %v", ErrScanRow, err)
	}

	return inv, nil
}

// ListByBooking возвращает все счета, к которым привязано бронирование
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns...).
		From("invoices i").
		Join("invoice_links il ON il.invoice_id = i.id").
		Where(squirrel.Eq{"il.booking_id": bookingID}).
		OrderBy("i.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return invoices, nil
}

// Update сохраняет итоги, статус и заметку счёта
func (r *Repository) Update(ctx context.Context, inv *domain.Invoice) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("status", inv.Status).
		Set("total", inv.Total).
		Set("discount", inv.Discount).
		Set("fee", inv.Fee).
		Set("deposit_deducted", inv.DepositDeducted).
		Set("final_amount", inv.FinalAmount).
		Set("note", inv.Note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": inv.ID}).
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
		return ErrInvoiceNotFound
	}

	return nil
}

// MarkPaid переводит счёт ISSUED -> PAID. Возвращает false, если счёт уже не в статусе ISSUED
// (повторный callback оплаты): условие по статусу гарантирует однократное применение.
func (r *Repository) MarkPaid(ctx context.Context, id int64, paidAt time.Time, paymentRef string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("status", domain.InvoicePaid).
		Set("paid_at", paidAt).
		Set("payment_ref", paymentRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.InvoiceIssued}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return false, ErrPaymentRefExists
		}
		return false, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// CreateLink привязывает бронирование к счёту
func (r *Repository) CreateLink(ctx context.Context, link *domain.InvoiceLink) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoice_links").
		Columns("invoice_id", "booking_id").
		Values(link.InvoiceID, link.BookingID).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateLink - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrLinkExists
		}
		return fmt.Errorf("%w: CreateLink - execute insert: %v", ErrExecQuery, err)
	}
	link.CreatedAt = createdAt.Time

	return nil
}

// DeleteLink отвязывает бронирование от счёта
func (r *Repository) DeleteLink(ctx context.Context, invoiceID, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("invoice_links").
		Where(squirrel.Eq{"invoice_id": invoiceID, "booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteLink - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteLink - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteLink - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// ListBookingIDs возвращает ID бронирований, привязанных к счёту
func (r *Repository) ListBookingIDs(ctx context.Context, invoiceID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_id").
		From("invoice_links").
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("booking_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListBookingIDs - scan booking_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookingIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var paidAt, createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&inv.ID,
		&inv.Kind,
		&inv.Status,
		&inv.Total,
		&inv.Discount,
		&inv.Fee,
		&inv.DepositDeducted,
		&inv.FinalAmount,
		&paidAt,
		&inv.PaymentRef,
		&inv.Note,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if paidAt.Valid {
		inv.PaidAt = &paidAt.Time
	}
	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}
