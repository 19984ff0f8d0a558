package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository каталог акций и применённые акции
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория акций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает акцию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает акцию по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": code})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"kind",
		"value",
		"max_discount",
		"valid_from",
		"valid_to",
		"active",
	).
		From("promotions").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Promotion
	var maxDiscount decimal.NullDecimal
	var validFrom, validTo sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Code,
		&p.Name,
		&p.Kind,
		&p.Value,
		&maxDiscount,
		&validFrom,
		&validTo,
		&p.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promotion: %v", ErrScanRow, op, err)
	}

	if maxDiscount.Valid {
		p.MaxDiscount = &maxDiscount.Decimal
	}
	if validFrom.Valid {
		p.ValidFrom = &validFrom.Time
	}
	if validTo.Valid {
		p.ValidTo = &validTo.Time
	}

	return &p, nil
}

// GetApplication возвращает акцию, применённую к бронированию
func (r *Repository) GetApplication(ctx context.Context, bookingID int64) (*domain.PromotionApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"booking_id",
		"promotion_id",
		"promotion_code",
		"discount",
		"applied_at",
	).
		From("promotion_applications").
		Where(squirrel.Eq{"booking_id": bookingID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetApplication - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.PromotionApplication
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.BookingID,
		&a.PromotionID,
		&a.PromotionCode,
		&a.Discount,
		&a.AppliedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetApplication - scan application: %v", ErrScanRow, err)
	}

	return &a, nil
}

// CreateApplication сохраняет применение акции. Уникальность по booking_id обеспечивает БД.
func (r *Repository) CreateApplication(ctx context.Context, a *domain.PromotionApplication) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promotion_applications").
		Columns("booking_id", "promotion_id", "promotion_code", "discount", "applied_at").
		Values(a.BookingID, a.PromotionID, a.PromotionCode, a.Discount, a.AppliedAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateApplication - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrApplicationExists
		}
		return fmt.Errorf("%w: CreateApplication - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteApplication снимает акцию с бронирования
func (r *Repository) DeleteApplication(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("promotion_applications").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteApplication - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteApplication - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteApplication - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}
