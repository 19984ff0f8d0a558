package price

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

// Repository таблица цен (цены + ценовые периоды)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) selectPrices() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"p.id",
		"p.room_type_id",
		"p.rental_mode",
		"p.unit_price",
		"tp.id",
		"tp.name",
		"tp.kind",
		"tp.starts_at",
		"tp.ends_at",
	).
		From("prices p").
		Join("time_periods tp ON tp.id = p.period_id")
}

// GetBasePrice возвращает единственную BASE-цену для (тип комнаты, режим аренды)
func (r *Repository) GetBasePrice(ctx context.Context, roomTypeID int64, mode domain.RentalMode) (*domain.Price, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectPrices().
		Where(squirrel.Eq{
			"p.room_type_id": roomTypeID,
			"p.rental_mode":  mode,
			"tp.kind":        domain.PeriodBase,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBasePrice - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBasePrice - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	prices, err := r.scanPrices(rows)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, ErrPriceNotFound
	}

	return prices[0], nil
}

// ListSpecialPrices возвращает SPECIAL-цены, чьи периоды пересекаются с [from, to] (включительно).
// Выбор конкретной цены на момент времени делает domain.PickPrice.
func (r *Repository) ListSpecialPrices(ctx context.Context, roomTypeID int64, mode domain.RentalMode, from, to time.Time) ([]*domain.Price, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectPrices().
		Where(squirrel.Eq{
			"p.room_type_id": roomTypeID,
			"p.rental_mode":  mode,
			"tp.kind":        domain.PeriodSpecial,
		}).
		Where(squirrel.LtOrEq{"tp.starts_at": to}).
		Where(squirrel.GtOrEq{"tp.ends_at": from}).
		OrderBy("tp.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialPrices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialPrices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPrices(rows)
}

// scanPrices сканирует результаты запроса в слайс цен
func (r *Repository) scanPrices(rows *sql.Rows) ([]*domain.Price, error) {
	prices := make([]*domain.Price, 0)

	for rows.Next() {
		var p domain.Price
		var startsAt, endsAt sql.NullTime

		if err := rows.Scan(
			&p.ID,
			&p.RoomTypeID,
			&p.RentalMode,
			&p.UnitPrice,
			&p.Period.ID,
			&p.Period.Name,
			&p.Period.Kind,
			&startsAt,
			&endsAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanPrices - scan row: %v", ErrScanRow, err)
		}

		if startsAt.Valid {
			p.Period.StartsAt = &startsAt.Time
		}
		if endsAt.Valid {
			p.Period.EndsAt = &endsAt.Time
		}
		prices = append(prices, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPrices - rows error: %v", ErrScanRow, err)
	}

	return prices, nil
}
