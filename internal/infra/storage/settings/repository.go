package settings

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

// settingsRowID в таблице hotel_settings всегда одна строка
const settingsRowID = 1

// Repository репозиторий настроек отеля
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает сохранённые настройки. Location и MoneyScale не хранятся в БД
// и заполняются сервисом из конфигурации.
func (r *Repository) Get(ctx context.Context) (*domain.HotelSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"deposit_rate",
		"standard_check_in",
		"standard_check_out",
		"early_check_in_grace",
		"earliest_early_check_in",
		"early_check_in_service_id",
		"updated_at",
	).
		From("hotel_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.HotelSettings
	var serviceID sql.NullInt64
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.DepositRate,
		&s.StandardCheckIn,
		&s.StandardCheckOut,
		&s.EarlyCheckInGrace,
		&s.EarliestEarlyCheckIn,
		&serviceID,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if serviceID.Valid {
		s.EarlyCheckInServiceID = &serviceID.Int64
	}
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert сохраняет настройки (вставка или обновление единственной строки)
func (r *Repository) Upsert(ctx context.Context, s *domain.HotelSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("hotel_settings").
		Columns(
			"id",
			"deposit_rate",
			"standard_check_in",
			"standard_check_out",
			"early_check_in_grace",
			"earliest_early_check_in",
			"early_check_in_service_id",
		).
		Values(
			settingsRowID,
			s.DepositRate,
			s.StandardCheckIn,
			s.StandardCheckOut,
			s.EarlyCheckInGrace,
			s.EarliestEarlyCheckIn,
			s.EarlyCheckInServiceID,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			deposit_rate = EXCLUDED.deposit_rate,
			standard_check_in = EXCLUDED.standard_check_in,
			standard_check_out = EXCLUDED.standard_check_out,
			early_check_in_grace = EXCLUDED.early_check_in_grace,
			earliest_early_check_in = EXCLUDED.earliest_early_check_in,
			early_check_in_service_id = EXCLUDED.early_check_in_service_id,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}
	s.UpdatedAt = updatedAt.Time

	return nil
}
