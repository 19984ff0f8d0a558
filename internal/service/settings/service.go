package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	chargeRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/charge"
	settingsRepo "github.com/m04kA/SMC-HotelService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-HotelService/internal/service/settings/models"
)

// Service политика отеля: строка hotel_settings поверх значений из config.toml
type Service struct {
	repo     SettingsRepository
	catalog  ServiceCatalog
	defaults *domain.HotelSettings
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек.
// defaults используется, пока настройки не сохранялись; из него же всегда берутся Location и MoneyScale.
func NewService(
	repo SettingsRepository,
	catalog ServiceCatalog,
	defaults *domain.HotelSettings,
	logger Logger,
) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		defaults: defaults,
		logger:   logger,
	}
}

// Current возвращает действующую политику отеля
func (s *Service) Current(ctx context.Context) (*domain.HotelSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			current := *s.defaults
			return &current, nil
		}
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}

	stored.Location = s.defaults.Location
	stored.MoneyScale = s.defaults.MoneyScale
	return stored, nil
}

// Update частично обновляет политику и сохраняет её целиком
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*domain.HotelSettings, error) {
	s.logger.Info("Update: updating hotel settings")

	// 1. Текущие настройки
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения к копии
	updated := *current
	req.ApplyTo(&updated)

	// 3. Валидация
	if err := validateSettings(&updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 4. Услуга раннего заезда должна существовать в каталоге
	if updated.HasEarlyCheckInService() {
		service, err := s.catalog.GetService(ctx, *updated.EarlyCheckInServiceID)
		if err != nil {
			if errors.Is(err, chargeRepo.ErrServiceNotFound) {
				s.logger.Warn("Update: early check-in service id=%d not found", *updated.EarlyCheckInServiceID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Update: failed to get service id=%d: %v", *updated.EarlyCheckInServiceID, err)
			return nil, fmt.Errorf("%w: Update - get service: %v", ErrInternal, err)
		}
		if !service.Active {
			s.logger.Warn("Update: early check-in service id=%d is inactive", service.ID)
			return nil, ErrServiceNotFound
		}
	}

	// 5. Сохраняем
	if err := s.repo.Upsert(ctx, &updated); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: hotel settings saved (depositRate=%s, checkIn=%s, checkOut=%s)",
		updated.DepositRate, updated.StandardCheckIn, updated.StandardCheckOut)
	return &updated, nil
}

// validateSettings проверяет согласованность политики
func validateSettings(s *domain.HotelSettings) error {
	if s.DepositRate.IsNegative() || s.DepositRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: depositRate must be between 0 and 1", ErrInvalidInput)
	}

	times := map[string]interface{ Validate() error }{
		"standardCheckIn":      s.StandardCheckIn,
		"standardCheckOut":     s.StandardCheckOut,
		"earlyCheckInGrace":    s.EarlyCheckInGrace,
		"earliestEarlyCheckIn": s.EarliestEarlyCheckIn,
	}
	for name, t := range times {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: invalid %s: %v", ErrInvalidInput, name, err)
		}
	}

	// Порядок: самый ранний заезд < граница льготы < стандартный заезд
	if !s.EarliestEarlyCheckIn.Before(s.EarlyCheckInGrace) {
		return fmt.Errorf("%w: earliestEarlyCheckIn must be before earlyCheckInGrace", ErrInvalidInput)
	}
	if s.StandardCheckIn.Before(s.EarlyCheckInGrace) {
		return fmt.Errorf("%w: earlyCheckInGrace must not be after standardCheckIn", ErrInvalidInput)
	}

	return nil
}
