package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/types"
)

var validate = validator.New()

// ErrBadRequest некорректный HTTP-запрос (тело, путь, query)
var ErrBadRequest = domain.Kind(domain.ErrValidation, "handlers: bad request")

// DecodeJSON декодирует тело запроса; неизвестные поля - ошибка
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// DecodeAndValidate декодирует тело и проверяет теги validate
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSON(r, dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", ErrBadRequest, err)
	}
	return Validate(dst)
}

// Validate проверяет теги validate структуры запроса
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: invalid fields: %s", ErrBadRequest, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// PathInt64 положительный int64 из переменной пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return id, nil
}

// PathInt положительный int из переменной пути
func PathInt(r *http.Request, name string) (int, error) {
	id, err := PathInt64(r, name)
	return int(id), err
}

// ParseDateTime RFC3339 или YYYY-MM-DDTHH:MM:SS в часовом поясе отеля.
// dateOnly - значение было датой без времени.
func ParseDateTime(raw string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, fmt.Errorf("%w: empty time", ErrBadRequest)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), false, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(domain.DateFormat, raw, loc); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: invalid time %q, expected RFC3339 or YYYY-MM-DD", ErrBadRequest, raw)
}

// QueryInt64 необязательный положительный int64 из query
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return &v, nil
}

// SettingsProvider источник действующей политики отеля (часовой пояс, стандартные часы)
type SettingsProvider interface {
	Current(ctx context.Context) (*domain.HotelSettings, error)
}

// ParseStayBoundary время заезда/выезда. Дата без времени дополняется стандартным
// часом из политики отеля (defaultTime).
func ParseStayBoundary(raw string, settings *domain.HotelSettings, defaultTime types.TimeString) (time.Time, error) {
	t, dateOnly, err := ParseDateTime(raw, settings.Location)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		return defaultTime.On(t), nil
	}
	return t, nil
}
