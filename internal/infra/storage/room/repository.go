package room

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

var roomColumns = []string{
	"id",
	"room_type_id",
	"name",
	"floor",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий комнат и типов комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRoomByID получает комнату по ID
func (r *Repository) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	rooms, err := r.GetRoomsByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}
	return rooms[0], nil
}

// GetRoomsByIDs получает комнаты по списку ID (отсутствующие пропускаются)
func (r *Repository) GetRoomsByIDs(ctx context.Context, ids []int64) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomsByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRooms(rows)
}

// ListRoomsByType получает все комнаты типа
func (r *Repository) ListRoomsByType(ctx context.Context, roomTypeID int64) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"room_type_id": roomTypeID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomsByType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomsByType - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRooms(rows)
}

// UpdateRoomsStatus переводит комнаты в указанный статус (заселение, выезд, уборка)
func (r *Repository) UpdateRoomsStatus(ctx context.Context, ids []int64, status domain.RoomStatus) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRoomsStatus - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateRoomsStatus - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// GetRoomTypeByID получает тип комнаты по ID
func (r *Repository) GetRoomTypeByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"max_occupancy",
		"status",
		"created_at",
		"updated_at",
	).
		From("room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	var rt domain.RoomType
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rt.ID,
		&rt.Code,
		&rt.Name,
		&rt.MaxOccupancy,
		&rt.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomTypeByID - scan room type: %v", ErrScanRow, err)
	}

	rt.CreatedAt = createdAt.Time
	rt.UpdatedAt = updatedAt.Time

	return &rt, nil
}

// scanRooms сканирует результаты запроса в слайс комнат
func (r *Repository) scanRooms(rows *sql.Rows) ([]*domain.Room, error) {
	rooms := make([]*domain.Room, 0)

	for rows.Next() {
		var room domain.Room
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&room.ID,
			&room.RoomTypeID,
			&room.Name,
			&room.Floor,
			&room.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanRooms - scan row: %v", ErrScanRow, err)
		}

		room.CreatedAt = createdAt.Time
		room.UpdatedAt = updatedAt.Time
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRooms - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}
