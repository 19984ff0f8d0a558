package housekeeping

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-HotelService/internal/domain"
	"github.com/m04kA/SMC-HotelService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelService/pkg/psqlbuilder"
)

// Repository задачи службы уборки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория задач уборки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create ставит задачу
func (r *Repository) Create(ctx context.Context, task *domain.HousekeepingTask) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("housekeeping_tasks").
		Columns("room_id", "booking_id", "kind", "status", "due_at").
		Values(task.RoomID, task.BookingID, task.Kind, task.Status, task.DueAt).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&task.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	task.CreatedAt = createdAt.Time

	return nil
}
