package contract

import (
	"context"

	"todolist-be/internal/entity"
	"todolist-be/internal/repository/specification"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateTextOwned and DeleteOwned filter by both task id and owner id in a
	// single statement, so the authorization check and the mutation are one
	// atomic step. They return the number of rows affected: zero means the
	// task does not exist or belongs to someone else, and callers must not
	// distinguish the two.
	UpdateTextOwned(ctx context.Context, taskId, userId int64, text string) (int64, error)
	DeleteOwned(ctx context.Context, taskId, userId int64) (int64, error)
}
