package contract

import (
	"context"

	"todolist-be/internal/entity"
	"todolist-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SetTelegramId binds (or clears, with nil) the telegram identity of one
	// user. The unique index on telegram_id guards against double-linking.
	SetTelegramId(ctx context.Context, userId int64, telegramId *int64) error
}
