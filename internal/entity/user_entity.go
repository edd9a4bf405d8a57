package entity

import "time"

type User struct {
	Id           int64
	Username     string
	PasswordHash string
	// TelegramId is set once the user links the chat bot. At most one user
	// may hold a given telegram identity (unique index on the model).
	TelegramId *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) HasTelegram() bool {
	return u.TelegramId != nil
}
