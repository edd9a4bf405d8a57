package model

import "time"

type User struct {
	Id           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	TelegramId   *int64    `gorm:"uniqueIndex"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
