package entity

import "time"

type Task struct {
	Id        int64
	UserId    int64
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
