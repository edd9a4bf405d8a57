package events

import "time"

const (
	TypeTaskCreated = "TASK_CREATED"
	TypeTaskUpdated = "TASK_UPDATED"
	TypeTaskDeleted = "TASK_DELETED"
	TypeUserLogin   = "USER_LOGIN"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
