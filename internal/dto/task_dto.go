package dto

type AddTaskRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

type AddTaskResponse struct {
	Id int64 `json:"id"`
}

type UpdateTaskRequest struct {
	Id   int64  `json:"id" form:"id" validate:"required"`
	Text string `json:"text" form:"text" validate:"required"`
}

type DeleteTaskRequest struct {
	Id int64 `json:"id" form:"id" validate:"required"`
}

type TaskResponse struct {
	Id   int64  `json:"id"`
	Text string `json:"text"`
}
