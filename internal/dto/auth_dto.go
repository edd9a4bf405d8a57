package dto

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" form:"password" validate:"required,min=4,max=128"`
}

type RegisterResponse struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type TelegramStatusResponse struct {
	HasTelegram bool `json:"hasTelegram"`
}
