package dto

type RegisterRequest struct {
	Name            string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password-confirm" form:"password-confirm" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password-confirm" form:"password-confirm" validate:"required"`
}
