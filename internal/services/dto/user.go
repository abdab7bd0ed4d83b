package dto

import "storefront_backend/internal/models"

type UserResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Level  int      `json:"level"`
	Hearts []string `json:"hearts"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Level:  user.Level,
		Hearts: user.Hearts,
	}
}

type UpdateAccountRequest struct {
	Name  string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" form:"email" validate:"required,email"`
}
