package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/logger"
	"storefront_backend/internal/services"
	"storefront_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	response, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout is stateless: tokens expire on their own, the client just
// drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "You are now logged out!",
	})
}

func (h *AuthHandler) Forgot(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.authService.Forgot(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Password reset requested", "email", req.Email)

	c.JSON(http.StatusOK, gin.H{
		"message": "You have been emailed a password reset link.",
	})
}

// ResetForm confirms the token before the client shows the new
// password form.
func (h *AuthHandler) ResetForm(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.ValidateResetToken(token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reset your password",
	})
}

func (h *AuthHandler) Reset(c *gin.Context) {
	token := c.Param("token")

	var req dto.ResetPasswordRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	response, err := h.authService.ResetPassword(token, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
