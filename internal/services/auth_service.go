package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/auth"
	"storefront_backend/internal/email"
	"storefront_backend/internal/logger"
	"storefront_backend/internal/models"
	"storefront_backend/internal/repositories"
	"storefront_backend/internal/services/dto"
)

const (
	// resetTokenBytes random bytes, hex-encoded into the reset link.
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Forgot starts the recovery flow. An unknown email is not an
	// error: the response is indistinguishable from the success path
	// and no mail is sent.
	Forgot(emailAddr string) error

	// ValidateResetToken checks existence and expiry in one query.
	ValidateResetToken(token string) error

	// ResetPassword consumes the token: swaps the password hash,
	// clears the token and returns an authenticated session.
	ResetPassword(token string, req *dto.ResetPasswordRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	tokens        *auth.TokenManager
	baseURL       string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	tokens *auth.TokenManager,
	baseURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		tokens:        tokens,
		baseURL:       baseURL,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Best effort; registration does not fail on a mail hiccup.
	if err := s.emailProvider.SendTemplate(
		[]string{user.Email},
		"Welcome!",
		"welcome",
		email.TemplateData{
			UserName:   user.Name,
			ActionURL:  s.baseURL + "/add",
			ActionText: "Add your first store",
		},
	); err != nil {
		logger.Warn("failed to send welcome email", "email", user.Email, "error", err)
	}

	return s.buildLoginResponse(user)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildLoginResponse(user)
}

func (s *AuthServiceImpl) Forgot(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Do not leak account existence; the caller responds with
			// the same message either way.
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := generateResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(user.ID, token, expires); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/account/reset/%s", s.baseURL, token)
	if err := s.emailProvider.SendTemplate(
		[]string{user.Email},
		"Password reset",
		"password-reset",
		email.TemplateData{
			UserName:   user.Name,
			ActionURL:  resetURL,
			ActionText: "Reset your password",
		},
	); err != nil {
		return apperrors.ErrDelivery(err)
	}

	return nil
}

func (s *AuthServiceImpl) ValidateResetToken(token string) error {
	if token == "" {
		return apperrors.ErrResetTokenInvalid
	}

	_, err := s.userRepo.FindByValidResetToken(token, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrResetTokenInvalid
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(token string, req *dto.ResetPasswordRequest) (*dto.LoginResponse, error) {
	// The mismatch check runs before anything touches the database.
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if token == "" {
		return nil, apperrors.ErrResetTokenInvalid
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Single guarded update: the token is validated and consumed in
	// the same statement, so it cannot be spent twice.
	user, err := s.userRepo.ResetPassword(token, time.Now(), hash)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrResetTokenInvalid
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildLoginResponse(user)
}

func (s *AuthServiceImpl) buildLoginResponse(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := s.tokens.Generate(user.ID, user.Level)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        dto.NewUserResponse(user),
	}, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
