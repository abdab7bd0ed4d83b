package services

import (
	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/models"
	"storefront_backend/internal/repositories"
	"storefront_backend/internal/services/dto"
)

type UserService interface {
	Get(userID string) (*models.User, error)
	UpdateAccount(userID string, req *dto.UpdateAccountRequest) (*dto.UserResponse, error)

	// ToggleHeart flips storeID in the user's favorites set and
	// returns the updated user.
	ToggleHeart(userID, storeID string) (*dto.UserResponse, error)
}

type userService struct {
	userRepo  repositories.UserRepository
	storeRepo repositories.StoreRepository
}

func NewUserService(userRepo repositories.UserRepository, storeRepo repositories.StoreRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
	}
}

func (s *userService) Get(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *userService) UpdateAccount(userID string, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.UpdateAccount(userID, req.Name, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) ToggleHeart(userID, storeID string) (*dto.UserResponse, error) {
	// The store must exist; hearts never reference dangling IDs.
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if apperrors.Is(err, repositories.ErrStoreNotFound) {
			return nil, apperrors.NewNotFoundError("stores", "Store not found")
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.ToggleHeart(userID, storeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}
