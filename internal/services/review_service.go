package services

import (
	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/models"
	"storefront_backend/internal/repositories"
	"storefront_backend/internal/services/dto"
)

type ReviewService interface {
	Add(storeID, authorID string, req *dto.CreateReviewRequest) (*models.Review, error)
	ListForStore(storeID string) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	storeRepo  repositories.StoreRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, storeRepo repositories.StoreRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		storeRepo:  storeRepo,
	}
}

func (s *reviewService) Add(storeID, authorID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if apperrors.Is(err, repositories.ErrStoreNotFound) {
			return nil, apperrors.NewNotFoundError("stores", "Store not found")
		}
		return nil, apperrors.InternalError(err)
	}

	review := &models.Review{
		StoreID:  storeID,
		AuthorID: authorID,
		Rating:   req.Rating,
		Text:     req.Text,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return review, nil
}

func (s *reviewService) ListForStore(storeID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindByStore(storeID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reviews, nil
}
