package repositories

import (
	"errors"

	"gorm.io/gorm"

	"storefront_backend/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	FindByStore(storeID string) ([]models.Review, error)
	CountByStore(storeID string) (int64, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByStore(storeID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Preload("Author").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepositoryImpl) CountByStore(storeID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("store_id = ?", storeID).Count(&count).Error
	return count, err
}
