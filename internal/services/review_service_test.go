package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/models"
	"storefront_backend/internal/services"
	"storefront_backend/internal/services/dto"
)

func TestReviewService_Add(t *testing.T) {
	t.Parallel()

	reviewRepo := newFakeReviewRepo()
	storeRepo := newFakeStoreRepo()
	svc := services.NewReviewService(reviewRepo, storeRepo)

	store := &models.Store{Name: "Cafe", Slug: "cafe", AuthorID: "user-1"}
	require.NoError(t, storeRepo.Create(store))

	review, err := svc.Add(store.ID, "user-2", &dto.CreateReviewRequest{
		Rating: 4,
		Text:   "Solid flat white.",
	})
	require.NoError(t, err)
	assert.Equal(t, store.ID, review.StoreID)
	assert.Equal(t, "user-2", review.AuthorID)

	reviews, err := svc.ListForStore(store.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewService_Add_RatingBounds(t *testing.T) {
	t.Parallel()

	storeRepo := newFakeStoreRepo()
	svc := services.NewReviewService(newFakeReviewRepo(), storeRepo)

	store := &models.Store{Name: "Cafe", Slug: "cafe", AuthorID: "user-1"}
	require.NoError(t, storeRepo.Create(store))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Add(store.ID, "user-2", &dto.CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating, "rating %d must be rejected", rating)
	}
}

func TestReviewService_Add_UnknownStore(t *testing.T) {
	t.Parallel()

	svc := services.NewReviewService(newFakeReviewRepo(), newFakeStoreRepo())

	_, err := svc.Add("missing", "user-2", &dto.CreateReviewRequest{Rating: 5})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
