package services

import (
	"fmt"
	"math"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/models"
	"storefront_backend/internal/repositories"
	"storefront_backend/internal/services/dto"
	"storefront_backend/internal/slug"
)

const (
	// StorePageSize is the listing window; four stores per page.
	StorePageSize = 4

	searchLimit   = 5
	nearLimit     = 10
	topLimit      = 10
	topMinReviews = 2
)

// PageOutOfRangeError is returned when a listing page beyond the last
// one was requested. The handler redirects to LastPage instead of
// rendering an empty result.
type PageOutOfRangeError struct {
	Page     int
	LastPage int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range, last page is %d", e.Page, e.LastPage)
}

type StoreService interface {
	Create(authorID string, req *dto.CreateStoreRequest) (*models.Store, error)
	Update(storeID, userID string, userLevel int, req *dto.UpdateStoreRequest) (*models.Store, error)
	GetForEdit(storeID, userID string, userLevel int) (*models.Store, error)
	List(page int) (*dto.StoreListResponse, error)
	GetBySlug(slug string) (*models.Store, error)
	TagsPage(tag string) (*dto.TagPageResponse, error)
	TopStores() ([]models.TopStore, error)
	Search(query string) ([]models.Store, error)
	Near(lng, lat float64) ([]models.StoreSummary, error)
	HeartedBy(user *models.User) ([]models.Store, error)
	ConfirmOwnership(store *models.Store, userID string, userLevel int) error
}

type storeService struct {
	storeRepo repositories.StoreRepository
}

func NewStoreService(storeRepo repositories.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) Create(authorID string, req *dto.CreateStoreRequest) (*models.Store, error) {
	storeSlug, err := s.uniqueSlug(req.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	store := &models.Store{
		Name:        req.Name,
		Slug:        storeSlug,
		Description: req.Description,
		Tags:        req.Tags,
		Lng:         *req.Lng,
		Lat:         *req.Lat,
		Address:     req.Address,
		Photo:       req.Photo,
		AuthorID:    authorID,
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return store, nil
}

func (s *storeService) Update(storeID, userID string, userLevel int, req *dto.UpdateStoreRequest) (*models.Store, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStoreNotFound) {
			return nil, apperrors.NewNotFoundError("stores", "Store not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.ConfirmOwnership(store, userID, userLevel); err != nil {
		return nil, err
	}

	// The slug follows the name; it is only recomputed when the name
	// actually changes, so existing links keep working on plain edits.
	if req.Name != store.Name {
		newSlug, err := s.uniqueSlug(req.Name)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		store.Slug = newSlug
	}

	store.Name = req.Name
	store.Description = req.Description
	store.Tags = req.Tags
	store.Lng = *req.Lng
	store.Lat = *req.Lat
	store.Address = req.Address
	if req.Photo != "" {
		store.Photo = req.Photo
	}
	// AuthorID stays untouched: immutable after creation.

	if err := s.storeRepo.Update(store); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return store, nil
}

func (s *storeService) GetForEdit(storeID, userID string, userLevel int) (*models.Store, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStoreNotFound) {
			return nil, apperrors.NewNotFoundError("stores", "Store not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.ConfirmOwnership(store, userID, userLevel); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) List(page int) (*dto.StoreListResponse, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * StorePageSize

	stores, count, err := s.storeRepo.FindPage(offset, StorePageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pages := int(math.Ceil(float64(count) / float64(StorePageSize)))

	// An empty page that was actually skipped past the end: the caller
	// must land on the last valid page instead of an empty listing.
	if len(stores) == 0 && offset > 0 && count > 0 {
		return nil, &PageOutOfRangeError{Page: page, LastPage: pages}
	}

	return &dto.StoreListResponse{
		Stores: stores,
		Page:   page,
		Pages:  pages,
		Count:  count,
	}, nil
}

func (s *storeService) GetBySlug(storeSlug string) (*models.Store, error) {
	store, err := s.storeRepo.FindBySlug(storeSlug)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStoreNotFound) {
			return nil, apperrors.NewNotFoundError("stores", "Store not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return store, nil
}

func (s *storeService) TagsPage(tag string) (*dto.TagPageResponse, error) {
	tags, err := s.storeRepo.TagCounts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stores, err := s.storeRepo.FindByTag(tag)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TagPageResponse{
		Tag:    tag,
		Tags:   tags,
		Stores: stores,
	}, nil
}

func (s *storeService) TopStores() ([]models.TopStore, error) {
	top, err := s.storeRepo.TopStores(topMinReviews, topLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return top, nil
}

func (s *storeService) Search(query string) ([]models.Store, error) {
	stores, err := s.storeRepo.Search(query, searchLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stores, nil
}

func (s *storeService) Near(lng, lat float64) ([]models.StoreSummary, error) {
	stores, err := s.storeRepo.Near(lng, lat, repositories.NearRadiusMeters, nearLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stores, nil
}

func (s *storeService) HeartedBy(user *models.User) ([]models.Store, error) {
	stores, err := s.storeRepo.FindByIDs(user.Hearts)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stores, nil
}

// ConfirmOwnership passes when the acting user authored the store or
// holds the reserved admin tier.
func (s *storeService) ConfirmOwnership(store *models.Store, userID string, userLevel int) error {
	if store.AuthorID == userID || userLevel > models.AdminLevel {
		return nil
	}
	return apperrors.ErrNotOwner
}

// uniqueSlug derives the slug from the name and deduplicates against
// existing stores: the count of slugs matching ^{base}(-N)?$ decides
// the suffix, so N stores named "Cafe" yield cafe, cafe-2, cafe-3, ...
func (s *storeService) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)
	n, err := s.storeRepo.CountSlugMatches(base)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return fmt.Sprintf("%s-%d", base, n+1), nil
	}
	return base, nil
}
