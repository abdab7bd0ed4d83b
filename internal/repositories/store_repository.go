package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront_backend/internal/models"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrSlugTaken     = errors.New("slug already taken")
)

// NearRadiusMeters bounds the map search to stores within 10 km.
const NearRadiusMeters = 10000.0

type StoreRepository interface {
	Create(store *models.Store) error
	Update(store *models.Store) error
	FindByID(id string) (*models.Store, error)
	// FindBySlug populates the author and the store's reviews (with
	// their authors).
	FindBySlug(slug string) (*models.Store, error)

	// CountSlugMatches counts stores whose slug matches
	// ^{base}(-digits)?$ case-insensitively. Used for deduplication.
	CountSlugMatches(base string) (int64, error)

	// FindPage returns one page sorted by created descending plus the
	// total count.
	FindPage(offset, limit int) ([]models.Store, int64, error)

	FindByTag(tag string) ([]models.Store, error)
	FindByIDs(ids []string) ([]models.Store, error)

	// Aggregations
	TagCounts() ([]models.TagCount, error)
	TopStores(minReviews, limit int) ([]models.TopStore, error)
	Search(query string, limit int) ([]models.Store, error)
	Near(lng, lat, radiusMeters float64, limit int) ([]models.StoreSummary, error)
}

type StoreRepositoryImpl struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &StoreRepositoryImpl{db: db}
}

func (r *StoreRepositoryImpl) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

func (r *StoreRepositoryImpl) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

func (r *StoreRepositoryImpl) FindByID(id string) (*models.Store, error) {
	var store models.Store
	err := r.db.First(&store, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepositoryImpl) FindBySlug(slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.
		Preload("Author").
		Preload("Reviews").
		Preload("Reviews.Author").
		First(&store, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepositoryImpl) CountSlugMatches(base string) (int64, error) {
	var count int64
	pattern := fmt.Sprintf("^%s(-[0-9]+)?$", base)
	err := r.db.Model(&models.Store{}).
		Where("slug ~* ?", pattern).
		Count(&count).Error
	return count, err
}

func (r *StoreRepositoryImpl) FindPage(offset, limit int) ([]models.Store, int64, error) {
	var stores []models.Store
	var count int64

	if err := r.db.Model(&models.Store{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, count, nil
}

func (r *StoreRepositoryImpl) FindByTag(tag string) ([]models.Store, error) {
	var stores []models.Store
	q := r.db.Order("created_at DESC")
	if tag == "" {
		// No tag selected: every store that carries at least one tag,
		// like the original's {$exists: true} query.
		q = q.Where("tags IS NOT NULL AND cardinality(tags) > 0")
	} else {
		q = q.Where("? = ANY(tags)", tag)
	}
	if err := q.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreRepositoryImpl) FindByIDs(ids []string) ([]models.Store, error) {
	var stores []models.Store
	if len(ids) == 0 {
		return stores, nil
	}
	err := r.db.Where("id IN ?", ids).Order("created_at DESC").Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

// TagCounts unnests the tags arrays and counts occurrences, most
// frequent first.
func (r *StoreRepositoryImpl) TagCounts() ([]models.TagCount, error) {
	var tags []models.TagCount
	err := r.db.Raw(`
		SELECT unnest(tags) AS tag, count(*) AS count
		FROM stores
		GROUP BY tag
		ORDER BY count DESC, tag ASC`).Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// TopStores joins reviews, keeps stores with at least minReviews and
// orders by mean rating descending.
func (r *StoreRepositoryImpl) TopStores(minReviews, limit int) ([]models.TopStore, error) {
	var top []models.TopStore
	err := r.db.Raw(`
		SELECT s.id, s.name, s.slug, s.photo,
		       count(rv.id)       AS review_count,
		       avg(rv.rating)     AS average_rating
		FROM stores s
		JOIN reviews rv ON rv.store_id = s.id
		GROUP BY s.id, s.name, s.slug, s.photo
		HAVING count(rv.id) >= ?
		ORDER BY average_rating DESC
		LIMIT ?`, minReviews, limit).Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}

// Search runs a full-text relevance query over name and description.
func (r *StoreRepositoryImpl) Search(query string, limit int) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Raw(`
		SELECT s.*
		FROM stores s,
		     to_tsvector('english', s.name || ' ' || coalesce(s.description, '')) document,
		     plainto_tsquery('english', ?) q
		WHERE document @@ q
		ORDER BY ts_rank(document, q) DESC
		LIMIT ?`, query, limit).Scan(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

// Near finds stores within radiusMeters of the point, nearest first.
// Distance is computed with the haversine formula; a 10 km radius does
// not warrant PostGIS.
func (r *StoreRepositoryImpl) Near(lng, lat, radiusMeters float64, limit int) ([]models.StoreSummary, error) {
	var stores []models.StoreSummary
	err := r.db.Raw(`
		SELECT slug, name, description, lng, lat, address, photo
		FROM (
			SELECT *,
			       2 * 6371000 * asin(sqrt(
			           pow(sin(radians(lat - ?) / 2), 2) +
			           cos(radians(?)) * cos(radians(lat)) *
			           pow(sin(radians(lng - ?) / 2), 2)
			       )) AS distance
			FROM stores
		) nearby
		WHERE distance <= ?
		ORDER BY distance ASC
		LIMIT ?`, lat, lat, lng, radiusMeters, limit).Scan(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}
