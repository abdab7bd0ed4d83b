package services_test

import (
	"fmt"
	"regexp"
	"time"

	"storefront_backend/internal/models"
	"storefront_backend/internal/repositories"
)

// In-memory repositories backing the service tests.

type fakeStoreRepo struct {
	stores []*models.Store
	nextID int
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{}
}

func (f *fakeStoreRepo) Create(store *models.Store) error {
	f.nextID++
	if store.ID == "" {
		store.ID = fmt.Sprintf("store-%d", f.nextID)
	}
	store.CreatedAt = time.Now()
	f.stores = append(f.stores, store)
	return nil
}

func (f *fakeStoreRepo) Update(store *models.Store) error {
	for i, s := range f.stores {
		if s.ID == store.ID {
			f.stores[i] = store
			return nil
		}
	}
	return repositories.ErrStoreNotFound
}

func (f *fakeStoreRepo) FindByID(id string) (*models.Store, error) {
	for _, s := range f.stores {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrStoreNotFound
}

func (f *fakeStoreRepo) FindBySlug(slug string) (*models.Store, error) {
	for _, s := range f.stores {
		if s.Slug == slug {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrStoreNotFound
}

func (f *fakeStoreRepo) CountSlugMatches(base string) (int64, error) {
	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(base) + `(-[0-9]+)?$`)
	var count int64
	for _, s := range f.stores {
		if re.MatchString(s.Slug) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStoreRepo) FindPage(offset, limit int) ([]models.Store, int64, error) {
	count := int64(len(f.stores))
	var page []models.Store
	for i := offset; i < len(f.stores) && i < offset+limit; i++ {
		page = append(page, *f.stores[i])
	}
	return page, count, nil
}

func (f *fakeStoreRepo) FindByTag(tag string) ([]models.Store, error) {
	var out []models.Store
	for _, s := range f.stores {
		if tag == "" {
			if len(s.Tags) > 0 {
				out = append(out, *s)
			}
			continue
		}
		for _, t := range s.Tags {
			if t == tag {
				out = append(out, *s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) FindByIDs(ids []string) ([]models.Store, error) {
	var out []models.Store
	for _, s := range f.stores {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, *s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) TagCounts() ([]models.TagCount, error) {
	counts := map[string]int64{}
	for _, s := range f.stores {
		for _, t := range s.Tags {
			counts[t]++
		}
	}
	var out []models.TagCount
	for tag, count := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: count})
	}
	return out, nil
}

func (f *fakeStoreRepo) TopStores(minReviews, limit int) ([]models.TopStore, error) {
	return nil, nil
}

func (f *fakeStoreRepo) Search(query string, limit int) ([]models.Store, error) {
	return nil, nil
}

func (f *fakeStoreRepo) Near(lng, lat, radiusMeters float64, limit int) ([]models.StoreSummary, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users  []*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.nextID++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	if user.Level == 0 {
		user.Level = 1
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateAccount(userID, name, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			u.Name = name
			u.Email = email
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) SetResetToken(userID, token string, expires time.Time) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.ResetToken = token
			exp := expires
			u.ResetTokenExp = &exp
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByValidResetToken(token string, now time.Time) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetToken != "" && u.ResetToken == token && u.ResetTokenExp != nil && u.ResetTokenExp.After(now) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) ResetPassword(token string, now time.Time, passwordHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetToken != "" && u.ResetToken == token && u.ResetTokenExp != nil && u.ResetTokenExp.After(now) {
			u.PasswordHash = passwordHash
			u.ResetToken = ""
			u.ResetTokenExp = nil
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) ToggleHeart(userID, storeID string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID != userID {
			continue
		}
		removed := false
		for i, id := range u.Hearts {
			if id == storeID {
				u.Hearts = append(u.Hearts[:i], u.Hearts[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			u.Hearts = append(u.Hearts, storeID)
		}
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) CountAll() (int64, error) {
	return int64(len(f.users)), nil
}

type fakeReviewRepo struct {
	reviews []*models.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (f *fakeReviewRepo) Create(review *models.Review) error {
	f.nextID++
	if review.ID == "" {
		review.ID = fmt.Sprintf("review-%d", f.nextID)
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) FindByID(id string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (f *fakeReviewRepo) FindByStore(storeID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.StoreID == storeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByStore(storeID string) (int64, error) {
	var count int64
	for _, r := range f.reviews {
		if r.StoreID == storeID {
			count++
		}
	}
	return count, nil
}
