package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateAccount(userID, name, email string) (*models.User, error)

	// Password recovery
	SetResetToken(userID, token string, expires time.Time) error
	// FindByValidResetToken filters on token AND expiry in a single
	// query; there is no separate check-then-use step.
	FindByValidResetToken(token string, now time.Time) (*models.User, error)
	// ResetPassword swaps the hash and clears the token atomically.
	// Returns ErrUserNotFound when the token is no longer valid.
	ResetPassword(token string, now time.Time, passwordHash string) (*models.User, error)

	// ToggleHeart adds storeID to the hearts set when absent and
	// removes it when present, in one statement.
	ToggleHeart(userID, storeID string) (*models.User, error)

	CountAll() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateAccount(userID, name, email string) (*models.User, error) {
	user, err := r.FindByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) SetResetToken(userID, token string, expires time.Time) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":     token,
			"reset_token_exp": expires,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByValidResetToken(token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("reset_token = ? AND reset_token_exp > ?", token, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ResetPassword(token string, now time.Time, passwordHash string) (*models.User, error) {
	// Same filter as FindByValidResetToken so the token cannot expire
	// between validation and consumption.
	var user models.User
	err := r.db.Raw(`
		UPDATE users
		SET password_hash = ?, reset_token = '', reset_token_exp = NULL
		WHERE reset_token = ? AND reset_token <> '' AND reset_token_exp > ?
		RETURNING *`,
		passwordHash, token, now).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ToggleHeart(userID, storeID string) (*models.User, error) {
	// Single statement with set semantics: remove when present,
	// append when absent. Mirrors $pull/$addToSet.
	res := r.db.Exec(`
		UPDATE users
		SET hearts = CASE
			WHEN ? = ANY(hearts) THEN array_remove(hearts, ?)
			ELSE array_append(coalesce(hearts, '{}'), ?)
		END
		WHERE id = ?`,
		storeID, storeID, storeID, userID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(userID)
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
