package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/auth"
	"storefront_backend/internal/handlers"
	"storefront_backend/internal/models"
	"storefront_backend/internal/routes"
	"storefront_backend/internal/services"
	"storefront_backend/internal/services/dto"
	"storefront_backend/internal/validator"
)

// Stub services; only the methods a test exercises are wired.

type stubStoreService struct {
	listFn      func(page int) (*dto.StoreListResponse, error)
	getBySlugFn func(slug string) (*models.Store, error)
}

func (s *stubStoreService) Create(authorID string, req *dto.CreateStoreRequest) (*models.Store, error) {
	return nil, apperrors.InternalError(nil)
}
func (s *stubStoreService) Update(storeID, userID string, userLevel int, req *dto.UpdateStoreRequest) (*models.Store, error) {
	return nil, apperrors.InternalError(nil)
}
func (s *stubStoreService) GetForEdit(storeID, userID string, userLevel int) (*models.Store, error) {
	return nil, apperrors.InternalError(nil)
}
func (s *stubStoreService) List(page int) (*dto.StoreListResponse, error) {
	return s.listFn(page)
}
func (s *stubStoreService) GetBySlug(slug string) (*models.Store, error) {
	return s.getBySlugFn(slug)
}
func (s *stubStoreService) TagsPage(tag string) (*dto.TagPageResponse, error) {
	return &dto.TagPageResponse{Tag: tag}, nil
}
func (s *stubStoreService) TopStores() ([]models.TopStore, error) { return nil, nil }

func (s *stubStoreService) Search(query string) ([]models.Store, error) { return nil, nil }
func (s *stubStoreService) Near(lng, lat float64) ([]models.StoreSummary, error) {
	return nil, nil
}
func (s *stubStoreService) HeartedBy(user *models.User) ([]models.Store, error) { return nil, nil }
func (s *stubStoreService) ConfirmOwnership(store *models.Store, userID string, userLevel int) error {
	return nil
}

type stubUserService struct {
	toggleFn func(userID, storeID string) (*dto.UserResponse, error)
}

func (s *stubUserService) Get(userID string) (*models.User, error) {
	return &models.User{Name: "Wes", Email: "wes@example.com"}, nil
}
func (s *stubUserService) UpdateAccount(userID string, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID, Name: req.Name, Email: req.Email}, nil
}
func (s *stubUserService) ToggleHeart(userID, storeID string) (*dto.UserResponse, error) {
	return s.toggleFn(userID, storeID)
}

type stubAuthService struct{}

func (s *stubAuthService) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	return &dto.LoginResponse{AccessToken: "token", User: &dto.UserResponse{Email: req.Email}}, nil
}
func (s *stubAuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, apperrors.ErrInvalidCredentials
}
func (s *stubAuthService) Forgot(emailAddr string) error { return nil }

func (s *stubAuthService) ValidateResetToken(token string) error {
	return apperrors.ErrResetTokenInvalid
}
func (s *stubAuthService) ResetPassword(token string, req *dto.ResetPasswordRequest) (*dto.LoginResponse, error) {
	return nil, apperrors.ErrResetTokenInvalid
}

type fixture struct {
	router *gin.Engine
	tokens *auth.TokenManager
	store  *stubStoreService
	user   *stubUserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &stubStoreService{
		listFn: func(page int) (*dto.StoreListResponse, error) {
			return &dto.StoreListResponse{Page: page, Pages: 1}, nil
		},
		getBySlugFn: func(slug string) (*models.Store, error) {
			return nil, apperrors.NewNotFoundError("stores", "Store not found")
		},
	}
	user := &stubUserService{
		toggleFn: func(userID, storeID string) (*dto.UserResponse, error) {
			return &dto.UserResponse{ID: userID, Hearts: []string{storeID}}, nil
		},
	}

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(base, &stubAuthService{}),
		StoreHandler:  handlers.NewStoreHandler(base, store, user, nil, nil),
		UserHandler:   handlers.NewUserHandler(base, user),
		ReviewHandler: handlers.NewReviewHandler(base, stubReviewService{}),
	}

	tokens := auth.NewTokenManager("test-secret", 60)
	router := gin.New()
	routes.RegisterRoutes(router, appHandlers, tokens)

	return &fixture{router: router, tokens: tokens, store: store, user: user}
}

type stubReviewService struct{}

func (stubReviewService) Add(storeID, authorID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	return &models.Review{StoreID: storeID, AuthorID: authorID, Rating: req.Rating, Text: req.Text}, nil
}
func (stubReviewService) ListForStore(storeID string) ([]models.Review, error) { return nil, nil }

func (f *fixture) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestListing_RedirectsPastTheLastPage(t *testing.T) {
	f := newFixture(t)
	f.store.listFn = func(page int) (*dto.StoreListResponse, error) {
		if page > 5 {
			return nil, &services.PageOutOfRangeError{Page: page, LastPage: 5}
		}
		return &dto.StoreListResponse{Page: page, Pages: 5}, nil
	}

	w := f.request(t, http.MethodGet, "/stores/page/9", "", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/stores/page/5", w.Header().Get("Location"))

	w = f.request(t, http.MethodGet, "/stores/page/3", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetBySlug_NotFoundEnvelope(t *testing.T) {
	f := newFixture(t)

	w := f.request(t, http.MethodGet, "/store/no-such-store", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	f := newFixture(t)

	w := f.request(t, http.MethodPost, "/register", "", `{"name":"Wes","email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/hearts", "/account"} {
		w := f.request(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}

	w := f.request(t, http.MethodPost, "/api/stores/abc/heart", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, http.MethodPost, "/api/stores/abc/heart", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleHeart_UsesTokenIdentity(t *testing.T) {
	f := newFixture(t)

	token, err := f.tokens.Generate("user-42", 1)
	require.NoError(t, err)

	w := f.request(t, http.MethodPost, "/api/stores/store-7/heart", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-42", body.ID)
	assert.Equal(t, []string{"store-7"}, body.Hearts)
}

func TestResetForm_InvalidToken(t *testing.T) {
	f := newFixture(t)

	w := f.request(t, http.MethodGet, "/account/reset/expired-token", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}
