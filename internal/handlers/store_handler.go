package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront_backend/internal/apperrors"
	"storefront_backend/internal/imageprocessor"
	"storefront_backend/internal/logger"
	"storefront_backend/internal/services"
	"storefront_backend/internal/services/dto"
	"storefront_backend/internal/storage"
)

type StoreHandler struct {
	*BaseHandler
	storeService services.StoreService
	userService  services.UserService
	images       *imageprocessor.Processor
	store        storage.Storage
}

func NewStoreHandler(
	base *BaseHandler,
	storeService services.StoreService,
	userService services.UserService,
	images *imageprocessor.Processor,
	store storage.Storage,
) *StoreHandler {
	return &StoreHandler{
		BaseHandler:  base,
		storeService: storeService,
		userService:  userService,
		images:       images,
		store:        store,
	}
}

// List serves the paginated listing. A page past the end answers with
// a redirect to the last page rather than an empty body.
func (h *StoreHandler) List(c *gin.Context) {
	page := 1
	if pageStr := c.Param("page"); pageStr != "" {
		parsed, err := ParseParamInt(c, "page")
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		page = parsed
	}

	response, err := h.storeService.List(page)
	if err != nil {
		var pageErr *services.PageOutOfRangeError
		if errors.As(err, &pageErr) {
			logger.CtxInfo(c.Request.Context(), "Page out of range, redirecting",
				"requested", pageErr.Page,
				"last", pageErr.LastPage,
			)
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/stores/page/%d", pageErr.LastPage))
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StoreHandler) GetBySlug(c *gin.Context) {
	store, err := h.storeService.GetBySlug(c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStoreRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	photo, ok := h.savePhoto(c)
	if !ok {
		return
	}
	req.Photo = photo

	store, err := h.storeService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Store created", "store_id", store.ID, "slug", store.Slug)

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Successfully created %s.", store.Name),
		"store":   store,
	})
}

// AddForm is a shell page for the create screen.
func (h *StoreHandler) AddForm(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "Add Store"})
}

// EditForm returns the store for the edit screen, after the ownership
// check.
func (h *StoreHandler) EditForm(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	store, err := h.storeService.GetForEdit(c.Param("id"), userID, h.GetUserLevel(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStoreRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	photo, ok := h.savePhoto(c)
	if !ok {
		return
	}
	req.Photo = photo

	store, err := h.storeService.Update(c.Param("id"), userID, h.GetUserLevel(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully updated %s.", store.Name),
		"store":   store,
	})
}

// Tags serves both the tag cloud and the stores filtered by one tag.
func (h *StoreHandler) Tags(c *gin.Context) {
	response, err := h.storeService.TagsPage(c.Param("tag"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StoreHandler) Top(c *gin.Context) {
	stores, err := h.storeService.TopStores()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

func (h *StoreHandler) Search(c *gin.Context) {
	stores, err := h.storeService.Search(c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) Near(c *gin.Context) {
	lng, err := ParseQueryFloat(c, "lng")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	lat, err := ParseQueryFloat(c, "lat")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	stores, err := h.storeService.Near(lng, lat)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

// Map is a shell page; the markers come from the near endpoint.
func (h *StoreHandler) Map(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "Map",
		"data":  "/api/stores/near",
	})
}

// Hearts lists the stores the current user has favorited.
func (h *StoreHandler) Hearts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	stores, err := h.storeService.HeartedBy(user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// savePhoto resizes and persists an optional "photo" upload, returning
// the stored filename. A missing file is not an error.
func (h *StoreHandler) savePhoto(c *gin.Context) (string, bool) {
	file, err := c.FormFile("photo")
	if err != nil {
		return "", true
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType)
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return "", false
	}
	defer src.Close()

	processed, format, err := h.images.Process(src)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType)
		return "", false
	}

	filename := uuid.NewString() + "." + format
	if err := h.store.Save(c.Request.Context(), filename, processed, "image/"+format); err != nil {
		h.HandleServiceError(c, err)
		return "", false
	}

	logger.CtxInfo(c.Request.Context(), "Photo uploaded", "filename", filename)
	return filename, true
}
