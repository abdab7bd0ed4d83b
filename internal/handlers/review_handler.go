package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/services"
	"storefront_backend/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	review, err := h.reviewService.Add(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review saved!",
		"review":  review,
	})
}

func (h *ReviewHandler) ListForStore(c *gin.Context) {
	reviews, err := h.reviewService.ListForStore(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
