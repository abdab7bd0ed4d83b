package dto

type CreateReviewRequest struct {
	Rating int    `json:"rating" form:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" form:"text" validate:"max=2000"`
}
