package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
)

var ratingChoices = []int{5, 4, 3, 2, 1}

type reviewApplicationService interface {
	ListPublic(ctx context.Context) ([]models.ReviewWithParent, error)
	ListMine(ctx context.Context, token string) ([]models.Review, error)
	Create(ctx context.Context, token string, rating int, description string) services.Result[struct{}]
	Update(ctx context.Context, token string, reviewID int64, rating int, description string) services.Result[struct{}]
	Delete(ctx context.Context, token string, reviewID int64) services.Result[struct{}]
}

type ReviewHandler struct {
	reviews reviewApplicationService
}

func NewReviewHandler(reviews reviewApplicationService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewForm struct {
	Rating      int
	Description string
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	return h.renderList(c, reviewForm{Rating: models.MaxRating}, "")
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	form := reviewForm{Rating: formInt(c, "rating"), Description: c.FormValue("description")}
	result := h.reviews.Create(c.Context(), credential(c), form.Rating, form.Description)
	if result.OK() || !services.IsValidationError(result.Err) {
		return redirectAfter(c, result, "/reviews")
	}

	c.Status(fiber.StatusUnprocessableEntity)
	return h.renderList(c, form, result.Message)
}

func (h *ReviewHandler) renderList(c *fiber.Ctx, form reviewForm, errMessage string) error {
	s := middleware.CurrentSession(c)
	data := fiber.Map{
		"CanReview": s.LoggedIn() && s.ProfileComplete,
		"Ratings":   ratingChoices,
		"Form":      form,
		"Error":     errMessage,
	}

	reviews, err := h.reviews.ListPublic(c.Context())
	if err != nil {
		data["LoadError"] = "Failed to fetch reviews."
	}
	data["Reviews"] = reviews
	return render(c, "reviews", "Reviews", data)
}
