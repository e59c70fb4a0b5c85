package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saeid-a/KickoffCoachWeb/internal/backend"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type reviewBackend interface {
	ListReviews(ctx context.Context) ([]models.ReviewWithParent, error)
	ListParentReviews(ctx context.Context, token string) ([]models.Review, error)
	CreateReview(ctx context.Context, token string, input models.ReviewInput) error
	UpdateReview(ctx context.Context, token string, reviewID int64, input models.ReviewInput) error
	DeleteReview(ctx context.Context, token string, reviewID int64) error
}

type ReviewService struct {
	backend  reviewBackend
	location *time.Location
	now      func() time.Time
}

func NewReviewService(backend reviewBackend, location *time.Location) *ReviewService {
	if location == nil {
		location = time.Local
	}
	return &ReviewService{backend: backend, location: location, now: time.Now}
}

func (s *ReviewService) ListPublic(ctx context.Context) ([]models.ReviewWithParent, error) {
	reviews, err := s.backend.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) ListMine(ctx context.Context, token string) ([]models.Review, error) {
	reviews, err := s.backend.ListParentReviews(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list parent reviews: %w", err)
	}
	return reviews, nil
}

// Create posts a review dated today.
func (s *ReviewService) Create(ctx context.Context, token string, rating int, description string) Result[struct{}] {
	const failure = "Failed to submit review."

	input := models.ReviewInput{
		Date:        Today(s.now(), s.location),
		Rating:      rating,
		Description: strings.TrimSpace(description),
	}
	if err := models.ValidateReview(input); err != nil {
		return Failed[struct{}](err, failure)
	}
	if err := s.backend.CreateReview(ctx, token, input); err != nil {
		return Failed[struct{}](fmt.Errorf("create review: %w", err), failure)
	}
	return Succeeded(struct{}{}, "Review submitted successfully!")
}

func (s *ReviewService) Update(ctx context.Context, token string, reviewID int64, rating int, description string) Result[struct{}] {
	const failure = "Failed to update review."

	input := models.ReviewInput{Rating: rating, Description: strings.TrimSpace(description)}
	if err := models.ValidateReview(input); err != nil {
		return Failed[struct{}](err, failure)
	}
	if err := s.backend.UpdateReview(ctx, token, reviewID, input); err != nil {
		return Failed[struct{}](reviewError("update review", err), failure)
	}
	return Succeeded(struct{}{}, "Review updated successfully!")
}

func (s *ReviewService) Delete(ctx context.Context, token string, reviewID int64) Result[struct{}] {
	if err := s.backend.DeleteReview(ctx, token, reviewID); err != nil {
		return Failed[struct{}](reviewError("delete review", err), "Failed to delete review.")
	}
	return Succeeded(struct{}{}, "Review deleted successfully!")
}

func reviewError(op string, err error) error {
	if errors.Is(err, backend.ErrNotFound) {
		return ErrReviewNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
