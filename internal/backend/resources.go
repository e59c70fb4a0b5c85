package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

func (c *Client) ListSessions(ctx context.Context, token, date string) ([]models.Session, error) {
	var sessions []models.Session
	if err := c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(date), token, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]models.BookingSummary, error) {
	var bookings []models.BookingSummary
	if err := c.do(ctx, http.MethodGet, "/bookings", token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.BookingSummary, error) {
	var booking models.BookingSummary
	if err := c.do(ctx, http.MethodPost, "/bookings", token, req, &booking, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBooking(ctx context.Context, token string, bookingID int64, req models.BookingRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d/", bookingID), token, req, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, token string, bookingID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", bookingID), token, nil, nil, http.StatusNoContent)
}

func (c *Client) ListChildren(ctx context.Context, token string) ([]models.Child, error) {
	var children []models.Child
	if err := c.do(ctx, http.MethodGet, "/children/", token, nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

func (c *Client) CreateChild(ctx context.Context, token string, child models.Child) error {
	child.ID = nil
	return c.do(ctx, http.MethodPost, "/children/", token, child, nil, http.StatusOK, http.StatusCreated)
}

func (c *Client) UpdateChild(ctx context.Context, token string, childID int64, child models.Child) error {
	child.ID = &childID
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/children/%d", childID), token, child, nil)
}

func (c *Client) DeleteChild(ctx context.Context, token string, childID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/children/%d", childID), token, nil, nil, http.StatusOK, http.StatusNoContent)
}

func (c *Client) ListReviews(ctx context.Context) ([]models.ReviewWithParent, error) {
	var reviews []models.ReviewWithParent
	if err := c.do(ctx, http.MethodGet, "/reviews/", "", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) ListParentReviews(ctx context.Context, token string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, "/reviews/by_parent", token, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, input models.ReviewInput) error {
	return c.do(ctx, http.MethodPost, "/reviews/", token, input, nil, http.StatusOK, http.StatusCreated)
}

func (c *Client) UpdateReview(ctx context.Context, token string, reviewID int64, input models.ReviewInput) error {
	input.Date = ""
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/reviews/%d", reviewID), token, input, nil)
}

func (c *Client) DeleteReview(ctx context.Context, token string, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), token, nil, nil, http.StatusOK, http.StatusNoContent)
}

func (c *Client) GetParent(ctx context.Context, token string) (*models.Parent, error) {
	var parent models.Parent
	if err := c.do(ctx, http.MethodGet, "/parents/me", token, nil, &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

func (c *Client) CompleteProfile(ctx context.Context, token string, input models.CompleteProfileInput) error {
	children := make([]models.Child, 0, len(input.Children))
	for _, child := range input.Children {
		child.ID = nil
		children = append(children, child)
	}
	input.Children = children
	return c.do(ctx, http.MethodPut, "/parents/me", token, input, nil)
}

func (c *Client) UpdatePhone(ctx context.Context, token, phone string) error {
	return c.do(ctx, http.MethodPut, "/parents/phone", token, map[string]string{"phone_number": phone}, nil)
}

// Logout tells the backend to drop its session. Any response counts as done; only
// transport failures are reported.
func (c *Client) Logout(ctx context.Context, token string) error {
	err := c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil
	}
	return err
}
