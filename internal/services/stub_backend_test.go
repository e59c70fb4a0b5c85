package services

import (
	"context"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type stubBackend struct {
	sessions    []models.Session
	sessionsErr error
	bookings    []models.BookingSummary
	bookingsErr error
	created     *models.BookingSummary
	mutateErr   error
	children    []models.Child
	reviews     []models.ReviewWithParent
	mine        []models.Review
	parent      *models.Parent
	parentErr   error

	lastToken     string
	lastBookingID int64
	lastRequest   models.BookingRequest
	lastChild     models.Child
	lastReview    models.ReviewInput
	lastProfile   models.CompleteProfileInput
	lastPhone     string
	calls         int
}

func (s *stubBackend) ListSessions(_ context.Context, token, _ string) ([]models.Session, error) {
	s.lastToken = token
	return s.sessions, s.sessionsErr
}

func (s *stubBackend) ListBookings(_ context.Context, token string) ([]models.BookingSummary, error) {
	s.lastToken = token
	return s.bookings, s.bookingsErr
}

func (s *stubBackend) CreateBooking(_ context.Context, _ string, req models.BookingRequest) (*models.BookingSummary, error) {
	s.calls++
	s.lastRequest = req
	return s.created, s.mutateErr
}

func (s *stubBackend) UpdateBooking(_ context.Context, _ string, bookingID int64, req models.BookingRequest) error {
	s.calls++
	s.lastBookingID = bookingID
	s.lastRequest = req
	return s.mutateErr
}

func (s *stubBackend) DeleteBooking(_ context.Context, _ string, bookingID int64) error {
	s.calls++
	s.lastBookingID = bookingID
	return s.mutateErr
}

func (s *stubBackend) ListChildren(_ context.Context, _ string) ([]models.Child, error) {
	return s.children, nil
}

func (s *stubBackend) CreateChild(_ context.Context, _ string, child models.Child) error {
	s.calls++
	s.lastChild = child
	return s.mutateErr
}

func (s *stubBackend) UpdateChild(_ context.Context, _ string, _ int64, child models.Child) error {
	s.calls++
	s.lastChild = child
	return s.mutateErr
}

func (s *stubBackend) DeleteChild(_ context.Context, _ string, _ int64) error {
	s.calls++
	return s.mutateErr
}

func (s *stubBackend) ListReviews(_ context.Context) ([]models.ReviewWithParent, error) {
	return s.reviews, nil
}

func (s *stubBackend) ListParentReviews(_ context.Context, _ string) ([]models.Review, error) {
	return s.mine, nil
}

func (s *stubBackend) CreateReview(_ context.Context, _ string, input models.ReviewInput) error {
	s.calls++
	s.lastReview = input
	return s.mutateErr
}

func (s *stubBackend) UpdateReview(_ context.Context, _ string, _ int64, input models.ReviewInput) error {
	s.calls++
	s.lastReview = input
	return s.mutateErr
}

func (s *stubBackend) DeleteReview(_ context.Context, _ string, _ int64) error {
	s.calls++
	return s.mutateErr
}

func (s *stubBackend) LoginURL(redirectURI string) string {
	return "https://api.example.com/login?redirect_uri=" + redirectURI
}

func (s *stubBackend) GetParent(_ context.Context, token string) (*models.Parent, error) {
	s.lastToken = token
	return s.parent, s.parentErr
}

func (s *stubBackend) CompleteProfile(_ context.Context, _ string, input models.CompleteProfileInput) error {
	s.calls++
	s.lastProfile = input
	return s.mutateErr
}

func (s *stubBackend) UpdatePhone(_ context.Context, _ string, phone string) error {
	s.calls++
	s.lastPhone = phone
	return s.mutateErr
}

func (s *stubBackend) Logout(_ context.Context, _ string) error {
	s.calls++
	return nil
}

type stubNotifier struct {
	dates []string
}

func (n *stubNotifier) NotifyDateChanged(date string) {
	n.dates = append(n.dates, date)
}
