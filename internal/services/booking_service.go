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

type bookingBackend interface {
	ListSessions(ctx context.Context, token, date string) ([]models.Session, error)
	ListBookings(ctx context.Context, token string) ([]models.BookingSummary, error)
	CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.BookingSummary, error)
	UpdateBooking(ctx context.Context, token string, bookingID int64, req models.BookingRequest) error
	DeleteBooking(ctx context.Context, token string, bookingID int64) error
}

// AvailabilityNotifier is told when the open sessions of a date may have changed.
type AvailabilityNotifier interface {
	NotifyDateChanged(date string)
}

type BookingService struct {
	backend  bookingBackend
	notifier AvailabilityNotifier
	location *time.Location
	now      func() time.Time
}

func NewBookingService(
	backend bookingBackend,
	notifier AvailabilityNotifier,
	location *time.Location,
) *BookingService {
	if location == nil {
		location = time.Local
	}
	return &BookingService{
		backend:  backend,
		notifier: notifier,
		location: location,
		now:      time.Now,
	}
}

// Slot is a bookable session with its times already formatted for display.
type Slot struct {
	models.Session
	StartDisplay string
	EndDisplay   string
}

type BookingInput struct {
	SessionID   int64
	Date        string
	LocationID  int64
	ChildIDs    []int64
	Description string
}

type EditBookingInput struct {
	BookingID   int64
	Date        string
	LocationID  int64
	ChildIDs    []int64
	Description string
}

func (s *BookingService) Today() string {
	return Today(s.now(), s.location)
}

// ResolveDate validates a calendar date from a URL. Empty means today.
func (s *BookingService) ResolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), nil
	}
	day, err := time.ParseInLocation(DateLayout, date, s.location)
	if err != nil {
		return "", ErrInvalidDate
	}
	if day.Before(StartOfDay(s.now().In(s.location))) {
		return "", ErrPastDate
	}
	return day.Format(DateLayout), nil
}

func (s *BookingService) ListSlots(ctx context.Context, token, date string) ([]Slot, error) {
	sessions, err := s.backend.ListSessions(ctx, token, date)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	slots := make([]Slot, 0, len(sessions))
	for _, session := range sessions {
		slots = append(slots, Slot{
			Session:      session,
			StartDisplay: FormatTime(session.StartTime, session.Date),
			EndDisplay:   FormatTime(session.EndTime, session.Date),
		})
	}
	return slots, nil
}

// FindSlot returns the session with the given id on date, or ErrSlotUnavailable when
// it is gone or already booked.
func (s *BookingService) FindSlot(ctx context.Context, token, date string, sessionID int64) (*Slot, error) {
	slots, err := s.ListSlots(ctx, token, date)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == sessionID {
			if slots[i].Booked {
				return nil, ErrSlotUnavailable
			}
			return &slots[i], nil
		}
	}
	return nil, ErrSlotUnavailable
}

// Quote prices a booking. An unknown or unset location adds no surcharge.
func (s *BookingService) Quote(locationID int64, childCount int) int {
	return ComputePrice(models.FindLocationByID(locationID), childCount)
}

func (s *BookingService) CreateBooking(
	ctx context.Context,
	token string,
	input BookingInput,
) Result[*models.BookingSummary] {
	const failure = "Booking failed."

	req, err := s.buildRequest(input.LocationID, input.ChildIDs, input.Description)
	if err != nil {
		return Failed[*models.BookingSummary](err, failure)
	}
	if _, err := s.FindSlot(ctx, token, input.Date, input.SessionID); err != nil {
		return Failed[*models.BookingSummary](err, failure)
	}

	sessionID := input.SessionID
	req.SessionID = &sessionID
	booking, err := s.backend.CreateBooking(ctx, token, req)
	if err != nil {
		return Failed[*models.BookingSummary](fmt.Errorf("create booking: %w", err), failure)
	}

	s.notify(input.Date)
	return Succeeded(booking, "Booking successful!")
}

func (s *BookingService) UpdateBooking(ctx context.Context, token string, input EditBookingInput) Result[struct{}] {
	const failure = "Failed to update session."

	req, err := s.buildRequest(input.LocationID, input.ChildIDs, input.Description)
	if err != nil {
		return Failed[struct{}](err, failure)
	}
	if err := s.backend.UpdateBooking(ctx, token, input.BookingID, req); err != nil {
		return Failed[struct{}](s.wrapNotFound("update booking", err), failure)
	}

	s.notify(input.Date)
	return Succeeded(struct{}{}, "Session updated successfully!")
}

func (s *BookingService) DeleteBooking(ctx context.Context, token string, bookingID int64, date string) Result[struct{}] {
	if err := s.backend.DeleteBooking(ctx, token, bookingID); err != nil {
		return Failed[struct{}](s.wrapNotFound("delete booking", err), "Failed to delete session.")
	}

	s.notify(date)
	return Succeeded(struct{}{}, "Session deleted successfully!")
}

func (s *BookingService) ListMySessions(ctx context.Context, token string) (SessionBuckets, error) {
	bookings, err := s.backend.ListBookings(ctx, token)
	if err != nil {
		return SessionBuckets{}, fmt.Errorf("list bookings: %w", err)
	}
	return BucketSessions(bookings, s.now().In(s.location)), nil
}

func (s *BookingService) GetBooking(ctx context.Context, token string, bookingID int64) (*models.BookingSummary, error) {
	bookings, err := s.backend.ListBookings(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

func (s *BookingService) buildRequest(locationID int64, childIDs []int64, description string) (models.BookingRequest, error) {
	location := models.FindLocationByID(locationID)
	if location == nil {
		return models.BookingRequest{}, models.ErrNoLocation
	}
	childIDs = uniqueIDs(childIDs)
	if len(childIDs) == 0 {
		return models.BookingRequest{}, models.ErrNoChildrenSelected
	}

	return models.BookingRequest{
		Price:       ComputePrice(location, len(childIDs)),
		NumOfKids:   len(childIDs),
		ChildIDs:    childIDs,
		Description: strings.TrimSpace(description),
		Location:    location.Name,
	}, nil
}

func (s *BookingService) wrapNotFound(op string, err error) error {
	if errors.Is(err, backend.ErrNotFound) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *BookingService) notify(date string) {
	if s.notifier != nil && date != "" {
		s.notifier.NotifyDateChanged(date)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
