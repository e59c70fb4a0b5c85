package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
)

const (
	myAccountPath  = "/account/my-account"
	myReviewsPath  = "/account/my-reviews"
	mySessionsPath = "/account/my-sessions"
)

type phoneUpdater interface {
	UpdatePhone(ctx context.Context, token, phone string) services.Result[string]
}

type childrenApplicationService interface {
	List(ctx context.Context, token string) ([]models.Child, error)
	Add(ctx context.Context, token string, child models.Child) services.Result[struct{}]
	Update(ctx context.Context, token string, childID int64, child models.Child) services.Result[struct{}]
	Delete(ctx context.Context, token string, childID int64) services.Result[struct{}]
}

type myBookingsService interface {
	ListMySessions(ctx context.Context, token string) (services.SessionBuckets, error)
	GetBooking(ctx context.Context, token string, bookingID int64) (*models.BookingSummary, error)
	UpdateBooking(ctx context.Context, token string, input services.EditBookingInput) services.Result[struct{}]
	DeleteBooking(ctx context.Context, token string, bookingID int64, date string) services.Result[struct{}]
	Quote(locationID int64, childCount int) int
}

type AccountHandler struct {
	accounts phoneUpdater
	children childrenApplicationService
	reviews  reviewApplicationService
	bookings myBookingsService
}

func NewAccountHandler(
	accounts phoneUpdater,
	children childrenApplicationService,
	reviews reviewApplicationService,
	bookings myBookingsService,
) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		children: children,
		reviews:  reviews,
		bookings: bookings,
	}
}

func (h *AccountHandler) MyAccount(c *fiber.Ctx) error {
	data := fiber.Map{
		"Tab":      "my-account",
		"Levels":   models.ExperienceLevels,
		"NewChild": models.NewChildForm(),
	}
	children, err := h.children.List(c.Context(), credential(c))
	if err != nil {
		if unauthorized(err) {
			return mapBackendError(c, err)
		}
		data["LoadError"] = "Failed to fetch children."
	}
	data["Children"] = children
	return render(c, "account/my_account", "My Account", data)
}

func (h *AccountHandler) UpdatePhone(c *fiber.Ctx) error {
	result := h.accounts.UpdatePhone(c.Context(), credential(c), c.FormValue("phone_number"))
	if result.OK() {
		s := middleware.CurrentSession(c)
		if s.User != nil {
			user := *s.User
			user.PhoneNumber = result.Value
			s.SetUser(user)
		}
	}
	return redirectAfter(c, result, myAccountPath)
}

func (h *AccountHandler) AddChild(c *fiber.Ctx) error {
	result := h.children.Add(c.Context(), credential(c), childFromForm(c))
	return redirectAfter(c, result, myAccountPath)
}

func (h *AccountHandler) UpdateChild(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid child id")
	}
	child := childFromForm(c)
	child.ID = &childID
	result := h.children.Update(c.Context(), credential(c), childID, child)
	return redirectAfter(c, result, myAccountPath)
}

func (h *AccountHandler) DeleteChild(c *fiber.Ctx) error {
	childID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid child id")
	}
	result := h.children.Delete(c.Context(), credential(c), childID)
	return redirectAfter(c, result, myAccountPath)
}

func (h *AccountHandler) MyReviews(c *fiber.Ctx) error {
	data := fiber.Map{"Tab": "my-reviews", "Ratings": ratingChoices}
	reviews, err := h.reviews.ListMine(c.Context(), credential(c))
	if err != nil {
		if unauthorized(err) {
			return mapBackendError(c, err)
		}
		data["LoadError"] = "Failed to fetch reviews."
	}
	data["Reviews"] = reviews
	return render(c, "account/my_reviews", "My Reviews", data)
}

func (h *AccountHandler) UpdateReview(c *fiber.Ctx) error {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid review id")
	}
	result := h.reviews.Update(c.Context(), credential(c), reviewID, formInt(c, "rating"), c.FormValue("description"))
	return redirectAfter(c, result, myReviewsPath)
}

func (h *AccountHandler) DeleteReview(c *fiber.Ctx) error {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid review id")
	}
	result := h.reviews.Delete(c.Context(), credential(c), reviewID)
	return redirectAfter(c, result, myReviewsPath)
}

func (h *AccountHandler) MySessions(c *fiber.Ctx) error {
	data := fiber.Map{"Tab": "my-sessions"}
	buckets, err := h.bookings.ListMySessions(c.Context(), credential(c))
	if err != nil {
		if unauthorized(err) {
			return mapBackendError(c, err)
		}
		data["LoadError"] = "Failed to fetch sessions."
	}
	data["Past"] = buckets.Past
	data["Future"] = buckets.Future
	return render(c, "account/my_sessions", "My Sessions", data)
}

func (h *AccountHandler) EditBookingForm(c *fiber.Ctx) error {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid session id")
	}
	booking, err := h.bookings.GetBooking(c.Context(), credential(c), bookingID)
	if err != nil {
		return mapBackendError(c, err)
	}

	form := bookingForm{ChildIDs: booking.ChildIDs(), Description: booking.Description}
	if location := models.FindLocationByName(booking.Location); location != nil {
		form.LocationID = location.ID
	}
	return h.renderEditBooking(c, booking, form, "")
}

func (h *AccountHandler) UpdateBooking(c *fiber.Ctx) error {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid session id")
	}

	form := bookingForm{
		LocationID:  formInt64(c, "location_id"),
		ChildIDs:    formIDs(c, "child_ids"),
		Description: c.FormValue("description"),
	}
	result := h.bookings.UpdateBooking(c.Context(), credential(c), services.EditBookingInput{
		BookingID:   bookingID,
		Date:        c.FormValue("date"),
		LocationID:  form.LocationID,
		ChildIDs:    form.ChildIDs,
		Description: form.Description,
	})
	if result.OK() || !services.IsValidationError(result.Err) {
		return redirectAfter(c, result, mySessionsPath)
	}

	booking, err := h.bookings.GetBooking(c.Context(), credential(c), bookingID)
	if err != nil {
		return mapBackendError(c, err)
	}
	c.Status(fiber.StatusUnprocessableEntity)
	return h.renderEditBooking(c, booking, form, result.Message)
}

func (h *AccountHandler) DeleteBooking(c *fiber.Ctx) error {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return renderError(c, fiber.StatusBadRequest, "Invalid session id")
	}
	result := h.bookings.DeleteBooking(c.Context(), credential(c), bookingID, c.FormValue("date"))
	return redirectAfter(c, result, mySessionsPath)
}

func (h *AccountHandler) renderEditBooking(
	c *fiber.Ctx,
	booking *models.BookingSummary,
	form bookingForm,
	errMessage string,
) error {
	children, err := h.children.List(c.Context(), credential(c))
	if err != nil {
		return mapBackendError(c, err)
	}
	return render(c, "account/edit_booking", "Edit session", fiber.Map{
		"Tab":       "my-sessions",
		"Booking":   booking,
		"Locations": models.Locations,
		"Children":  children,
		"Form":      form,
		"Price":     h.bookings.Quote(form.LocationID, len(form.ChildIDs)),
		"Error":     errMessage,
	})
}

func childFromForm(c *fiber.Ctx) models.Child {
	return buildChild(c.FormValue("first_name"), c.FormValue("last_name"), c.FormValue("birth_year"), c.FormValue("experience"))
}

func buildChild(firstName, lastName, birthYear, experience string) models.Child {
	year, err := strconv.Atoi(strings.TrimSpace(birthYear))
	if err != nil {
		year = 0
	}
	level, err := models.ParseExperienceLevel(experience)
	if err != nil {
		level = models.ExperienceLevel(experience)
	}
	return models.Child{
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		BirthYear:  year,
		Experience: level,
	}
}
