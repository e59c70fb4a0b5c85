package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
)

type bookingApplicationService interface {
	Today() string
	ResolveDate(date string) (string, error)
	ListSlots(ctx context.Context, token, date string) ([]services.Slot, error)
	FindSlot(ctx context.Context, token, date string, sessionID int64) (*services.Slot, error)
	Quote(locationID int64, childCount int) int
	CreateBooking(ctx context.Context, token string, input services.BookingInput) services.Result[*models.BookingSummary]
}

type childLister interface {
	List(ctx context.Context, token string) ([]models.Child, error)
}

type BookingHandler struct {
	bookings bookingApplicationService
	children childLister
}

func NewBookingHandler(bookings bookingApplicationService, children childLister) *BookingHandler {
	return &BookingHandler{bookings: bookings, children: children}
}

type bookingForm struct {
	LocationID  int64
	ChildIDs    []int64
	Description string
}

// Index sends "/" and "/book" to today's calendar, or to ?date= when given.
func (h *BookingHandler) Index(c *fiber.Ctx) error {
	date, err := h.bookings.ResolveDate(c.Query("date"))
	if err != nil {
		date = h.bookings.Today()
	}
	return c.Redirect("/book/"+date, fiber.StatusSeeOther)
}

func (h *BookingHandler) Calendar(c *fiber.Ctx) error {
	date, err := h.bookings.ResolveDate(c.Params("date"))
	if err != nil {
		return c.Redirect("/book/"+h.bookings.Today(), fiber.StatusSeeOther)
	}

	data := fiber.Map{"Date": date, "Today": h.bookings.Today()}
	slots, err := h.bookings.ListSlots(c.Context(), credential(c), date)
	if err != nil {
		data["Error"] = "Failed to fetch sessions."
	}
	data["Slots"] = slots
	return render(c, "booking", "Book a session", data)
}

func (h *BookingHandler) FinishBookingForm(c *fiber.Ctx) error {
	date, slot, err := h.resolveSlot(c)
	if err != nil {
		return h.slotError(c, date, err)
	}

	children, err := h.children.List(c.Context(), credential(c))
	if err != nil {
		return mapBackendError(c, err)
	}
	form := bookingForm{LocationID: models.Locations[0].ID}
	return h.renderFinish(c, date, slot, children, form, "")
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	date, slot, err := h.resolveSlot(c)
	if err != nil {
		return h.slotError(c, date, err)
	}

	form := bookingForm{
		LocationID:  formInt64(c, "location_id"),
		ChildIDs:    formIDs(c, "child_ids"),
		Description: c.FormValue("description"),
	}
	result := h.bookings.CreateBooking(c.Context(), credential(c), services.BookingInput{
		SessionID:   slot.ID,
		Date:        date,
		LocationID:  form.LocationID,
		ChildIDs:    form.ChildIDs,
		Description: form.Description,
	})
	if result.OK() || result.Unauthorized() || errors.Is(result.Err, services.ErrSlotUnavailable) {
		return redirectAfter(c, result, "/book/"+date)
	}

	children, err := h.children.List(c.Context(), credential(c))
	if err != nil {
		return mapBackendError(c, err)
	}
	c.Status(fiber.StatusUnprocessableEntity)
	return h.renderFinish(c, date, slot, children, form, result.Message)
}

// Quote returns the live price for the finish-booking and edit-booking forms.
func (h *BookingHandler) Quote(c *fiber.Ctx) error {
	locationID, _ := strconv.ParseInt(c.Query("location_id"), 10, 64)
	children := c.QueryInt("children", 0)
	if children < 0 || children > services.MaxQuoteChildren {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid children count"})
	}
	return c.JSON(fiber.Map{"price": h.bookings.Quote(locationID, children)})
}

func (h *BookingHandler) resolveSlot(c *fiber.Ctx) (string, *services.Slot, error) {
	date, err := h.bookings.ResolveDate(c.Params("date"))
	if err != nil {
		return "", nil, err
	}
	sessionID, ok := parseIDParam(c, "sessionID")
	if !ok {
		return date, nil, services.ErrSlotUnavailable
	}
	slot, err := h.bookings.FindSlot(c.Context(), credential(c), date, sessionID)
	return date, slot, err
}

func (h *BookingHandler) slotError(c *fiber.Ctx, date string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrPastDate):
		return c.Redirect("/book/"+h.bookings.Today(), fiber.StatusSeeOther)
	case errors.Is(err, services.ErrSlotUnavailable):
		return redirectAfter(c, services.Failed[struct{}](err, ""), "/book/"+date)
	default:
		return mapBackendError(c, err)
	}
}

func (h *BookingHandler) renderFinish(
	c *fiber.Ctx,
	date string,
	slot *services.Slot,
	children []models.Child,
	form bookingForm,
	errMessage string,
) error {
	return render(c, "finish_booking", "Finish booking", fiber.Map{
		"Date":      date,
		"Slot":      slot,
		"Locations": models.Locations,
		"Children":  children,
		"Form":      form,
		"Price":     h.bookings.Quote(form.LocationID, len(form.ChildIDs)),
		"Error":     errMessage,
	})
}
