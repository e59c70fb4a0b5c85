package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/internal/backend"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
	"github.com/saeid-a/KickoffCoachWeb/internal/session"
	"github.com/saeid-a/KickoffCoachWeb/internal/views"
)

// render fills in the layout data every page needs and renders name in the main layout.
func render(c *fiber.Ctx, name, title string, data fiber.Map) error {
	s := middleware.CurrentSession(c)
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["LoggedIn"] = s.LoggedIn()
	data["ProfileComplete"] = s.ProfileComplete
	data["User"] = s.User
	data["Flashes"] = s.PopFlashes()
	return c.Render(name, data, views.Layout)
}

func renderError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return render(c, "error", "Error", fiber.Map{"Status": status, "Message": message})
}

// flashResult records the outcome of a mutation for the next page.
func flashResult[T any](c *fiber.Ctx, result services.Result[T]) {
	message, ok := result.Flash()
	if message == "" {
		return
	}
	variant := session.FlashSuccess
	if !ok {
		variant = session.FlashDanger
	}
	middleware.CurrentSession(c).AddFlash(message, variant)
}

// redirectAfter flashes result and sends the browser to path, which reloads the
// affected list. An expired backend credential logs the browser session out instead.
func redirectAfter[T any](c *fiber.Ctx, result services.Result[T], path string) error {
	flashResult(c, result)
	if result.Unauthorized() {
		middleware.CurrentSession(c).ClearAuth()
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

// mapBackendError handles a failed page load.
func mapBackendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		s := middleware.CurrentSession(c)
		s.ClearAuth()
		s.AddFlash("Your session has expired. Please log in again.", session.FlashDanger)
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	case errors.Is(err, services.ErrBookingNotFound), errors.Is(err, backend.ErrNotFound):
		return renderError(c, fiber.StatusNotFound, "We couldn't find that.")
	default:
		return renderError(c, fiber.StatusBadGateway, "Something went wrong talking to the booking service. Please try again.")
	}
}

func credential(c *fiber.Ctx) string {
	return middleware.CurrentSession(c).BackendToken
}

func parseIDParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formValues returns every value posted under key, in order.
func formValues(c *fiber.Ctx, key string) []string {
	raw := c.Request().PostArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		values = append(values, string(value))
	}
	return values
}

func formIDs(c *fiber.Ctx, key string) []int64 {
	values := formValues(c, key)
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func formInt(c *fiber.Ctx, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.FormValue(key)))
	if err != nil {
		return 0
	}
	return value
}

func formInt64(c *fiber.Ctx, key string) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(c.FormValue(key)), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func unauthorized(err error) bool {
	return errors.Is(err, backend.ErrUnauthorized)
}

func NotFound(c *fiber.Ctx) error {
	return renderError(c, fiber.StatusNotFound, "Page not found.")
}

// ErrorHandler renders unhandled errors with the error page instead of plain text.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong. Please try again."
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		if renderErr := renderError(c, code, message); renderErr != nil {
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
