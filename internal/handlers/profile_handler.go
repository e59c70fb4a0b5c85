package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
	"github.com/saeid-a/KickoffCoachWeb/internal/views"
)

const maxChildRows = 10

type profileCompleter interface {
	CompleteProfile(ctx context.Context, token string, input models.CompleteProfileInput) services.Result[string]
}

type ProfileHandler struct {
	accounts profileCompleter
}

func NewProfileHandler(accounts profileCompleter) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

func (h *ProfileHandler) CompleteProfileForm(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if s.ProfileComplete {
		return c.Redirect(s.TakeReturnPath("/"), fiber.StatusSeeOther)
	}

	rows := clampRows(c.QueryInt("rows", 1))
	children := make([]models.Child, rows)
	for i := range children {
		children[i] = models.NewChildForm()
	}
	return h.renderForm(c, "", children, "")
}

func (h *ProfileHandler) CompleteProfile(c *fiber.Ctx) error {
	phone := c.FormValue("phone_number")
	children := childrenFromForm(c)

	if c.FormValue("add_row") != "" {
		rows := clampRows(c.QueryInt("rows", len(children)+1))
		for len(children) < rows {
			children = append(children, models.NewChildForm())
		}
		return h.renderForm(c, phone, children, "")
	}

	input := models.CompleteProfileInput{PhoneNumber: phone, Children: nonBlankChildren(children)}
	result := h.accounts.CompleteProfile(c.Context(), credential(c), input)
	if !result.OK() {
		if !services.IsValidationError(result.Err) {
			return redirectAfter(c, result, middleware.CompleteProfilePath)
		}
		if len(children) == 0 {
			children = append(children, models.NewChildForm())
		}
		c.Status(fiber.StatusUnprocessableEntity)
		return h.renderForm(c, phone, children, result.Message)
	}

	s := middleware.CurrentSession(c)
	if s.User != nil {
		user := *s.User
		user.PhoneNumber = result.Value
		s.SetUser(user)
	}
	s.MarkProfileComplete()
	flashResult(c, result)
	return c.Redirect(s.TakeReturnPath("/"), fiber.StatusSeeOther)
}

func (h *ProfileHandler) renderForm(c *fiber.Ctx, phone string, children []models.Child, errMessage string) error {
	rows := make([]views.ChildRow, 0, len(children))
	for _, child := range children {
		rows = append(rows, views.NewChildRow(child, models.ExperienceLevels))
	}
	return render(c, "complete_profile", "Complete your profile", fiber.Map{
		"Phone": phone,
		"Rows":  rows,
		"Error": errMessage,
	})
}

// childrenFromForm zips the repeated child fields back into rows.
func childrenFromForm(c *fiber.Ctx) []models.Child {
	firstNames := formValues(c, "first_name")
	lastNames := formValues(c, "last_name")
	birthYears := formValues(c, "birth_year")
	experiences := formValues(c, "experience")

	children := make([]models.Child, 0, len(firstNames))
	for i := range firstNames {
		children = append(children, buildChild(
			firstNames[i],
			valueAt(lastNames, i),
			valueAt(birthYears, i),
			valueAt(experiences, i),
		))
	}
	return children
}

func nonBlankChildren(children []models.Child) []models.Child {
	kept := make([]models.Child, 0, len(children))
	for _, child := range children {
		if child.FirstName == "" && child.LastName == "" {
			continue
		}
		kept = append(kept, child)
	}
	return kept
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func clampRows(rows int) int {
	if rows < 1 {
		return 1
	}
	if rows > maxChildRows {
		return maxChildRows
	}
	return rows
}
