package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/session"
)

type authApplicationService interface {
	LoginURL(redirectURI string) string
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type sessionLifecycle interface {
	Login(ctx context.Context, s *session.Session, credential string, user models.User) error
	Logout(ctx context.Context, s *session.Session) error
}

type AuthHandler struct {
	accounts    authApplicationService
	sessions    sessionLifecycle
	callbackURL string
	logger      zerolog.Logger
}

func NewAuthHandler(
	accounts authApplicationService,
	sessions sessionLifecycle,
	callbackURL string,
	logger zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts:    accounts,
		sessions:    sessions,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

func (h *AuthHandler) LoginPrompt(c *fiber.Ctx) error {
	if middleware.CurrentSession(c).LoggedIn() {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return render(c, "login", "Log in", nil)
}

// StartLogin hands the browser to the backend's login flow.
func (h *AuthHandler) StartLogin(c *fiber.Ctx) error {
	return c.Redirect(h.accounts.LoginURL(h.callbackURL), fiber.StatusSeeOther)
}

// Callback receives the backend credential after a successful login.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		s.AddFlash("Login failed. Please try again.", session.FlashDanger)
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}

	user, err := h.accounts.Authenticate(c.Context(), token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("login callback rejected")
		s.AddFlash("Login failed. Please try again.", session.FlashDanger)
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}

	if err := h.sessions.Login(c.Context(), s, token, *user); err != nil {
		h.logger.Error().Err(err).Msg("store login session")
		return renderError(c, fiber.StatusServiceUnavailable, "We couldn't sign you in right now. Please try again.")
	}

	if !s.ProfileComplete {
		return c.Redirect(middleware.CompleteProfilePath, fiber.StatusSeeOther)
	}
	return c.Redirect(s.TakeReturnPath("/"), fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	if err := h.accounts.Logout(c.Context(), s.BackendToken); err != nil {
		h.logger.Warn().Err(err).Msg("backend logout")
	}

	s.AddFlash("You have been logged out.", session.FlashSuccess)
	if err := h.sessions.Logout(c.Context(), s); err != nil {
		h.logger.Error().Err(err).Msg("clear session")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
