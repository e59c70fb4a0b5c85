package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/internal/session"
)

const (
	SessionCookieName = "kickoff_session"
	localsSession     = "session"
)

type sessionManager interface {
	Load(ctx context.Context, cookie string) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) (string, error)
	TTL() time.Duration
}

// Sessions loads the browser session before the handler runs and persists it, with
// a refreshed cookie, when the handler changed it.
func Sessions(manager sessionManager, secure bool, logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := manager.Load(c.UserContext(), c.Cookies(SessionCookieName))
		if err != nil {
			logger.Error().Err(err).Msg("load session")
			return fiber.NewError(fiber.StatusServiceUnavailable, "Session store unavailable")
		}
		c.Locals(localsSession, s)

		handlerErr := c.Next()

		if s.Dirty() {
			value, err := manager.Save(c.UserContext(), s)
			if errors.Is(err, session.ErrConflict) {
				logger.Info().Str("session_id", s.ID).Msg("discarding stale session write")
				return handlerErr
			}
			if err != nil {
				logger.Error().Err(err).Str("session_id", s.ID).Msg("save session")
				return handlerErr
			}
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    value,
				Path:     "/",
				Expires:  s.ExpiresAt,
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return handlerErr
	}
}

// CurrentSession returns the session loaded by Sessions. Outside of that middleware
// it returns an empty anonymous session so callers never see nil.
func CurrentSession(c *fiber.Ctx) *session.Session {
	if s, ok := c.Locals(localsSession).(*session.Session); ok && s != nil {
		return s
	}
	s := &session.Session{}
	c.Locals(localsSession, s)
	return s
}
