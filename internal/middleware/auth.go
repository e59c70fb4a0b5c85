package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	LoginPath           = "/login"
	CompleteProfilePath = "/complete-profile"
)

// RequireLogin sends anonymous visitors to the login prompt and remembers where
// they were going.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := CurrentSession(c)
		if !s.LoggedIn() {
			if c.Method() == fiber.MethodGet {
				s.SetReturnPath(c.OriginalURL())
			}
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireCompleteProfile must run after RequireLogin. Parents without a phone number
// are sent to finish their profile first.
func RequireCompleteProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := CurrentSession(c)
		if !s.ProfileComplete {
			if c.Method() == fiber.MethodGet {
				s.SetReturnPath(c.OriginalURL())
			}
			return c.Redirect(CompleteProfilePath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
