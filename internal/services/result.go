package services

import (
	"errors"
	"strings"

	"github.com/saeid-a/KickoffCoachWeb/internal/backend"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

// Result is the outcome of a mutation. Callers decide from OK whether to refetch the
// affected list or to re-render the form that produced it.
type Result[T any] struct {
	Value   T
	Err     error
	Message string
}

func Succeeded[T any](value T, message string) Result[T] {
	return Result[T]{Value: value, Message: message}
}

// Failed keeps err for callers and picks the message shown to the user: validation
// errors speak for themselves, everything else falls back to a generic line.
func Failed[T any](err error, fallback string) Result[T] {
	return Result[T]{Err: err, Message: userMessage(err, fallback)}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Flash returns the notification text and whether it reports a success.
func (r Result[T]) Flash() (string, bool) {
	return r.Message, r.OK()
}

func (r Result[T]) Unauthorized() bool {
	return errors.Is(r.Err, backend.ErrUnauthorized)
}

var validationErrors = []error{
	models.ErrInvalidChild,
	models.ErrInvalidPhone,
	models.ErrInvalidRating,
	models.ErrEmptyDescription,
	models.ErrNoChildrenSelected,
	models.ErrNoLocation,
	ErrInvalidDate,
	ErrPastDate,
	ErrSlotUnavailable,
	ErrBookingNotFound,
	ErrReviewNotFound,
}

func userMessage(err error, fallback string) string {
	if errors.Is(err, backend.ErrUnauthorized) {
		return sessionExpiredMessage
	}
	if sentinel := validationSentinel(err); sentinel != nil {
		return capitalize(sentinel.Error()) + "."
	}
	return fallback
}

// IsValidationError reports whether err carries a message meant for the user.
func IsValidationError(err error) bool {
	return validationSentinel(err) != nil
}

func validationSentinel(err error) error {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func capitalize(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
