package services

import "errors"

var (
	ErrInvalidDate      = errors.New("please choose a valid date")
	ErrPastDate         = errors.New("sessions in the past cannot be booked")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrSlotUnavailable  = errors.New("session is no longer available")
	ErrNotAuthenticated = errors.New("not authenticated")
)
