package models

import "errors"

var (
	ErrInvalidChild       = errors.New("please fill out all child fields correctly")
	ErrInvalidPhone       = errors.New("please enter a valid 10-digit phone number")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrNoChildrenSelected = errors.New("please select at least one child")
	ErrNoLocation         = errors.New("please select a location")
)
