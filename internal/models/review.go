package models

import "strings"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID          int64  `json:"id"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ParentID    int64  `json:"parent_id"`
}

// ReviewWithParent is the public listing shape, joined with the author's first name.
type ReviewWithParent struct {
	Review
	FirstName string `json:"first_name"`
}

type ReviewInput struct {
	Date        string `json:"date,omitempty"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

func ValidateReview(input ReviewInput) error {
	if input.Rating < MinRating || input.Rating > MaxRating {
		return ErrInvalidRating
	}
	if strings.TrimSpace(input.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}
