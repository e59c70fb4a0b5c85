package models

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// Parent is the account record the backend returns from /parents/me.
type Parent struct {
	ID          int64   `json:"id,omitempty"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type User struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (p Parent) User() User {
	user := User{
		Name:  strings.TrimSpace(p.FirstName + " " + p.LastName),
		Email: p.Email,
	}
	if p.PhoneNumber != nil {
		user.PhoneNumber = *p.PhoneNumber
	}
	if user.Name == "" {
		user.Name = "User"
	}
	return user
}

// ProfileComplete reports whether the user has a phone number on file.
func (u User) ProfileComplete() bool {
	return strings.TrimSpace(u.PhoneNumber) != ""
}

func NormalizePhone(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

func IsValidPhone(value string) bool {
	return len(NormalizePhone(value)) == 10
}

type CompleteProfileInput struct {
	PhoneNumber string  `json:"phone_number"`
	Children    []Child `json:"children"`
}

func ValidateCompleteProfile(input CompleteProfileInput) error {
	if !IsValidPhone(input.PhoneNumber) {
		return ErrInvalidPhone
	}
	if len(input.Children) == 0 {
		return ErrInvalidChild
	}
	for _, child := range input.Children {
		if err := ValidateChild(child); err != nil {
			return err
		}
	}
	return nil
}
