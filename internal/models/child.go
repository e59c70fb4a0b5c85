package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ExperienceLevel is the ranked skill label stored on a child, e.g. "1 - Beginner".
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "1 - Beginner"
	ExperienceNovice       ExperienceLevel = "2 - Novice"
	ExperienceIntermediate ExperienceLevel = "3 - Intermediate"
	ExperienceAdvanced     ExperienceLevel = "4 - Advanced"
	ExperienceElite        ExperienceLevel = "5 - Elite"
)

const DefaultBirthYear = 2000

var ExperienceLevels = []ExperienceLevel{
	ExperienceBeginner,
	ExperienceNovice,
	ExperienceIntermediate,
	ExperienceAdvanced,
	ExperienceElite,
}

var birthYearPattern = regexp.MustCompile(`^\d{4}$`)

type Child struct {
	ID         *int64          `json:"id,omitempty"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	BirthYear  int             `json:"birth_year"`
	Experience ExperienceLevel `json:"experience,omitempty"`
}

// NewChildForm returns the blank values the child forms start from.
func NewChildForm() Child {
	return Child{BirthYear: DefaultBirthYear, Experience: ExperienceBeginner}
}

func (c Child) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Child) IDValue() int64 {
	if c.ID == nil {
		return 0
	}
	return *c.ID
}

// Rank returns 1..5 for a known level and 0 otherwise.
func (l ExperienceLevel) Rank() int {
	for i, level := range ExperienceLevels {
		if level == l {
			return i + 1
		}
	}
	return 0
}

func (l ExperienceLevel) Label() string {
	_, label, found := strings.Cut(string(l), " - ")
	if !found {
		return string(l)
	}
	return label
}

// ParseExperienceLevel accepts either the wire form ("3 - Intermediate"), the bare
// label ("Intermediate", any case) or the rank ("3").
func ParseExperienceLevel(value string) (ExperienceLevel, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ExperienceBeginner, nil
	}
	if rank, err := strconv.Atoi(value); err == nil {
		if rank >= 1 && rank <= len(ExperienceLevels) {
			return ExperienceLevels[rank-1], nil
		}
		return "", fmt.Errorf("%w: experience rank %d", ErrInvalidChild, rank)
	}
	for _, level := range ExperienceLevels {
		if string(level) == value || strings.EqualFold(level.Label(), value) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: unknown experience %q", ErrInvalidChild, value)
}

func IsValidBirthYear(year int) bool {
	return birthYearPattern.MatchString(strconv.Itoa(year))
}

// ValidateChild mirrors the form check used everywhere a child is added or edited:
// both names present and a four digit birth year.
func ValidateChild(child Child) error {
	if strings.TrimSpace(child.FirstName) == "" || strings.TrimSpace(child.LastName) == "" {
		return ErrInvalidChild
	}
	if !IsValidBirthYear(child.BirthYear) {
		return ErrInvalidChild
	}
	if child.Experience != "" && child.Experience.Rank() == 0 {
		return ErrInvalidChild
	}
	return nil
}
