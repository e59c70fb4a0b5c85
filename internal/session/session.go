package session

import (
	"time"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type FlashVariant string

const (
	FlashSuccess FlashVariant = "success"
	FlashDanger  FlashVariant = "danger"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Message string       `json:"message"`
	Variant FlashVariant `json:"variant"`
}

// Session is the per-browser state: who is signed in, the credential forwarded to the
// backend, and anything that has to survive a redirect.
type Session struct {
	ID              string       `json:"id"`
	BackendToken    string       `json:"backend_token,omitempty"`
	User            *models.User `json:"user,omitempty"`
	ProfileComplete bool         `json:"profile_complete"`
	ReturnPath      string       `json:"return_path,omitempty"`
	Flashes         []Flash      `json:"flashes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	// Version counts successful saves; a Store rejects a save whose Version is no
	// longer the stored one.
	Version int64 `json:"version"`

	dirty bool
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.BackendToken != "" && s.User != nil
}

func (s *Session) AddFlash(message string, variant FlashVariant) {
	s.Flashes = append(s.Flashes, Flash{Message: message, Variant: variant})
	s.dirty = true
}

// PopFlashes returns pending flashes and clears them.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return flashes
}

func (s *Session) SetReturnPath(path string) {
	s.ReturnPath = path
	s.dirty = true
}

// TakeReturnPath returns the remembered path, or fallback, and forgets it.
func (s *Session) TakeReturnPath(fallback string) string {
	path := s.ReturnPath
	if path == "" {
		return fallback
	}
	s.ReturnPath = ""
	s.dirty = true
	return path
}

// SetUser refreshes the cached account details after a profile change.
func (s *Session) SetUser(user models.User) {
	s.User = &user
	s.ProfileComplete = user.ProfileComplete()
	s.dirty = true
}

// ClearAuth forgets the credential and account but keeps pending flashes.
func (s *Session) ClearAuth() {
	s.BackendToken = ""
	s.User = nil
	s.ProfileComplete = false
	s.ReturnPath = ""
	s.dirty = true
}

func (s *Session) MarkProfileComplete() {
	s.ProfileComplete = true
	s.dirty = true
}

func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
