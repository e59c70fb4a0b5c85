package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type accountBackend interface {
	LoginURL(redirectURI string) string
	GetParent(ctx context.Context, token string) (*models.Parent, error)
	CompleteProfile(ctx context.Context, token string, input models.CompleteProfileInput) error
	UpdatePhone(ctx context.Context, token, phone string) error
	Logout(ctx context.Context, token string) error
}

type AccountService struct {
	backend accountBackend
}

func NewAccountService(backend accountBackend) *AccountService {
	return &AccountService{backend: backend}
}

func (s *AccountService) LoginURL(redirectURI string) string {
	return s.backend.LoginURL(redirectURI)
}

// Authenticate resolves the account behind a backend credential.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNotAuthenticated
	}
	parent, err := s.backend.GetParent(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get parent: %w", err)
	}
	user := parent.User()
	return &user, nil
}

func (s *AccountService) GetParent(ctx context.Context, token string) (*models.Parent, error) {
	parent, err := s.backend.GetParent(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get parent: %w", err)
	}
	return parent, nil
}

// UpdatePhone stores the digits of phone and returns them.
func (s *AccountService) UpdatePhone(ctx context.Context, token, phone string) Result[string] {
	const failure = "Failed to update phone number."

	if !models.IsValidPhone(phone) {
		return Failed[string](models.ErrInvalidPhone, failure)
	}
	normalized := models.NormalizePhone(phone)
	if err := s.backend.UpdatePhone(ctx, token, normalized); err != nil {
		return Failed[string](fmt.Errorf("update phone: %w", err), failure)
	}
	return Succeeded(normalized, "Phone number updated successfully!")
}

// CompleteProfile sends the phone number together with the first children. The
// returned value is the normalized phone number.
func (s *AccountService) CompleteProfile(
	ctx context.Context,
	token string,
	input models.CompleteProfileInput,
) Result[string] {
	const failure = "Failed to update profile."

	for i := range input.Children {
		input.Children[i].FirstName = strings.TrimSpace(input.Children[i].FirstName)
		input.Children[i].LastName = strings.TrimSpace(input.Children[i].LastName)
	}
	if err := models.ValidateCompleteProfile(input); err != nil {
		return Failed[string](err, failure)
	}

	input.PhoneNumber = models.NormalizePhone(input.PhoneNumber)
	if err := s.backend.CompleteProfile(ctx, token, input); err != nil {
		return Failed[string](fmt.Errorf("complete profile: %w", err), failure)
	}
	return Succeeded(input.PhoneNumber, "Profile updated successfully!")
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.backend.Logout(ctx, token)
}
