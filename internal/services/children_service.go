package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type childrenBackend interface {
	ListChildren(ctx context.Context, token string) ([]models.Child, error)
	CreateChild(ctx context.Context, token string, child models.Child) error
	UpdateChild(ctx context.Context, token string, childID int64, child models.Child) error
	DeleteChild(ctx context.Context, token string, childID int64) error
}

type ChildrenService struct {
	backend childrenBackend
}

func NewChildrenService(backend childrenBackend) *ChildrenService {
	return &ChildrenService{backend: backend}
}

func (s *ChildrenService) List(ctx context.Context, token string) ([]models.Child, error) {
	children, err := s.backend.ListChildren(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

func (s *ChildrenService) Add(ctx context.Context, token string, child models.Child) Result[struct{}] {
	const failure = "Failed to add child."

	child = trimChild(child)
	if err := models.ValidateChild(child); err != nil {
		return Failed[struct{}](err, failure)
	}
	if err := s.backend.CreateChild(ctx, token, child); err != nil {
		return Failed[struct{}](fmt.Errorf("create child: %w", err), failure)
	}
	return Succeeded(struct{}{}, "Child added successfully!")
}

func (s *ChildrenService) Update(ctx context.Context, token string, childID int64, child models.Child) Result[struct{}] {
	const failure = "Failed to update child."

	child = trimChild(child)
	if err := models.ValidateChild(child); err != nil {
		return Failed[struct{}](err, failure)
	}
	if err := s.backend.UpdateChild(ctx, token, childID, child); err != nil {
		return Failed[struct{}](fmt.Errorf("update child: %w", err), failure)
	}
	return Succeeded(struct{}{}, "Child updated successfully!")
}

func (s *ChildrenService) Delete(ctx context.Context, token string, childID int64) Result[struct{}] {
	if err := s.backend.DeleteChild(ctx, token, childID); err != nil {
		return Failed[struct{}](fmt.Errorf("delete child: %w", err), "Failed to delete child.")
	}
	return Succeeded(struct{}{}, "Child deleted successfully!")
}

func trimChild(child models.Child) models.Child {
	child.FirstName = strings.TrimSpace(child.FirstName)
	child.LastName = strings.TrimSpace(child.LastName)
	if child.Experience == "" {
		child.Experience = models.ExperienceBeginner
	}
	return child
}
