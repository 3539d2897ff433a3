package catalog

import (
	"context"
	"strings"

	"pharmapos/m/domain"
)

// CategoryInput is a create or partial update request for a category.
type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory adds a category. The name must be present and unused.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return domain.Category{}, ValidationError("name is required")
	}
	c := domain.Category{Name: strings.TrimSpace(*in.Name)}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (domain.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Category{}, ValidationError("name must not be empty")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if err := s.store.UpdateCategory(ctx, &c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// DeleteCategory removes a category that no medicine references.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}
