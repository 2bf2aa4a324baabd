package services

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validators"
	"storefront/pkg/apperror"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// CategoryService handles category CRUD.
type CategoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list categories")
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category", id)
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validators.Struct(&in); err != nil {
		return nil, err
	}
	category := &models.Category{Name: in.Name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, writeError(err, "category", "create")
	}
	return category, nil
}

// RenameCategory replaces the name of an existing category.
func (s *CategoryService) RenameCategory(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validators.Struct(&in); err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category", id)
	}
	category.Name = in.Name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, writeError(err, "category", "update")
	}
	return category, nil
}

// DeleteCategory removes the category; products keep their category_id.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "category", id)
	}
	return nil
}
