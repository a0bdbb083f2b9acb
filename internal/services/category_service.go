package services

import (
	"context"
	"strings"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/kv"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/session"
	"expensetracker/internal/uuid"
)

// categoryService handles the category set of one user.
type categoryService struct {
	list *collection[models.Category]
}

// NewCategoryService creates a new CategoryServicer for id.
func NewCategoryService(store kv.Store, id session.Identity, _ ...Option) (CategoryServicer, error) {
	if !id.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	return &categoryService{
		list: &collection[models.Category]{
			store:  store,
			userID: id.UserID,
			name:   kv.CollectionCategories,
			log:    logger.ForUser("categories", id.UserID),
			idOf:   func(c models.Category) string { return c.ID },
			seed:   models.DefaultCategories,
		},
	}, nil
}

func (s *categoryService) Load(ctx context.Context) error {
	return s.list.load(ctx)
}

func (s *categoryService) IsLoading() bool {
	return !s.list.loaded
}

// List returns the user's categories in storage order.
func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	if err := s.list.load(ctx); err != nil {
		return nil, err
	}
	return s.list.snapshot(), nil
}

// Get retrieves a category by ID.
func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	if err := s.list.load(ctx); err != nil {
		return nil, err
	}
	i := s.list.find(id)
	if i < 0 {
		return nil, apperrors.ErrCategoryNotFound
	}
	category := s.list.items[i]
	return &category, nil
}

// Add creates a new category
func (s *categoryService) Add(ctx context.Context, input models.NewCategory) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !input.Color.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category color")
	}

	if err := s.list.load(ctx); err != nil {
		return nil, err
	}

	category := models.Category{ID: uuid.New(), Name: input.Name, Color: input.Color}
	if err := s.list.add(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update merges the patch into an existing category. Unknown IDs are ignored.
func (s *categoryService) Update(ctx context.Context, id string, patch models.CategoryPatch) error {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		patch.Name = &trimmed
	}
	if patch.Color != nil && !patch.Color.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category color")
	}

	if err := s.list.load(ctx); err != nil {
		return err
	}
	if patch.Name == nil && patch.Color == nil {
		return nil
	}
	_, err := s.list.update(ctx, id, func(c *models.Category) { patch.Apply(c) })
	return err
}

// Delete removes a category. Expenses that still reference it are left as
// they are and display as Uncategorized.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.list.load(ctx); err != nil {
		return err
	}
	return s.list.remove(ctx, id)
}
