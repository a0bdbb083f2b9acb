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

// expenseService handles the expense list of one user.
type expenseService struct {
	list *collection[models.Expense]
}

// NewExpenseService creates a new ExpenseServicer for id.
func NewExpenseService(store kv.Store, id session.Identity, opts ...Option) (ExpenseServicer, error) {
	if !id.Valid() {
		return nil, apperrors.ErrUnauthorized
	}
	o := buildOptions(opts)
	return &expenseService{
		list: &collection[models.Expense]{
			store:  store,
			userID: id.UserID,
			name:   kv.CollectionExpenses,
			log:    logger.ForUser("expenses", id.UserID),
			idOf:   func(e models.Expense) string { return e.ID },
			seed:   func() []models.Expense { return sampleExpenses(o.clock()) },
		},
	}, nil
}

// Load reads the stored expenses, seeding the sample set for a new user.
func (s *expenseService) Load(ctx context.Context) error {
	return s.list.load(ctx)
}

// IsLoading reports whether the expenses have not been read yet.
func (s *expenseService) IsLoading() bool {
	return !s.list.loaded
}

// List returns every expense in storage order.
func (s *expenseService) List(ctx context.Context) ([]models.Expense, error) {
	if err := s.list.load(ctx); err != nil {
		return nil, err
	}
	return s.list.snapshot(), nil
}

// Get returns a single expense by ID.
func (s *expenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	if err := s.list.load(ctx); err != nil {
		return nil, err
	}
	i := s.list.find(id)
	if i < 0 {
		return nil, apperrors.ErrExpenseNotFound
	}
	expense := s.list.items[i]
	return &expense, nil
}

// Add validates the expense, assigns it a fresh ID and persists it.
func (s *expenseService) Add(ctx context.Context, input models.NewExpense) (*models.Expense, error) {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	if err := s.list.load(ctx); err != nil {
		return nil, err
	}

	expense := input.WithID(uuid.New())
	if err := s.list.add(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update merges the provided fields into the expense. An unknown ID is
// ignored.
func (s *expenseService) Update(ctx context.Context, id string, patch models.ExpensePatch) error {
	if err := validateExpensePatch(&patch); err != nil {
		return err
	}
	if err := s.list.load(ctx); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}
	_, err := s.list.update(ctx, id, func(e *models.Expense) { patch.Apply(e) })
	return err
}

// Delete removes the expense if it exists.
func (s *expenseService) Delete(ctx context.Context, id string) error {
	if err := s.list.load(ctx); err != nil {
		return err
	}
	return s.list.remove(ctx, id)
}

func validateExpensePatch(patch *models.ExpensePatch) error {
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if trimmed == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
		}
		patch.Description = &trimmed
	}
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if patch.Category != nil && *patch.Category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}
