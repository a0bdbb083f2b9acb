package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/kv"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/uuid"
)

// authService handles the global users list and the session pointer.
type authService struct {
	store kv.Store
	cost  int
	log   *zap.SugaredLogger
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(store kv.Store, opts ...Option) AuthServicer {
	o := buildOptions(opts)
	return &authService{store: store, cost: o.bcryptCost, log: logger.Named("auth")}
}

func (s *authService) users(ctx context.Context) ([]models.StoredUser, error) {
	var users []models.StoredUser
	err := kv.GetJSON(ctx, s.store, "", kv.CollectionUsers, &users)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		s.log.Errorw("Failed to read users", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return users, nil
}

func (s *authService) setSession(ctx context.Context, user models.User) error {
	if err := kv.PutJSON(ctx, s.store, "", kv.CollectionSession, user); err != nil {
		s.log.Errorw("Failed to save session", "user_id", user.ID, "error", err)
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// Register creates an account and logs it in.
func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stored := models.StoredUser{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	users = append(users, stored)
	if err := kv.PutJSON(ctx, s.store, "", kv.CollectionUsers, users); err != nil {
		s.log.Errorw("Failed to save users", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	user := stored.Public()
	if err := s.setSession(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and makes the account the active session.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if normalizeEmail(u.Email) != email {
			continue
		}
		if !verifyPassword(u.Password, password) {
			break
		}
		user := u.Public()
		if err := s.setSession(ctx, user); err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, apperrors.ErrInvalidCredentials
}

// Logout clears the active session.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, "", kv.CollectionSession); err != nil {
		s.log.Errorw("Failed to clear session", "error", err)
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// Current returns the logged-in user.
func (s *authService) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	err := kv.GetJSON(ctx, s.store, "", kv.CollectionSession, &user)
	var decodeErr *kv.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, kv.ErrNotFound):
		return nil, apperrors.ErrNoActiveSession
	case errors.As(err, &decodeErr):
		s.log.Errorw("Stored session is corrupt", "error", err)
		return nil, apperrors.ErrNoActiveSession
	default:
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if user.ID == "" {
		return nil, apperrors.ErrNoActiveSession
	}
	return &user, nil
}

// GetUserByID looks up a registered account.
func (s *authService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			user := u.Public()
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetUserByEmail looks up a registered account by email, ignoring case.
func (s *authService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			user := u.Public()
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// verifyPassword accepts a bcrypt hash or a legacy plaintext value.
func verifyPassword(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
