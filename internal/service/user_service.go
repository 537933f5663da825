package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/juanjsts/game-catalog-service/internal/auth"
	"github.com/juanjsts/game-catalog-service/internal/config"
	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

// UserService manages account administration. Admin routes use it for
// listing and editing any account; profile routes reuse the same update
// and delete paths scoped to the caller's own ID.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.BcryptCost}
}

// UserInput captures account update payloads. An empty Password leaves
// the stored hash untouched.
type UserInput struct {
	Name     string
	Surname  string
	Username string
	Email    string
	Password string
}

// List returns a filtered page of accounts.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter, page repository.PageRequest) (*repository.Page[domain.User], error) {
	return s.users.List(ctx, filter, page)
}

// Get loads an account by ID. Soft-deleted accounts are not visible.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, nil
}

// Update modifies an account. Username and email must stay unique across
// other accounts; roles are never changed through this path.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, id, input.Username, input.Email); err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Surname = strings.TrimSpace(input.Surname)
	user.Username = strings.TrimSpace(input.Username)
	user.Email = strings.TrimSpace(input.Email)
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes an account. Tokens issued for it stop resolving on
// the next request.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.SoftDelete(ctx, id)
}

func (s *UserService) checkConflicts(ctx context.Context, id, username, email string) error {
	if other, err := s.users.GetByUsername(ctx, username); err == nil {
		if other.ID != id {
			return apperrors.NewConflict("username already taken", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if other, err := s.users.GetByEmail(ctx, email); err == nil {
		if other.ID != id {
			return apperrors.NewConflict("email already registered", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}
