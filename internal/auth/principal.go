package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/repository"
)

// ErrPrincipalNotFound indicates the token subject no longer maps to a
// usable account.
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal represents the authenticated caller for one request.
type Principal struct {
	Subject string
	User    *domain.User
	Roles   []domain.Role
}

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role domain.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrincipalStore resolves a token subject into a principal. Resolution
// happens fresh on every request; nothing is cached at this layer.
type PrincipalStore interface {
	Resolve(ctx context.Context, subject string) (*Principal, error)
}

type repositoryPrincipalStore struct {
	users repository.UserRepository
}

// NewPrincipalStore builds a store backed by the user repository.
// Soft-deleted accounts resolve to ErrPrincipalNotFound so a still-valid
// token stops working as soon as the account is removed.
func NewPrincipalStore(users repository.UserRepository) PrincipalStore {
	return &repositoryPrincipalStore{users: users}
}

func (s *repositoryPrincipalStore) Resolve(ctx context.Context, subject string) (*Principal, error) {
	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if user.IsDeleted {
		return nil, ErrPrincipalNotFound
	}
	return &Principal{Subject: user.ID, User: user, Roles: user.Roles}, nil
}
