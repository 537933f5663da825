package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanjsts/game-catalog-service/internal/config"
	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	next  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	user.ID = "user-" + string(rune('0'+r.next))
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := user
	return &out, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			out := user
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter, page repository.PageRequest) (*repository.Page[domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page = page.Normalize()
	items := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		if user.IsDeleted && !filter.IncludeDeleted {
			continue
		}
		if filter.Username != "" && !strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Username)) {
			continue
		}
		if filter.Email != "" && !strings.Contains(strings.ToLower(user.Email), strings.ToLower(filter.Email)) {
			continue
		}
		items = append(items, user)
	}
	return &repository.Page[domain.User]{Items: items, Page: page.Page, PageSize: page.PageSize, Total: int64(len(items))}, nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsDeleted = true
	r.users[id] = user
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4, // keep tests fast
	}
	return NewAuthService(cfg, repo), repo
}

func TestSignUpIssuesWorkingToken(t *testing.T) {
	svc, _ := newTestAuthService()

	user, token, exp, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "Alice", Surname: "Smith", Username: "alice",
		Email: "alice@example.com", Password: "secret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.Equal(t, []domain.Role{domain.RoleUser}, user.Roles)

	subject, err := svc.TokenManager().Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestSignUpRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "secret",
	})
	require.NoError(t, err)

	_, _, _, err = svc.SignUp(context.Background(), SignUpInput{
		Name: "Alicia", Username: "alice", Email: "alicia@example.com", Password: "secret",
	})
	require.Error(t, err)
}

func TestSignInRejectsBadPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "secret",
	})
	require.NoError(t, err)

	_, _, _, err = svc.SignIn(context.Background(), "alice", "wrong")
	require.Error(t, err)

	_, _, _, err = svc.SignIn(context.Background(), "nobody", "secret")
	require.Error(t, err)
}

func TestSignInSucceedsWithCorrectCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "Alice", Username: "alice", Email: "alice@example.com", Password: "secret",
	})
	require.NoError(t, err)

	user, token, _, err := svc.SignIn(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
}
