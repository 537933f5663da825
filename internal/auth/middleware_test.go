package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/observability"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

type fakePrincipalStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (s *fakePrincipalStore) Resolve(_ context.Context, subject string) (*Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[subject]
	if !ok || user.IsDeleted {
		return nil, ErrPrincipalNotFound
	}
	return &Principal{Subject: user.ID, User: user, Roles: user.Roles}, nil
}

func newTestApp(t *testing.T, store PrincipalStore) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("test-secret", time.Hour)
	mw := NewMiddleware(tm, store, observability.NewMetrics())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		},
	})
	app.Use(mw.Handle)
	return app, tm
}

func TestNoHeaderPassesThroughAnonymous(t *testing.T) {
	app, _ := newTestApp(t, &fakePrincipalStore{})
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := PrincipalFromContext(c)
		assert.False(t, ok)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedHeaderPassesThroughAnonymous(t *testing.T) {
	app, _ := newTestApp(t, &fakePrincipalStore{})
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := PrincipalFromContext(c)
		assert.False(t, ok)
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGarbageTokenRejectedWithoutReachingHandler(t *testing.T) {
	app, _ := newTestApp(t, &fakePrincipalStore{})
	handlerCalled := false
	app.Get("/", func(c *fiber.Ctx) error {
		handlerCalled = true
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, handlerCalled)
}

func TestValidTokenUnknownSubjectRejected(t *testing.T) {
	app, tm := newTestApp(t, &fakePrincipalStore{})
	handlerCalled := false
	app.Get("/", func(c *fiber.Ctx) error {
		handlerCalled = true
		return c.SendString("ok")
	})

	token, _, err := tm.Issue("ghost")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, handlerCalled)
}

func TestDeletedSubjectRejected(t *testing.T) {
	store := &fakePrincipalStore{users: map[string]*domain.User{
		"alice": {ID: "alice", Roles: []domain.Role{domain.RoleUser}, IsDeleted: true},
	}}
	app, tm := newTestApp(t, store)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidTokenInstallsPrincipal(t *testing.T) {
	store := &fakePrincipalStore{users: map[string]*domain.User{
		"alice": {ID: "alice", Username: "alice", Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}},
	}}
	app, tm := newTestApp(t, store)
	app.Get("/", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		assert.Equal(t, "alice", principal.Subject)
		assert.True(t, principal.HasRole(domain.RoleAdmin))
		return c.SendString("ok")
	})

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// A request with a token and a concurrent anonymous request must never
// observe each other's principal.
func TestConcurrentRequestsDoNotShareContext(t *testing.T) {
	store := &fakePrincipalStore{users: map[string]*domain.User{
		"alice": {ID: "alice", Roles: []domain.Role{domain.RoleUser}},
	}}
	app, tm := newTestApp(t, store)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		// Hold the request open briefly to force overlap.
		time.Sleep(20 * time.Millisecond)
		if principal, ok := PrincipalFromContext(c); ok {
			return c.SendString(principal.Subject)
		}
		return c.SendString("anonymous")
	})

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		authed := i%2 == 0
		wg.Add(1)
		go func(authed bool) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			want := "anonymous"
			if authed {
				req.Header.Set("Authorization", "Bearer "+token)
				want = "alice"
			}
			resp, err := app.Test(req, 5000)
			assert.NoError(t, err)
			body := make([]byte, 64)
			n, _ := resp.Body.Read(body)
			assert.Equal(t, want, string(body[:n]))
		}(authed)
	}
	wg.Wait()
}
