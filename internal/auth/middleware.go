package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/juanjsts/game-catalog-service/internal/observability"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Middleware authenticates bearer tokens and installs the resolved
// principal in the request's local storage. Requests without a bearer
// header pass through anonymously; some endpoints are public.
type Middleware struct {
	tokens     *TokenManager
	principals PrincipalStore
	metrics    *observability.Metrics
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager, principals PrincipalStore, metrics *observability.Metrics) *Middleware {
	return &Middleware{tokens: tokens, principals: principals, metrics: metrics}
}

// Handle runs the per-request authentication pass. Exactly one of three
// outcomes: anonymous pass-through, 401 short-circuit, or principal
// installed and the chain continues. Token validation runs strictly
// before the principal lookup.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		// A missing or non-Bearer header is not an error.
		m.metrics.RecordAuth("anonymous")
		return c.Next()
	}

	subject, err := m.tokens.Validate(authHeader[len(bearerPrefix):])
	if err != nil {
		m.metrics.RecordAuth("rejected")
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	principal, err := m.principals.Resolve(c.UserContext(), subject)
	if err != nil {
		m.metrics.RecordAuth("rejected")
		if errors.Is(err, ErrPrincipalNotFound) {
			// Same client-visible response as an invalid token.
			return apperrors.NewUnauthorized("invalid or expired token")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, principal)
	m.metrics.RecordAuth("accepted")
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
