package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/juanjsts/game-catalog-service/internal/api/dto"
	"github.com/juanjsts/game-catalog-service/internal/auth"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	"github.com/juanjsts/game-catalog-service/internal/service"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

// UsersHandler manages account administration and profile endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /users. Admin only.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Username:       c.Query("username"),
		Email:          c.Query("email"),
		IncludeDeleted: c.Query("include_deleted") == "true",
	}
	page, err := h.service.List(c.Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(pageResponse(page, userResponse))
}

// Get GET /users/:id. Admin only.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Update PUT /users/:id. Admin only.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	input, err := parseUserRequest(c)
	if err != nil {
		return err
	}
	user, err := h.service.Update(c.Context(), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /users/:id. Admin only.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpdateProfile PUT /users/me/profile. Callers edit their own account.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	input, err := parseUserRequest(c)
	if err != nil {
		return err
	}
	user, err := h.service.Update(c.Context(), principal.Subject, *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteProfile DELETE /users/me/profile. Soft-deletes the caller's own
// account; their token stops resolving on the next request.
func (h *UsersHandler) DeleteProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.Subject); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseUserRequest(c *fiber.Ctx) (*service.UserInput, error) {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Username) == "" {
		return nil, apperrors.NewValidationError("name and username required", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperrors.NewValidationError("valid email required", nil)
	}
	if req.Password != "" && len(req.Password) < 5 {
		return nil, apperrors.NewValidationError("password must be at least 5 characters", nil)
	}
	return &service.UserInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}, nil
}
