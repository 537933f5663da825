package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/juanjsts/game-catalog-service/internal/api/dto"
	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	"github.com/juanjsts/game-catalog-service/internal/service"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

// PlatformsHandler manages platform catalog endpoints.
type PlatformsHandler struct {
	service *service.PlatformService
}

// NewPlatformsHandler constructs handler.
func NewPlatformsHandler(platformService *service.PlatformService) *PlatformsHandler {
	return &PlatformsHandler{service: platformService}
}

// List GET /platforms.
func (h *PlatformsHandler) List(c *fiber.Ctx) error {
	filter := repository.PlatformFilter{
		Name:           c.Query("name"),
		IncludeDeleted: includeDeleted(c),
	}
	page, err := h.service.List(c.Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(pageResponse(page, platformResponse))
}

// Get GET /platforms/:id.
func (h *PlatformsHandler) Get(c *fiber.Ctx) error {
	platform, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": platformResponse(platform)})
}

// Create POST /platforms.
func (h *PlatformsHandler) Create(c *fiber.Ctx) error {
	input, err := parsePlatformRequest(c)
	if err != nil {
		return err
	}
	platform, err := h.service.Create(c.Context(), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": platformResponse(platform)})
}

// Update PUT /platforms/:id.
func (h *PlatformsHandler) Update(c *fiber.Ctx) error {
	input, err := parsePlatformRequest(c)
	if err != nil {
		return err
	}
	platform, err := h.service.Update(c.Context(), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": platformResponse(platform)})
}

// Delete DELETE /platforms/:id.
func (h *PlatformsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePlatformRequest(c *fiber.Ctx) (*service.PlatformInput, error) {
	var req dto.PlatformRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Manufacturer) == "" || strings.TrimSpace(req.Kind) == "" {
		return nil, apperrors.NewValidationError("name, manufacturer, kind required", nil)
	}
	releaseDate, ok := parseDate(req.ReleaseDate)
	if !ok {
		return nil, apperrors.NewValidationError("release_date must be YYYY-MM-DD", nil)
	}
	return &service.PlatformInput{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Kind:         req.Kind,
		ReleaseDate:  releaseDate,
	}, nil
}

func platformResponse(platform *domain.Platform) dto.PlatformResponse {
	return dto.PlatformResponse{
		ID:           platform.ID,
		UUID:         platform.UUID,
		Name:         platform.Name,
		Manufacturer: platform.Manufacturer,
		Kind:         platform.Kind,
		ReleaseDate:  platform.ReleaseDate.Format(dateLayout),
		CreatedAt:    platform.CreatedAt,
		UpdatedAt:    platform.UpdatedAt,
	}
}
