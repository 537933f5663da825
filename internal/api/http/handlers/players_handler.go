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

// PlayersHandler manages player catalog endpoints.
type PlayersHandler struct {
	service *service.PlayerService
}

// NewPlayersHandler constructs handler.
func NewPlayersHandler(playerService *service.PlayerService) *PlayersHandler {
	return &PlayersHandler{service: playerService}
}

// List GET /players.
func (h *PlayersHandler) List(c *fiber.Ctx) error {
	filter := repository.PlayerFilter{
		Name:           c.Query("name"),
		IncludeDeleted: includeDeleted(c),
	}
	page, err := h.service.List(c.Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(pageResponse(page, playerResponse))
}

// Get GET /players/:id.
func (h *PlayersHandler) Get(c *fiber.Ctx) error {
	player, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": playerResponse(player)})
}

// Create POST /players.
func (h *PlayersHandler) Create(c *fiber.Ctx) error {
	input, err := parsePlayerRequest(c)
	if err != nil {
		return err
	}
	player, err := h.service.Create(c.Context(), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": playerResponse(player)})
}

// Update PUT /players/:id.
func (h *PlayersHandler) Update(c *fiber.Ctx) error {
	input, err := parsePlayerRequest(c)
	if err != nil {
		return err
	}
	player, err := h.service.Update(c.Context(), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": playerResponse(player)})
}

// Delete DELETE /players/:id.
func (h *PlayersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePlayerRequest(c *fiber.Ctx) (*service.PlayerInput, error) {
	var req dto.PlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	return &service.PlayerInput{Name: req.Name, UserID: req.UserID}, nil
}

func playerResponse(player *domain.Player) dto.PlayerResponse {
	return dto.PlayerResponse{
		ID:        player.ID,
		UUID:      player.UUID,
		Name:      player.Name,
		UserID:    player.UserID,
		CreatedAt: player.CreatedAt,
		UpdatedAt: player.UpdatedAt,
	}
}
