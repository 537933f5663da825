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

// GamesHandler manages game catalog endpoints.
type GamesHandler struct {
	service *service.GameService
}

// NewGamesHandler constructs handler.
func NewGamesHandler(gameService *service.GameService) *GamesHandler {
	return &GamesHandler{service: gameService}
}

// List GET /games.
func (h *GamesHandler) List(c *fiber.Ctx) error {
	filter := repository.GameFilter{
		Name:           c.Query("name"),
		PlayerName:     c.Query("player"),
		IncludeDeleted: includeDeleted(c),
	}
	page, err := h.service.List(c.Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(pageResponse(page, gameResponse))
}

// Get GET /games/:id.
func (h *GamesHandler) Get(c *fiber.Ctx) error {
	game, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": gameResponse(game)})
}

// Create POST /games.
func (h *GamesHandler) Create(c *fiber.Ctx) error {
	input, err := parseGameRequest(c)
	if err != nil {
		return err
	}
	game, err := h.service.Create(c.Context(), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": gameResponse(game)})
}

// Update PUT /games/:id.
func (h *GamesHandler) Update(c *fiber.Ctx) error {
	input, err := parseGameRequest(c)
	if err != nil {
		return err
	}
	game, err := h.service.Update(c.Context(), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": gameResponse(game)})
}

// Delete DELETE /games/:id.
func (h *GamesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseGameRequest(c *fiber.Ctx) (*service.GameInput, error) {
	var req dto.GameRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Genre) == "" || strings.TrimSpace(req.Storage) == "" {
		return nil, apperrors.NewValidationError("name, genre, storage required", nil)
	}
	if req.Cost < 0 {
		return nil, apperrors.NewValidationError("cost must not be negative", nil)
	}
	releaseDate, ok := parseDate(req.ReleaseDate)
	if !ok {
		return nil, apperrors.NewValidationError("release_date must be YYYY-MM-DD", nil)
	}
	return &service.GameInput{
		Name:        req.Name,
		Genre:       req.Genre,
		Storage:     req.Storage,
		ReleaseDate: releaseDate,
		Cost:        req.Cost,
		PlatformID:  req.PlatformID,
		PlayerID:    req.PlayerID,
	}, nil
}

func gameResponse(game *domain.Game) dto.GameResponse {
	return dto.GameResponse{
		ID:          game.ID,
		UUID:        game.UUID,
		Name:        game.Name,
		Genre:       game.Genre,
		Storage:     game.Storage,
		ReleaseDate: game.ReleaseDate.Format(dateLayout),
		Cost:        game.Cost,
		PlatformID:  game.PlatformID,
		PlayerID:    game.PlayerID,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}
