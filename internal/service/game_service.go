package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/events"
	"github.com/juanjsts/game-catalog-service/internal/persistence"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

const gameCachePrefix = "game:"

// GameService manages the game catalog. Single-game reads go through the
// Redis cache; mutations evict the cached entry before broadcasting.
type GameService struct {
	games    repository.GameRepository
	cache    *persistence.Redis
	notifier ChangeNotifier
	logger   *zap.Logger
}

// NewGameService builds the service.
func NewGameService(games repository.GameRepository, cache *persistence.Redis, notifier ChangeNotifier, logger *zap.Logger) *GameService {
	return &GameService{games: games, cache: cache, notifier: notifier, logger: logger}
}

// GameInput captures create/update payloads.
type GameInput struct {
	Name        string
	Genre       string
	Storage     string
	ReleaseDate time.Time
	Cost        float64
	PlatformID  *string
	PlayerID    *string
}

// List returns a filtered page of games.
func (s *GameService) List(ctx context.Context, filter repository.GameFilter, page repository.PageRequest) (*repository.Page[domain.Game], error) {
	return s.games.List(ctx, filter, page)
}

// Get loads a game by ID, preferring the cache. Cache errors degrade to
// a database read.
func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	var cached domain.Game
	err := s.cache.GetJSON(ctx, gameCachePrefix+id, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, persistence.ErrCacheMiss) {
		s.logger.Warn("game cache read failed", zap.String("id", id), zap.Error(err))
	}

	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.IsDeleted {
		return nil, apperrors.NewNotFound("game", map[string]any{"id": id})
	}
	if err := s.cache.SetJSON(ctx, gameCachePrefix+id, game); err != nil {
		s.logger.Warn("game cache write failed", zap.String("id", id), zap.Error(err))
	}
	return game, nil
}

// Create persists a new game and broadcasts a CREATE event.
func (s *GameService) Create(ctx context.Context, input GameInput) (*domain.Game, error) {
	game := &domain.Game{
		Name:        input.Name,
		Genre:       input.Genre,
		Storage:     input.Storage,
		ReleaseDate: input.ReleaseDate,
		Cost:        input.Cost,
		PlatformID:  input.PlatformID,
		PlayerID:    input.PlayerID,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityGames, events.ChangeCreate, snapshotGame(game)))
	return game, nil
}

// Update modifies a game, evicts its cache entry and broadcasts an
// UPDATE event.
func (s *GameService) Update(ctx context.Context, id string, input GameInput) (*domain.Game, error) {
	game, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	game.Name = input.Name
	game.Genre = input.Genre
	game.Storage = input.Storage
	game.ReleaseDate = input.ReleaseDate
	game.Cost = input.Cost
	game.PlatformID = input.PlatformID
	game.PlayerID = input.PlayerID
	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	s.notifier.Notify(events.NewChangeEvent(events.EntityGames, events.ChangeUpdate, snapshotGame(game)))
	return game, nil
}

// Delete soft-deletes a game, evicts its cache entry and broadcasts a
// DELETE event carrying the final snapshot.
func (s *GameService) Delete(ctx context.Context, id string) error {
	game, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.games.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	s.notifier.Notify(events.NewChangeEvent(events.EntityGames, events.ChangeDelete, snapshotGame(game)))
	return nil
}

func (s *GameService) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, gameCachePrefix+id); err != nil {
		s.logger.Warn("game cache evict failed", zap.String("id", id), zap.Error(err))
	}
}
