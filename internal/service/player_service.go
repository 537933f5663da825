package service

import (
	"context"

	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/events"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

// PlayerService manages the player catalog.
type PlayerService struct {
	players  repository.PlayerRepository
	notifier ChangeNotifier
}

// NewPlayerService builds the service.
func NewPlayerService(players repository.PlayerRepository, notifier ChangeNotifier) *PlayerService {
	return &PlayerService{players: players, notifier: notifier}
}

// PlayerInput captures create/update payloads.
type PlayerInput struct {
	Name   string
	UserID *string
}

// List returns a filtered page of players.
func (s *PlayerService) List(ctx context.Context, filter repository.PlayerFilter, page repository.PageRequest) (*repository.Page[domain.Player], error) {
	return s.players.List(ctx, filter, page)
}

// Get loads a player by ID.
func (s *PlayerService) Get(ctx context.Context, id string) (*domain.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if player.IsDeleted {
		return nil, apperrors.NewNotFound("player", map[string]any{"id": id})
	}
	return player, nil
}

// Create persists a new player and broadcasts a CREATE event.
func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (*domain.Player, error) {
	player := &domain.Player{
		Name:   input.Name,
		UserID: input.UserID,
	}
	if err := s.players.Create(ctx, player); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityPlayers, events.ChangeCreate, snapshotPlayer(player)))
	return player, nil
}

// Update modifies a player and broadcasts an UPDATE event.
func (s *PlayerService) Update(ctx context.Context, id string, input PlayerInput) (*domain.Player, error) {
	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	player.Name = input.Name
	player.UserID = input.UserID
	if err := s.players.Update(ctx, player); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityPlayers, events.ChangeUpdate, snapshotPlayer(player)))
	return player, nil
}

// Delete soft-deletes a player and broadcasts a DELETE event.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	player, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.players.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityPlayers, events.ChangeDelete, snapshotPlayer(player)))
	return nil
}
