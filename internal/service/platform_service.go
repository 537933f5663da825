package service

import (
	"context"
	"time"

	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/events"
	"github.com/juanjsts/game-catalog-service/internal/repository"
	apperrors "github.com/juanjsts/game-catalog-service/pkg/util"
)

// ChangeNotifier receives a change event after a successful commit.
// Delivery is best-effort and never fails the mutation.
type ChangeNotifier interface {
	Notify(event events.ChangeEvent)
}

// PlatformService manages the platform catalog.
type PlatformService struct {
	platforms repository.PlatformRepository
	notifier  ChangeNotifier
}

// NewPlatformService builds the service.
func NewPlatformService(platforms repository.PlatformRepository, notifier ChangeNotifier) *PlatformService {
	return &PlatformService{platforms: platforms, notifier: notifier}
}

// PlatformInput captures create/update payloads.
type PlatformInput struct {
	Name         string
	Manufacturer string
	Kind         string
	ReleaseDate  time.Time
}

// List returns a filtered page of platforms.
func (s *PlatformService) List(ctx context.Context, filter repository.PlatformFilter, page repository.PageRequest) (*repository.Page[domain.Platform], error) {
	return s.platforms.List(ctx, filter, page)
}

// Get loads a platform by ID.
func (s *PlatformService) Get(ctx context.Context, id string) (*domain.Platform, error) {
	platform, err := s.platforms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if platform.IsDeleted {
		return nil, apperrors.NewNotFound("platform", map[string]any{"id": id})
	}
	return platform, nil
}

// Create persists a new platform and broadcasts a CREATE event.
func (s *PlatformService) Create(ctx context.Context, input PlatformInput) (*domain.Platform, error) {
	platform := &domain.Platform{
		Name:         input.Name,
		Manufacturer: input.Manufacturer,
		Kind:         input.Kind,
		ReleaseDate:  input.ReleaseDate,
	}
	if err := s.platforms.Create(ctx, platform); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityPlatforms, events.ChangeCreate, snapshotPlatform(platform)))
	return platform, nil
}

// Update modifies a platform and broadcasts an UPDATE event.
func (s *PlatformService) Update(ctx context.Context, id string, input PlatformInput) (*domain.Platform, error) {
	platform, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	platform.Name = input.Name
	platform.Manufacturer = input.Manufacturer
	platform.Kind = input.Kind
	platform.ReleaseDate = input.ReleaseDate
	if err := s.platforms.Update(ctx, platform); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityPlatforms, events.ChangeUpdate, snapshotPlatform(platform)))
	return platform, nil
}

// Delete soft-deletes a platform and broadcasts a DELETE event carrying
// the final snapshot.
func (s *PlatformService) Delete(ctx context.Context, id string) error {
	platform, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.platforms.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(events.NewChangeEvent(events.EntityPlatforms, events.ChangeDelete, snapshotPlatform(platform)))
	return nil
}
