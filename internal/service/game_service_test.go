package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/events"
	"github.com/juanjsts/game-catalog-service/internal/persistence"
	"github.com/juanjsts/game-catalog-service/internal/repository"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []events.ChangeEvent
}

func (n *recordingNotifier) Notify(event events.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) all() []events.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]events.ChangeEvent, len(n.events))
	copy(out, n.events)
	return out
}

type fakeGameRepo struct {
	mu    sync.Mutex
	games map[string]domain.Game
	next  int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]domain.Game)}
}

func (r *fakeGameRepo) Create(_ context.Context, game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	game.ID = "game-" + string(rune('0'+r.next))
	game.UUID = game.ID + "-uuid"
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	r.games[game.ID] = *game
	return nil
}

func (r *fakeGameRepo) Update(_ context.Context, game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.games[game.ID]
	if !ok || stored.IsDeleted {
		return pgx.ErrNoRows
	}
	game.UpdatedAt = time.Now()
	r.games[game.ID] = *game
	return nil
}

func (r *fakeGameRepo) GetByID(_ context.Context, id string) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	game, ok := r.games[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := game
	return &out, nil
}

func (r *fakeGameRepo) List(_ context.Context, _ repository.GameFilter, page repository.PageRequest) (*repository.Page[domain.Game], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page = page.Normalize()
	items := make([]domain.Game, 0, len(r.games))
	for _, g := range r.games {
		if !g.IsDeleted {
			items = append(items, g)
		}
	}
	return &repository.Page[domain.Game]{Items: items, Page: page.Page, PageSize: page.PageSize, Total: int64(len(items))}, nil
}

func (r *fakeGameRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	game, ok := r.games[id]
	if !ok || game.IsDeleted {
		return pgx.ErrNoRows
	}
	game.IsDeleted = true
	r.games[id] = game
	return nil
}

func newTestGameService() (*GameService, *fakeGameRepo, *recordingNotifier) {
	repo := newFakeGameRepo()
	notifier := &recordingNotifier{}
	// no redis client configured: every cache call degrades gracefully
	cache := &persistence.Redis{}
	return NewGameService(repo, cache, notifier, zap.NewNop()), repo, notifier
}

func TestCreateGameEmitsCreateEvent(t *testing.T) {
	svc, _, notifier := newTestGameService()

	game, err := svc.Create(context.Background(), GameInput{
		Name:        "Outer Wilds",
		Genre:       "Adventure",
		Storage:     "8GB",
		ReleaseDate: time.Date(2019, 5, 28, 0, 0, 0, 0, time.UTC),
		Cost:        24.99,
	})
	require.NoError(t, err)
	require.NotEmpty(t, game.ID)

	emitted := notifier.all()
	require.Len(t, emitted, 1)
	assert.Equal(t, events.EntityGames, emitted[0].Entity)
	assert.Equal(t, events.ChangeCreate, emitted[0].Kind)
	assert.False(t, emitted[0].CreatedAt.IsZero())
}

func TestUpdateGameEmitsUpdateEvent(t *testing.T) {
	svc, _, notifier := newTestGameService()

	game, err := svc.Create(context.Background(), GameInput{
		Name: "Hades", Genre: "Roguelike", Storage: "15GB",
		ReleaseDate: time.Date(2020, 9, 17, 0, 0, 0, 0, time.UTC), Cost: 24.99,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), game.ID, GameInput{
		Name: "Hades II", Genre: "Roguelike", Storage: "20GB",
		ReleaseDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), Cost: 29.99,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hades II", updated.Name)

	emitted := notifier.all()
	require.Len(t, emitted, 2)
	assert.Equal(t, events.ChangeUpdate, emitted[1].Kind)
}

func TestDeleteGameEmitsDeleteEventWithSnapshot(t *testing.T) {
	svc, repo, notifier := newTestGameService()

	game, err := svc.Create(context.Background(), GameInput{
		Name: "Celeste", Genre: "Platformer", Storage: "1GB",
		ReleaseDate: time.Date(2018, 1, 25, 0, 0, 0, 0, time.UTC), Cost: 19.99,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), game.ID))

	stored, err := repo.GetByID(context.Background(), game.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)

	emitted := notifier.all()
	require.Len(t, emitted, 2)
	assert.Equal(t, events.ChangeDelete, emitted[1].Kind)
	snapshot, ok := emitted[1].Data.(gameSnapshot)
	require.True(t, ok)
	assert.Equal(t, "Celeste", snapshot.Name)
}

func TestGetDeletedGameNotFound(t *testing.T) {
	svc, _, _ := newTestGameService()

	game, err := svc.Create(context.Background(), GameInput{
		Name: "Journey", Genre: "Adventure", Storage: "4GB",
		ReleaseDate: time.Date(2012, 3, 13, 0, 0, 0, 0, time.UTC), Cost: 14.99,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), game.ID))

	_, err = svc.Get(context.Background(), game.ID)
	require.Error(t, err)
}
