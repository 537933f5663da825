package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// GameRepository defines persistence access for games.
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	Update(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	List(ctx context.Context, filter GameFilter, page PageRequest) (*Page[domain.Game], error)
	SoftDelete(ctx context.Context, id string) error
}

// GameFilter narrows game listings. Name and PlayerName match as
// case-insensitive substrings, mirroring the catalog search endpoints.
type GameFilter struct {
	Name           string
	PlayerName     string
	IncludeDeleted bool
}

type gameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository returns a Postgres-backed implementation.
func NewGameRepository(pool *pgxpool.Pool) GameRepository {
	return &gameRepository{pool: pool}
}

const gameColumns = `g.id, g.uuid, g.name, g.genre, g.storage, g.release_date, g.cost, g.platform_id, g.player_id, g.is_deleted, g.created_at, g.updated_at`

func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	const query = `
        INSERT INTO games (name, genre, storage, release_date, cost, platform_id, player_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, uuid, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		game.Name,
		game.Genre,
		game.Storage,
		game.ReleaseDate,
		game.Cost,
		game.PlatformID,
		game.PlayerID,
	).Scan(&game.ID, &game.UUID, &game.CreatedAt, &game.UpdatedAt)
}

func (r *gameRepository) Update(ctx context.Context, game *domain.Game) error {
	const query = `
        UPDATE games SET name=$1, genre=$2, storage=$3, release_date=$4, cost=$5, platform_id=$6, player_id=$7, updated_at=NOW()
        WHERE id=$8 AND is_deleted=FALSE
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		game.Name,
		game.Genre,
		game.Storage,
		game.ReleaseDate,
		game.Cost,
		game.PlatformID,
		game.PlayerID,
		game.ID,
	).Scan(&game.UpdatedAt)
}

func (r *gameRepository) scanGame(row pgx.Row) (*domain.Game, error) {
	var game domain.Game
	if err := row.Scan(
		&game.ID,
		&game.UUID,
		&game.Name,
		&game.Genre,
		&game.Storage,
		&game.ReleaseDate,
		&game.Cost,
		&game.PlatformID,
		&game.PlayerID,
		&game.IsDeleted,
		&game.CreatedAt,
		&game.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games g WHERE g.id=$1`
	return r.scanGame(r.pool.QueryRow(ctx, query, id))
}

func (r *gameRepository) List(ctx context.Context, filter GameFilter, page PageRequest) (*Page[domain.Game], error) {
	page = page.Normalize()

	from := ` FROM games g LEFT JOIN players p ON p.id = g.player_id`
	where := ` WHERE ($1 = '' OR LOWER(g.name) LIKE LOWER('%' || $1 || '%'))
        AND ($2 = '' OR LOWER(p.name) LIKE LOWER('%' || $2 || '%'))
        AND ($3 OR g.is_deleted=FALSE)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+from+where,
		filter.Name, filter.PlayerName, filter.IncludeDeleted).Scan(&total); err != nil {
		return nil, err
	}

	query := `SELECT ` + gameColumns + from + where + ` ORDER BY g.created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(ctx, query,
		filter.Name, filter.PlayerName, filter.IncludeDeleted, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Game, 0, page.PageSize)
	for rows.Next() {
		game, err := r.scanGame(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &Page[domain.Game]{Items: items, Page: page.Page, PageSize: page.PageSize, Total: total}, nil
}

func (r *gameRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE games SET is_deleted=TRUE, updated_at=NOW() WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
