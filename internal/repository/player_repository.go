package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// PlayerRepository defines persistence access for players.
type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	Update(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id string) (*domain.Player, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Player, error)
	List(ctx context.Context, filter PlayerFilter, page PageRequest) (*Page[domain.Player], error)
	SoftDelete(ctx context.Context, id string) error
}

// PlayerFilter narrows player listings.
type PlayerFilter struct {
	Name           string
	IncludeDeleted bool
}

type playerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository returns a Postgres-backed implementation.
func NewPlayerRepository(pool *pgxpool.Pool) PlayerRepository {
	return &playerRepository{pool: pool}
}

const playerColumns = `id, uuid, name, user_id, is_deleted, created_at, updated_at`

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	const query = `
        INSERT INTO players (name, user_id)
        VALUES ($1, $2)
        RETURNING id, uuid, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		player.Name,
		player.UserID,
	).Scan(&player.ID, &player.UUID, &player.CreatedAt, &player.UpdatedAt)
}

func (r *playerRepository) Update(ctx context.Context, player *domain.Player) error {
	const query = `
        UPDATE players SET name=$1, user_id=$2, updated_at=NOW()
        WHERE id=$3 AND is_deleted=FALSE
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		player.Name,
		player.UserID,
		player.ID,
	).Scan(&player.UpdatedAt)
}

func (r *playerRepository) scanPlayer(row pgx.Row) (*domain.Player, error) {
	var player domain.Player
	if err := row.Scan(
		&player.ID,
		&player.UUID,
		&player.Name,
		&player.UserID,
		&player.IsDeleted,
		&player.CreatedAt,
		&player.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id=$1`
	return r.scanPlayer(r.pool.QueryRow(ctx, query, id))
}

func (r *playerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE user_id=$1 AND is_deleted=FALSE`
	return r.scanPlayer(r.pool.QueryRow(ctx, query, userID))
}

func (r *playerRepository) List(ctx context.Context, filter PlayerFilter, page PageRequest) (*Page[domain.Player], error) {
	page = page.Normalize()

	where := ` WHERE ($1 = '' OR LOWER(name) LIKE LOWER('%' || $1 || '%')) AND ($2 OR is_deleted=FALSE)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`+where, filter.Name, filter.IncludeDeleted).Scan(&total); err != nil {
		return nil, err
	}

	query := `SELECT ` + playerColumns + ` FROM players` + where + ` ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, filter.Name, filter.IncludeDeleted, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Player, 0, page.PageSize)
	for rows.Next() {
		player, err := r.scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &Page[domain.Player]{Items: items, Page: page.Page, PageSize: page.PageSize, Total: total}, nil
}

func (r *playerRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE players SET is_deleted=TRUE, updated_at=NOW() WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
