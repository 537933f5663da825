package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// PlatformRepository defines persistence access for platforms.
type PlatformRepository interface {
	Create(ctx context.Context, platform *domain.Platform) error
	Update(ctx context.Context, platform *domain.Platform) error
	GetByID(ctx context.Context, id string) (*domain.Platform, error)
	List(ctx context.Context, filter PlatformFilter, page PageRequest) (*Page[domain.Platform], error)
	SoftDelete(ctx context.Context, id string) error
}

// PlatformFilter narrows platform listings.
type PlatformFilter struct {
	Name           string
	IncludeDeleted bool
}

type platformRepository struct {
	pool *pgxpool.Pool
}

// NewPlatformRepository returns a Postgres-backed implementation.
func NewPlatformRepository(pool *pgxpool.Pool) PlatformRepository {
	return &platformRepository{pool: pool}
}

const platformColumns = `id, uuid, name, manufacturer, kind, release_date, is_deleted, created_at, updated_at`

func (r *platformRepository) Create(ctx context.Context, platform *domain.Platform) error {
	const query = `
        INSERT INTO platforms (name, manufacturer, kind, release_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, uuid, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		platform.Name,
		platform.Manufacturer,
		platform.Kind,
		platform.ReleaseDate,
	).Scan(&platform.ID, &platform.UUID, &platform.CreatedAt, &platform.UpdatedAt)
}

func (r *platformRepository) Update(ctx context.Context, platform *domain.Platform) error {
	const query = `
        UPDATE platforms SET name=$1, manufacturer=$2, kind=$3, release_date=$4, updated_at=NOW()
        WHERE id=$5 AND is_deleted=FALSE
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		platform.Name,
		platform.Manufacturer,
		platform.Kind,
		platform.ReleaseDate,
		platform.ID,
	).Scan(&platform.UpdatedAt)
}

func (r *platformRepository) scanPlatform(row pgx.Row) (*domain.Platform, error) {
	var platform domain.Platform
	if err := row.Scan(
		&platform.ID,
		&platform.UUID,
		&platform.Name,
		&platform.Manufacturer,
		&platform.Kind,
		&platform.ReleaseDate,
		&platform.IsDeleted,
		&platform.CreatedAt,
		&platform.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &platform, nil
}

func (r *platformRepository) GetByID(ctx context.Context, id string) (*domain.Platform, error) {
	query := `SELECT ` + platformColumns + ` FROM platforms WHERE id=$1`
	return r.scanPlatform(r.pool.QueryRow(ctx, query, id))
}

func (r *platformRepository) List(ctx context.Context, filter PlatformFilter, page PageRequest) (*Page[domain.Platform], error) {
	page = page.Normalize()

	where := ` WHERE ($1 = '' OR LOWER(name) LIKE LOWER('%' || $1 || '%')) AND ($2 OR is_deleted=FALSE)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM platforms`+where, filter.Name, filter.IncludeDeleted).Scan(&total); err != nil {
		return nil, err
	}

	query := `SELECT ` + platformColumns + ` FROM platforms` + where + ` ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, filter.Name, filter.IncludeDeleted, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Platform, 0, page.PageSize)
	for rows.Next() {
		platform, err := r.scanPlatform(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *platform)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &Page[domain.Platform]{Items: items, Page: page.Page, PageSize: page.PageSize, Total: total}, nil
}

func (r *platformRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE platforms SET is_deleted=TRUE, updated_at=NOW() WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
