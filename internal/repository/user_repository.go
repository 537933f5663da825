package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter, page PageRequest) (*Page[domain.User], error)
	SoftDelete(ctx context.Context, id string) error
}

// UserFilter narrows account listings. Username and Email match as
// case-insensitive substrings.
type UserFilter struct {
	Username       string
	Email          string
	IncludeDeleted bool
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func rolesFromStrings(raw []string) []domain.Role {
	out := make([]domain.Role, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Role(r))
	}
	return out
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, surname, username, email, password_hash, roles)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Surname,
		user.Username,
		user.Email,
		user.PasswordHash,
		rolesToStrings(user.Roles),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, surname=$2, username=$3, email=$4, password_hash=$5, roles=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Surname,
		user.Username,
		user.Email,
		user.PasswordHash,
		rolesToStrings(user.Roles),
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var roles []string
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&roles,
		&user.IsDeleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Roles = rolesFromStrings(roles)
	return &user, nil
}

const userColumns = `id, name, surname, username, email, password_hash, roles, is_deleted, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, page PageRequest) (*Page[domain.User], error) {
	page = page.Normalize()

	where := ` WHERE ($1 = '' OR LOWER(username) LIKE LOWER('%' || $1 || '%'))
        AND ($2 = '' OR LOWER(email) LIKE LOWER('%' || $2 || '%'))
        AND ($3 OR is_deleted=FALSE)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where,
		filter.Username, filter.Email, filter.IncludeDeleted).Scan(&total); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(ctx, query, filter.Username, filter.Email, filter.IncludeDeleted, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.User, 0, page.PageSize)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &Page[domain.User]{Items: items, Page: page.Page, PageSize: page.PageSize, Total: total}, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET is_deleted=TRUE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
