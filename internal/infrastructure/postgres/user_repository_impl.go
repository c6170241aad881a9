package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	"github.com/oksasatya/recipe-share-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.IsActive,
		&u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, is_active, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Name, u.Password, u.IsActive, u.IsStaff, u.IsSuperuser)

	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, name = $2, password_hash = $3, is_active = $4,
		    is_staff = $5, is_superuser = $6, updated_at = $7
		WHERE id = $8
	`, u.Email, u.Name, u.Password, u.IsActive, u.IsStaff, u.IsSuperuser, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Follow(ctx context.Context, userID, followedID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_following (user_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, followedID)
	return err
}

func (r *UserRepository) Unfollow(ctx context.Context, userID, followedID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_following WHERE user_id = $1 AND followed_id = $2
	`, userID, followedID)
	return err
}

func (r *UserRepository) Following(ctx context.Context, userID int64) ([]entity.User, error) {
	return r.queryRelated(ctx, `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.is_staff,
		       u.is_superuser, u.created_at, u.updated_at
		FROM user_following f
		JOIN users u ON u.id = f.followed_id
		WHERE f.user_id = $1
		ORDER BY u.id
	`, userID)
}

func (r *UserRepository) Followers(ctx context.Context, userID int64) ([]entity.User, error) {
	return r.queryRelated(ctx, `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.is_staff,
		       u.is_superuser, u.created_at, u.updated_at
		FROM user_following f
		JOIN users u ON u.id = f.user_id
		WHERE f.followed_id = $1
		ORDER BY u.id
	`, userID)
}

func (r *UserRepository) queryRelated(ctx context.Context, sql string, userID int64) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u := entity.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.IsActive,
			&u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
