package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/cocktail-bac/internal/domain/auth"
	"github.com/yanqian/cocktail-bac/internal/domain/bac"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             BIGSERIAL PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE,
	nickname       TEXT NOT NULL,
	password_hash  TEXT NOT NULL,
	biological_sex TEXT NULL CHECK (biological_sex IN ('male', 'female')),
	weight_kg      DOUBLE PRECISION NULL CHECK (weight_kg > 0),
	zip_code       TEXT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const userColumns = `id, email, nickname, password_hash, biological_sex, weight_kg, zip_code, created_at, updated_at`

const uniqueViolation = "23505"

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the users table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Create inserts a new user row.
func (r *PostgresRepository) Create(ctx context.Context, email, nickname, passwordHash string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, nickname, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns, email, nickname, passwordHash)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.User{}, auth.ErrEmailExists
		}
		return auth.User{}, err
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1`, id)
}

// UpdateProfile patches profile columns, leaving NULL arguments untouched.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id int64, patch auth.ProfilePatch) (auth.User, error) {
	var sex *string
	if patch.BiologicalSex != nil {
		v := string(*patch.BiologicalSex)
		sex = &v
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET biological_sex = COALESCE($2::text, biological_sex),
		    weight_kg      = COALESCE($3::double precision, weight_kg),
		    zip_code       = COALESCE($4::text, zip_code),
		    updated_at     = now()
		WHERE id = $1
		RETURNING `+userColumns, id, sex, patch.WeightKg, patch.ZipCode)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, err
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (auth.User, error) {
	var (
		user             auth.User
		sex              *string
		created, updated time.Time
	)
	if err := row.Scan(&user.ID, &user.Email, &user.Nickname, &user.PasswordHash, &sex, &user.WeightKg, &user.ZipCode, &created, &updated); err != nil {
		return auth.User{}, err
	}
	if sex != nil {
		parsed := bac.Sex(*sex)
		user.BiologicalSex = &parsed
	}
	user.CreatedAt = created.UTC()
	user.UpdatedAt = updated.UTC()
	return user, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
