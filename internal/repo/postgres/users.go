package postgres

import (
	"context"
	"errors"

	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.BeginTx(ctx, pgx.TxOptions{})
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User

	err := observe(r.prom, "users.get_by_username", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, username, password_hash, role, created_at
			 FROM users
			 WHERE username = $1`,
			username,
		).Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, username, passwordHash string, role user.Role) (user.User, error) {
	var u user.User

	err := observe(r.prom, "users.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO users (username, password_hash, role)
			 VALUES ($1, $2, $3)
			 RETURNING id, username, password_hash, role, created_at`,
			username, passwordHash, role,
		).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

// CreateTx is the transactional variant used by vendor signup: the user
// insert and the vendor insert commit or roll back together.
func (r *UsersRepo) CreateTx(ctx context.Context, tx pgx.Tx, username, passwordHash string, role user.Role) (user.User, error) {
	var u user.User

	err := observe(r.prom, "users.create_tx", func() error {
		return tx.QueryRow(
			ctx,
			`INSERT INTO users (username, password_hash, role)
			 VALUES ($1, $2, $3)
			 RETURNING id, username, password_hash, role, created_at`,
			username, passwordHash, role,
		).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

// List returns users for the admin directory. The password hash is not
// selected at all, so it can never leak into a response.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User

	err := observe(r.prom, "users.list", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT id, username, role, created_at FROM users ORDER BY id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]user.User, 0)

		for rows.Next() {
			var u user.User

			if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt); err != nil {
				return err
			}
			out = append(out, u)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}
