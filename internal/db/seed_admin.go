package db

import (
	"context"
	"errors"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser seeds one Admin account from config so a fresh
// deployment is reachable. No-op when the credentials are unset or the
// user already exists.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword, cfg.BcryptCost)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, role)
		 VALUES ($1, $2, $3)`,
		cfg.AdminEmail, hash, user.RoleAdmin,
	)

	return err
}
