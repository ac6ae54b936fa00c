package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"payportal/internal/domain/auth"
	"payportal/internal/platform/config"
)

// Seed ensures the default HR admin account exists so a fresh deployment can
// log in and upload the first workbook.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedHREmail) == "" || strings.TrimSpace(cfg.SeedHRPassword) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", cfg.SeedHREmail).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedHRPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO users (email, password_hash, name, role, can_login) VALUES ($1, $2, $3, $4, TRUE)",
		cfg.SeedHREmail, hash, cfg.SeedHRName, auth.RoleHR)
	return err
}
