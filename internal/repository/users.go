// Package repository holds the Postgres-backed stores that live outside
// the in-memory engine. SQL is written by hand against pgx.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is a staff account: owner, manager, cashier, or waiter.
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	HashedPassword string
	Role           string
	CreatedAt      time.Time
}

// Users is the user store.
type Users struct {
	pool *pgxpool.Pool
}

// NewUsers creates a user store on the given pool.
func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

// EnsureSchema creates the users table if it does not exist.
func (r *Users) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id              UUID PRIMARY KEY,
			full_name       TEXT NOT NULL,
			email           TEXT NOT NULL UNIQUE,
			hashed_password TEXT NOT NULL,
			role            TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns pgx.ErrNoRows when the
// email is unknown.
func (r *Users) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, hashed_password, role, created_at
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id. Returns pgx.ErrNoRows when absent.
func (r *Users) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, hashed_password, role, created_at
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

// Upsert inserts a user, updating name, password, and role when the
// email already exists. Used by the seed command.
func (r *Users) Upsert(ctx context.Context, u User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, full_name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    hashed_password = EXCLUDED.hashed_password,
		    role = EXCLUDED.role`,
		u.ID, u.FullName, u.Email, u.HashedPassword, u.Role)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.Email, err)
	}
	return nil
}
