// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danielhkuo/braiding-studio/models"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, email, password_hash, full_name, role, created_at, updated_at`

// GetUserByID loads an account by primary key
func GetUserByID(ctx context.Context, conn *sql.DB, id string) (models.User, error) {
	return scanUser(conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetUserByEmail loads an account by normalized email
func GetUserByEmail(ctx context.Context, conn *sql.DB, email string) (models.User, error) {
	return scanUser(conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// CountAdmins returns how many admin accounts exist
func CountAdmins(ctx context.Context, conn *sql.DB) (int, error) {
	var n int
	err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, models.RoleAdmin).Scan(&n)
	return n, err
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	u.IsAdmin = u.Role == models.RoleAdmin
	return u, nil
}
