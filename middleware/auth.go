// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/braiding-studio/auth"
	"github.com/danielhkuo/braiding-studio/db"
	"github.com/danielhkuo/braiding-studio/models"
)

type contextKey struct{}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the user set by RequireUser or RequireAdmin
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(contextKey{}).(models.User)
	return user, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticator resolves bearer tokens to accounts
type Authenticator struct {
	db     *sql.DB
	secret string
}

func NewAuthenticator(conn *sql.DB, secret string) *Authenticator {
	return &Authenticator{db: conn, secret: secret}
}

// RequireUser rejects requests without a valid bearer token
func (a *Authenticator) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireAdmin rejects requests that are not from an admin account
func (a *Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		if !user.IsAdmin {
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	token := BearerToken(r)
	if token == "" {
		ErrorResponse(w, http.StatusUnauthorized, "Authorization header required")
		return models.User{}, false
	}

	userID, err := auth.ParseToken(token, a.secret)
	if err != nil {
		ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
		return models.User{}, false
	}

	user, err := db.GetUserByID(r.Context(), a.db, userID)
	if errors.Is(err, db.ErrUserNotFound) {
		ErrorResponse(w, http.StatusUnauthorized, "Account no longer exists")
		return models.User{}, false
	}
	if err != nil {
		slog.Error("failed to load user", "user_id", userID, "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.User{}, false
	}

	return user, true
}
