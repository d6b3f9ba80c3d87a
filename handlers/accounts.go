// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/braiding-studio/auth"
	"github.com/danielhkuo/braiding-studio/cliparse"
	"github.com/danielhkuo/braiding-studio/db"
	"github.com/danielhkuo/braiding-studio/middleware"
	"github.com/danielhkuo/braiding-studio/models"
)

// TokenTTL is how long a login stays valid
const TokenTTL = 7 * 24 * time.Hour

// DefaultAdminName is used when an admin is provisioned without a name
const DefaultAdminName = "Studio Admin"

var (
	errEmailTaken  = errors.New("email already in use")
	errAdminExists = errors.New("an admin already exists")
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Signup handles POST /auth/signup
// Creates a client account and logs it in
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	user, err := h.createUser(r.Context(), email, req.Password, strings.TrimSpace(req.FullName), models.RoleClient, false)
	if msg, ok := passwordProblem(err); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if errors.Is(err, errEmailTaken) {
		middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		slog.Error("failed to create account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("client signed up", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token: auth.IssueToken(user.ID, h.cfg.SessionSecret, TokenTTL),
		User:  user,
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := db.GetUserByEmail(r.Context(), h.db, auth.NormalizeEmail(req.Email))
	if errors.Is(err, db.ErrUserNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token: auth.IssueToken(user.ID, h.cfg.SessionSecret, TokenTTL),
		User:  user,
	})
}

// Me handles GET /auth/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	middleware.JSONResponse(w, http.StatusOK, user)
}

// SetupAdmin handles POST /admin/setup
// Provisions an admin account. With a configured setup key the X-Setup-Key
// header must match; without one, setup only works until the first admin exists.
func (h *AccountHandler) SetupAdmin(w http.ResponseWriter, r *http.Request) {
	if h.cfg.SetupKey != "" {
		key := r.Header.Get("X-Setup-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.SetupKey)) != 1 {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid setup key")
			return
		}
	} else {
		admins, err := db.CountAdmins(r.Context(), h.db)
		if err != nil {
			slog.Error("failed to count admins", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if admins > 0 {
			middleware.ErrorResponse(w, http.StatusForbidden, "An admin already exists; configure ADMIN_SETUP_KEY to add more")
			return
		}
	}

	var req models.SetupAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = DefaultAdminName
	}

	// Without a setup key the insert itself re-checks that no admin exists
	firstOnly := h.cfg.SetupKey == ""
	user, err := h.createUser(r.Context(), email, req.Password, fullName, models.RoleAdmin, firstOnly)
	if errors.Is(err, errAdminExists) {
		middleware.ErrorResponse(w, http.StatusForbidden, "An admin already exists; configure ADMIN_SETUP_KEY to add more")
		return
	}
	if errors.Is(err, errEmailTaken) {
		slog.Info("admin setup skipped, account exists", "email", email)
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
			Message: "Admin user already exists and is ready to use",
		})
		return
	}
	if msg, ok := passwordProblem(err); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		slog.Error("failed to create admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("admin provisioned", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "User created successfully",
		User:    &user,
	})
}

// ListAdmins handles GET /admin/accounts
func (h *AccountHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, email, full_name, role, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY created_at
	`, models.RoleAdmin)
	if err != nil {
		slog.Error("failed to query admins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	admins := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			slog.Error("failed to scan admin", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		u.IsAdmin = true
		admins = append(admins, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate admins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, admins)
}

// UpdateOwnAccount handles PUT /admin/accounts/me
// Name and email are required; a new password must be confirmed
func (h *AccountHandler) UpdateOwnAccount(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.UserFromContext(r.Context())

	var req models.UpdateOwnAccountRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := auth.NormalizeEmail(req.Email)
	if fullName == "" || email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name and email are required")
		return
	}
	if !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if req.Password != "" && req.Password != req.ConfirmPassword {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	h.saveAccount(w, r, current, fullName, email, req.Password, "Account details updated successfully")
}

// UpdateAdmin handles PUT /admin/accounts/{id}
// Only the super admin may edit other admin accounts
func (h *AccountHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.UserFromContext(r.Context())

	superAdmin := auth.NormalizeEmail(h.cfg.SuperAdminEmail)
	if superAdmin == "" || requester.Email != superAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the super admin can edit other admin accounts")
		return
	}

	adminID := r.PathValue("id")
	if adminID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.UpdateAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := auth.NormalizeEmail(req.Email)
	if fullName == "" && email == "" && req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "At least one of full_name, email or password is required")
		return
	}
	if email != "" && !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	target, err := db.GetUserByID(r.Context(), h.db, adminID)
	if errors.Is(err, db.ErrUserNotFound) || (err == nil && !target.IsAdmin) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		slog.Error("failed to query admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Omitted fields keep their current value
	if fullName == "" {
		fullName = target.FullName
	}
	if email == "" {
		email = target.Email
	}

	h.saveAccount(w, r, target, fullName, email, req.Password, "Admin user updated successfully")
}

// saveAccount writes name, email and optionally a new password for user,
// then responds with the updated account
func (h *AccountHandler) saveAccount(w http.ResponseWriter, r *http.Request, user models.User, fullName, email, password, message string) {
	ctx := r.Context()

	if email != user.Email {
		_, err := db.GetUserByEmail(ctx, h.db, email)
		if err == nil {
			middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		if !errors.Is(err, db.ErrUserNotFound) {
			slog.Error("failed to query user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	passwordHash := user.PasswordHash
	if password != "" {
		hash, err := auth.HashPassword(password)
		if msg, ok := passwordProblem(err); ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update account")
			return
		}
		passwordHash = hash
	}

	_, err := h.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = $1, email = $2, password_hash = $3, updated_at = $4
		WHERE id = $5
	`, fullName, email, passwordHash, time.Now(), user.ID)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		slog.Error("failed to update account", "user_id", user.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	updated, err := db.GetUserByID(ctx, h.db, user.ID)
	if err != nil {
		slog.Error("failed to reload account", "user_id", user.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("account updated", "user_id", user.ID, "password_changed", password != "")

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: message,
		User:    &updated,
	})
}

// createUser inserts an account after checking the email is free.
// With firstAdminOnly the row is only written while no admin exists.
func (h *AccountHandler) createUser(ctx context.Context, email, password, fullName, role string, firstAdminOnly bool) (models.User, error) {
	_, err := db.GetUserByEmail(ctx, h.db, email)
	if err == nil {
		return models.User{}, errEmailTaken
	}
	if !errors.Is(err, db.ErrUserNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	id := auth.NewID()
	if firstAdminOnly {
		// Timestamps come from column defaults; CAST keeps Postgres from
		// typing the bare parameters as unknown. Under Postgres READ COMMITTED
		// two of these can still both succeed, so deployments there should
		// set ADMIN_SETUP_KEY.
		res, err := h.db.ExecContext(ctx, `
			INSERT INTO users (id, email, password_hash, full_name, role)
			SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), CAST($3 AS TEXT), CAST($4 AS TEXT), CAST($5 AS TEXT)
			WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = $6)
		`, id, email, hash, fullName, role, models.RoleAdmin)
		if db.IsUniqueViolation(err) {
			return models.User{}, errEmailTaken
		}
		if err != nil {
			return models.User{}, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return models.User{}, errAdminExists
		}
		return db.GetUserByID(ctx, h.db, id)
	}

	now := time.Now()
	user := models.User{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		Role:      role,
		IsAdmin:   role == models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// A concurrent request may have taken the email since the lookup
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, hash, user.FullName, user.Role, now, now)
	if db.IsUniqueViolation(err) {
		return models.User{}, errEmailTaken
	}
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// passwordProblem maps password length errors to a client-facing message
func passwordProblem(err error) (string, bool) {
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		return fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength), true
	case errors.Is(err, auth.ErrPasswordTooLong):
		return fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordLength), true
	}
	return "", false
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
