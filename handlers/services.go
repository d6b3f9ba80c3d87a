// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
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

type ServiceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewServiceHandler(db *sql.DB, cfg cliparse.Config) *ServiceHandler {
	return &ServiceHandler{db: db, cfg: cfg}
}

// List handles GET /services and GET /admin/services
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, description, base_price, duration_hours, created_at
		FROM hair_styles
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query services", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.DurationHours, &s.CreatedAt); err != nil {
			slog.Error("failed to scan service", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate services", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, services)
}

// Create handles POST /admin/services
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseServiceRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if taken, err := h.nameTaken(ctx, req.Name, ""); err != nil {
		slog.Error("failed to check service name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	} else if taken {
		middleware.ErrorResponse(w, http.StatusConflict, "A service with this name already exists")
		return
	}

	service := models.Service{
		ID:            auth.NewID(),
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		DurationHours: req.DurationHours,
		CreatedAt:     time.Now(),
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO hair_styles (id, name, description, base_price, duration_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, service.ID, service.Name, service.Description, service.BasePrice, service.DurationHours, service.CreatedAt)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "A service with this name already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert service", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	slog.Info("service created", "service_id", service.ID, "name", service.Name)

	middleware.JSONResponse(w, http.StatusCreated, service)
}

// Update handles PUT /admin/services/{id}
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	req, ok := h.parseServiceRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if taken, err := h.nameTaken(ctx, req.Name, id); err != nil {
		slog.Error("failed to check service name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	} else if taken {
		middleware.ErrorResponse(w, http.StatusConflict, "A service with this name already exists")
		return
	}

	res, err := h.db.ExecContext(ctx, `
		UPDATE hair_styles
		SET name = $1, description = $2, base_price = $3, duration_hours = $4
		WHERE id = $5
	`, req.Name, req.Description, req.BasePrice, req.DurationHours, id)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "A service with this name already exists")
		return
	}
	if err != nil {
		slog.Error("failed to update service", "service_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update service")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Service not found")
		return
	}

	var service models.Service
	err = h.db.QueryRowContext(ctx, `
		SELECT id, name, description, base_price, duration_hours, created_at
		FROM hair_styles WHERE id = $1
	`, id).Scan(&service.ID, &service.Name, &service.Description, &service.BasePrice, &service.DurationHours, &service.CreatedAt)
	if err != nil {
		slog.Error("failed to reload service", "service_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("service updated", "service_id", id)

	middleware.JSONResponse(w, http.StatusOK, service)
}

// Delete handles DELETE /admin/services/{id}
// Appointments and portfolio images keep existing with no style
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.ExecContext(r.Context(), `DELETE FROM hair_styles WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete service", "service_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Service not found")
		return
	}

	slog.Info("service deleted", "service_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *ServiceHandler) parseServiceRequest(w http.ResponseWriter, r *http.Request) (models.ServiceRequest, bool) {
	var req models.ServiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return req, false
	}
	if req.BasePrice != nil && *req.BasePrice < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "base_price cannot be negative")
		return req, false
	}
	if req.DurationHours != nil && *req.DurationHours <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_hours must be positive")
		return req, false
	}

	return req, true
}

// nameTaken reports whether another service (not exceptID) uses name
func (h *ServiceHandler) nameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM hair_styles WHERE name = $1 AND id <> $2
	`, name, exceptID).Scan(&count)
	return count > 0, err
}
