// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/braiding-studio/booking"
	"github.com/danielhkuo/braiding-studio/cliparse"
	"github.com/danielhkuo/braiding-studio/middleware"
	"github.com/danielhkuo/braiding-studio/models"
)

type ClientHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewClientHandler(db *sql.DB, cfg cliparse.Config) *ClientHandler {
	return &ClientHandler{db: db, cfg: cfg}
}

// ListClients handles GET /admin/clients
// Only accounts with at least one appointment are listed, newest booking first.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appointments, err := queryAppointments(ctx, h.db, ` ORDER BY a.created_at DESC`)
	if err != nil {
		slog.Error("failed to query appointments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.full_name, u.role, u.created_at, u.updated_at,
		       p.first_name, p.last_name, p.phone, p.city, p.state
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE EXISTS (SELECT 1 FROM appointments a WHERE a.client_id = u.id)
	`)
	if err != nil {
		slog.Error("failed to query clients", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	byID := make(map[string]*models.ClientSummary)
	for rows.Next() {
		var c models.ClientSummary
		var firstName, lastName, phone, city, state sql.NullString
		if err := rows.Scan(&c.User.ID, &c.User.Email, &c.User.FullName, &c.User.Role,
			&c.User.CreatedAt, &c.User.UpdatedAt,
			&firstName, &lastName, &phone, &city, &state); err != nil {
			slog.Error("failed to scan client", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		c.User.IsAdmin = c.User.Role == models.RoleAdmin
		c.Profile = models.Profile{
			FirstName: firstName.String,
			LastName:  lastName.String,
			Phone:     phone.String,
			City:      city.String,
			State:     state.String,
		}
		c.Appointments = []models.Appointment{}
		byID[c.User.ID] = &c
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate clients", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// appointments is newest first, so the first sighting orders the clients
	clients := make([]models.ClientSummary, 0, len(byID))
	order := make([]string, 0, len(byID))
	for _, apt := range appointments {
		c, ok := byID[apt.ClientID]
		if !ok {
			continue
		}
		if len(c.Appointments) == 0 {
			order = append(order, apt.ClientID)
		}
		c.Appointments = append(c.Appointments, apt)
	}

	now := time.Now()
	loc := h.cfg.Location()
	for _, id := range order {
		c := byID[id]
		c.Stats = booking.ClientStats(c.Appointments, now, loc)
		clients = append(clients, *c)
	}

	middleware.JSONResponse(w, http.StatusOK, clients)
}

// Summary handles GET /admin/summary
func (h *ClientHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := models.AdminSummary{
		AppointmentsByStatus: map[string]int{
			models.StatusPending:   0,
			models.StatusQuoted:    0,
			models.StatusConfirmed: 0,
			models.StatusCompleted: 0,
			models.StatusCancelled: 0,
		},
	}

	g, ctx := errgroup.WithContext(r.Context())

	// Each goroutine writes a distinct field
	byStatus := make(map[string]int)
	g.Go(func() error {
		rows, err := h.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM appointments GROUP BY status`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var status string
			var n int
			if err := rows.Scan(&status, &n); err != nil {
				return err
			}
			byStatus[status] = n
		}
		return rows.Err()
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hair_styles`).Scan(&summary.Services)
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM portfolio_images`).Scan(&summary.PortfolioImages)
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT client_id) FROM appointments`).Scan(&summary.Clients)
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to build admin summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for status, n := range byStatus {
		summary.AppointmentsByStatus[status] = n
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}
