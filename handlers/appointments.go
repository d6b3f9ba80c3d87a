// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/braiding-studio/auth"
	"github.com/danielhkuo/braiding-studio/booking"
	"github.com/danielhkuo/braiding-studio/cliparse"
	"github.com/danielhkuo/braiding-studio/mailer"
	"github.com/danielhkuo/braiding-studio/middleware"
	"github.com/danielhkuo/braiding-studio/models"
)

// CustomStyleName is shown for appointments booked without a catalog style
const CustomStyleName = "Custom Style"

// mailTimeout bounds the confirmation email send
const mailTimeout = 10 * time.Second

type AppointmentHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	sender mailer.Sender
}

func NewAppointmentHandler(db *sql.DB, cfg cliparse.Config, sender mailer.Sender) *AppointmentHandler {
	return &AppointmentHandler{db: db, cfg: cfg, sender: sender}
}

const appointmentSelect = `
	SELECT a.id, a.client_id, a.style_id, s.name, a.appointment_date, a.appointment_time,
	       a.special_requests, a.estimated_duration, a.price_quote, a.status,
	       a.created_at, a.updated_at,
	       p.first_name, p.last_name, p.phone, u.email
	FROM appointments a
	JOIN users u ON u.id = a.client_id
	LEFT JOIN hair_styles s ON s.id = a.style_id
	LEFT JOIN profiles p ON p.user_id = a.client_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var apt models.Appointment
	var styleName, firstName, lastName, phone sql.NullString

	err := row.Scan(
		&apt.ID, &apt.ClientID, &apt.StyleID, &styleName, &apt.AppointmentDate, &apt.AppointmentTime,
		&apt.SpecialRequests, &apt.EstimatedDuration, &apt.PriceQuote, &apt.Status,
		&apt.CreatedAt, &apt.UpdatedAt,
		&firstName, &lastName, &phone, &apt.ClientEmail,
	)
	if err != nil {
		return models.Appointment{}, err
	}

	apt.NextAction = booking.NextAction(apt.Status)
	apt.StyleName = CustomStyleName
	if styleName.Valid && styleName.String != "" {
		apt.StyleName = styleName.String
	}
	apt.Client = &models.Profile{
		FirstName: firstName.String,
		LastName:  lastName.String,
		Phone:     phone.String,
	}

	return apt, nil
}

// queryAppointments runs appointmentSelect with an optional WHERE/ORDER suffix
func queryAppointments(ctx context.Context, conn *sql.DB, suffix string, args ...any) ([]models.Appointment, error) {
	rows, err := conn.QueryContext(ctx, appointmentSelect+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, apt)
	}
	return appointments, rows.Err()
}

func getAppointment(ctx context.Context, conn *sql.DB, id string) (models.Appointment, error) {
	return scanAppointment(conn.QueryRowContext(ctx, appointmentSelect+` WHERE a.id = $1`, id))
}

// Book handles POST /appointments
// Saves the client's contact details, creates a pending appointment and
// emails a confirmation. A failed email does not fail the booking.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.BookAppointmentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)

	// Validate input
	if req.FirstName == "" || req.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}
	if req.Phone == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "phone is required")
		return
	}
	if !booking.ValidDate(req.Date) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if booking.BeforeToday(req.Date, time.Now(), h.cfg.Location()) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date cannot be in the past")
		return
	}
	if !booking.ValidTime(req.Time) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "time must be HH:MM")
		return
	}

	ctx := r.Context()

	// Resolve style and duration
	styleName := CustomStyleName
	duration := models.DefaultDurationHours
	var styleID *string
	if req.StyleID != nil && *req.StyleID != "" {
		var name string
		var hours sql.NullInt64
		err := h.db.QueryRowContext(ctx, `
			SELECT name, duration_hours FROM hair_styles WHERE id = $1
		`, *req.StyleID).Scan(&name, &hours)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown style")
			return
		}
		if err != nil {
			slog.Error("failed to query style", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		styleID = req.StyleID
		styleName = name
		if hours.Valid && hours.Int64 > 0 {
			duration = int(hours.Int64)
		}
	}

	var specialRequests *string
	if s := strings.TrimSpace(req.SpecialRequests); s != "" {
		specialRequests = &s
	}

	appointmentID := auth.NewID()
	now := time.Now()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, first_name, last_name, phone, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at
	`, user.ID, req.FirstName, req.LastName, req.Phone, now)
	if err != nil {
		slog.Error("failed to upsert profile", "user_id", user.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO appointments (id, client_id, style_id, appointment_date, appointment_time,
		                          special_requests, estimated_duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, appointmentID, user.ID, styleID, req.Date, req.Time, specialRequests, duration,
		models.StatusPending, now, now)
	if err != nil {
		slog.Error("failed to insert appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	slog.Info("appointment requested", "appointment_id", appointmentID, "client_id", user.ID)

	h.sendConfirmation(ctx, mailer.ConfirmationData{
		AppointmentID:     appointmentID,
		ClientName:        req.FirstName + " " + req.LastName,
		ClientEmail:       user.Email,
		ClientPhone:       req.Phone,
		StyleName:         styleName,
		Date:              req.Date,
		Time:              req.Time,
		SpecialRequests:   req.SpecialRequests,
		EstimatedDuration: duration,
		StudioPhone:       h.cfg.StudioPhone,
		StudioEmail:       h.cfg.StudioEmail,
	})

	apt, err := getAppointment(ctx, h.db, appointmentID)
	if err != nil {
		slog.Error("failed to reload appointment", "appointment_id", appointmentID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, apt)
}

// sendConfirmation emails the booking summary; errors are only logged
func (h *AppointmentHandler) sendConfirmation(ctx context.Context, data mailer.ConfirmationData) {
	subject, body, err := mailer.RenderConfirmation(data, h.cfg.Location())
	if err != nil {
		slog.Error("failed to render confirmation email", "appointment_id", data.AppointmentID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()

	id, err := h.sender.Send(ctx, mailer.Message{
		From:    h.cfg.MailFrom,
		To:      []string{data.ClientEmail},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		slog.Error("failed to send confirmation email", "appointment_id", data.AppointmentID, "error", err)
		return
	}

	slog.Info("confirmation email sent", "appointment_id", data.AppointmentID, "message_id", id)
}

// GetAppointment handles GET /appointments/{id}
// Clients see their own appointments; admins see any
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	apt, err := getAppointment(r.Context(), h.db, id)
	if err == sql.ErrNoRows || (err == nil && apt.ClientID != user.ID && !user.IsAdmin) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		slog.Error("failed to query appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, apt)
}

// MyAppointments handles GET /me/appointments
func (h *AppointmentHandler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	appointments, err := queryAppointments(r.Context(), h.db, `
		WHERE a.client_id = $1
		ORDER BY a.created_at DESC
	`, user.ID)
	if err != nil {
		slog.Error("failed to query appointments", "user_id", user.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, appointments)
}

// ListAll handles GET /admin/appointments
// Optional ?status= narrows the list
func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var appointments []models.Appointment
	var err error
	if status == "" {
		appointments, err = queryAppointments(r.Context(), h.db, ` ORDER BY a.created_at DESC`)
	} else {
		if !booking.IsValidStatus(status) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown status")
			return
		}
		appointments, err = queryAppointments(r.Context(), h.db, `
			WHERE a.status = $1
			ORDER BY a.created_at DESC
		`, status)
	}
	if err != nil {
		slog.Error("failed to query appointments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, appointments)
}

// Update handles PATCH /admin/appointments/{id}
// Moves the status and/or sets a price quote. Quoting a pending appointment
// marks it quoted unless an explicit status is given.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.UpdateAppointmentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Status == nil && req.PriceQuote == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status or price_quote is required")
		return
	}
	if req.PriceQuote != nil && *req.PriceQuote < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "price_quote cannot be negative")
		return
	}

	ctx := r.Context()

	var current string
	var quote sql.NullFloat64
	err := h.db.QueryRowContext(ctx, `
		SELECT status, price_quote FROM appointments WHERE id = $1
	`, id).Scan(&current, &quote)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		slog.Error("failed to query appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	next := current
	if req.PriceQuote != nil {
		next = booking.ApplyQuote(current)
		quote = sql.NullFloat64{Float64: *req.PriceQuote, Valid: true}
	}
	if req.Status != nil {
		next = *req.Status
	}

	if err := booking.Transition(current, next); err != nil {
		if errors.Is(err, booking.ErrUnknownStatus) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown status")
			return
		}
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}

	// Guard on the status we read so concurrent edits don't skip a step
	res, err := h.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = $1, price_quote = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`, next, quote, time.Now(), id, current)
	if err != nil {
		slog.Error("failed to update appointment", "appointment_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update appointment")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Appointment was changed by someone else; reload and try again")
		return
	}

	slog.Info("appointment updated", "appointment_id", id, "from", current, "to", next)

	apt, err := getAppointment(ctx, h.db, id)
	if err != nil {
		slog.Error("failed to reload appointment", "appointment_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, apt)
}
