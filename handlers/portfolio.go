// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/danielhkuo/braiding-studio/auth"
	"github.com/danielhkuo/braiding-studio/booking"
	"github.com/danielhkuo/braiding-studio/cliparse"
	"github.com/danielhkuo/braiding-studio/middleware"
	"github.com/danielhkuo/braiding-studio/models"
	"github.com/danielhkuo/braiding-studio/portfolio"
)

// legacyAssetPrefix marks image URLs that point at bundled frontend assets
const legacyAssetPrefix = "/src/assets/"

var errUnknownStyle = errors.New("unknown style")

type PortfolioHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPortfolioHandler(db *sql.DB, cfg cliparse.Config) *PortfolioHandler {
	return &PortfolioHandler{db: db, cfg: cfg}
}

const imageSelect = `
	SELECT i.id, i.title, i.image_url, i.style_id, s.name, i.client_name,
	       i.completion_date, i.description, i.is_featured, i.display_order, i.created_at
	FROM portfolio_images i
	LEFT JOIN hair_styles s ON s.id = i.style_id
`

func scanImage(row rowScanner) (models.PortfolioImage, error) {
	var img models.PortfolioImage
	var styleName *string

	err := row.Scan(
		&img.ID, &img.Title, &img.ImageURL, &img.StyleID, &styleName, &img.ClientName,
		&img.CompletionDate, &img.Description, &img.IsFeatured, &img.DisplayOrder, &img.CreatedAt,
	)
	if err != nil {
		return models.PortfolioImage{}, err
	}

	img.StyleName = portfolio.StyleName(styleName)
	return img, nil
}

func (h *PortfolioHandler) queryImages(ctx context.Context, orderBy string) ([]models.PortfolioImage, error) {
	rows, err := h.db.QueryContext(ctx, imageSelect+orderBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.PortfolioImage{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// List handles GET /portfolio
// Featured images come first, then newest completion date; undated images last.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	images, err := h.queryImages(ctx, `
		ORDER BY i.is_featured DESC, i.completion_date IS NULL, i.completion_date DESC, i.created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query portfolio", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	styles, err := h.styleNames(ctx)
	if err != nil {
		slog.Error("failed to query style names", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	query := r.URL.Query()
	filtered := portfolio.Filter(images, portfolio.Query{
		Search: query.Get("search"),
		Style:  query.Get("style"),
		Year:   query.Get("year"),
	})

	middleware.JSONResponse(w, http.StatusOK, models.PortfolioResponse{
		Images:         filtered,
		Total:          len(images),
		AvailableYears: portfolio.AvailableYears(images),
		Styles:         styles,
	})
}

func (h *PortfolioHandler) styleNames(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT name FROM hair_styles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AdminList handles GET /admin/portfolio
func (h *PortfolioHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	images, err := h.queryImages(r.Context(), ` ORDER BY i.display_order, i.created_at`)
	if err != nil {
		slog.Error("failed to query portfolio", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, images)
}

// Create handles POST /admin/portfolio
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseImageRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.checkStyle(ctx, req.StyleID); err != nil {
		h.styleError(w, err)
		return
	}

	id := auth.NewID()
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO portfolio_images (id, title, image_url, style_id, client_name, completion_date,
		                              description, is_featured, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, req.Title, req.ImageURL, req.StyleID, req.ClientName, req.CompletionDate,
		req.Description, req.IsFeatured, req.DisplayOrder, time.Now())
	if err != nil {
		slog.Error("failed to insert portfolio image", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add image")
		return
	}

	slog.Info("portfolio image added", "image_id", id, "title", req.Title)

	h.respondImage(ctx, w, id, http.StatusCreated)
}

// Update handles PUT /admin/portfolio/{id}
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	req, ok := h.parseImageRequest(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.checkStyle(ctx, req.StyleID); err != nil {
		h.styleError(w, err)
		return
	}

	res, err := h.db.ExecContext(ctx, `
		UPDATE portfolio_images
		SET title = $1, image_url = $2, style_id = $3, client_name = $4, completion_date = $5,
		    description = $6, is_featured = $7, display_order = $8
		WHERE id = $9
	`, req.Title, req.ImageURL, req.StyleID, req.ClientName, req.CompletionDate,
		req.Description, req.IsFeatured, req.DisplayOrder, id)
	if err != nil {
		slog.Error("failed to update portfolio image", "image_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update image")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Image not found")
		return
	}

	slog.Info("portfolio image updated", "image_id", id)

	h.respondImage(ctx, w, id, http.StatusOK)
}

// Delete handles DELETE /admin/portfolio/{id}
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.ExecContext(r.Context(), `DELETE FROM portfolio_images WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete portfolio image", "image_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Image not found")
		return
	}

	slog.Info("portfolio image deleted", "image_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// FixImageURLs handles POST /admin/portfolio/fix-urls
// Points images still referencing /src/assets/<file> at <storage-url>/portfolio/<file>.
func (h *PortfolioHandler) FixImageURLs(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimRight(h.cfg.StorageURL, "/")
	if base == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Storage URL is not configured")
		return
	}

	ctx := r.Context()
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, image_url FROM portfolio_images WHERE image_url LIKE $1
	`, legacyAssetPrefix+"%")
	if err != nil {
		slog.Error("failed to query legacy image urls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	type legacyImage struct {
		id, url string
	}
	var legacy []legacyImage
	for rows.Next() {
		var img legacyImage
		if err := rows.Scan(&img.id, &img.url); err != nil {
			rows.Close()
			slog.Error("failed to scan image url", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		legacy = append(legacy, img)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate image urls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	fixed := 0
	for _, img := range legacy {
		newURL := base + "/portfolio/" + path.Base(img.url)
		if _, err := h.db.ExecContext(ctx, `
			UPDATE portfolio_images SET image_url = $1 WHERE id = $2
		`, newURL, img.id); err != nil {
			slog.Error("failed to fix image url", "image_id", img.id, "error", err)
			continue
		}
		fixed++
	}

	slog.Info("portfolio image urls fixed", "fixed", fixed, "found", len(legacy))

	middleware.JSONResponse(w, http.StatusOK, models.FixImageURLsResponse{Fixed: fixed})
}

func (h *PortfolioHandler) parseImageRequest(w http.ResponseWriter, r *http.Request) (models.PortfolioImageRequest, bool) {
	var req models.PortfolioImageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if req.Title == "" || req.ImageURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and image_url are required")
		return req, false
	}

	req.StyleID = nilIfBlank(req.StyleID)
	req.ClientName = nilIfBlank(req.ClientName)
	req.Description = nilIfBlank(req.Description)
	req.CompletionDate = nilIfBlank(req.CompletionDate)
	if req.CompletionDate != nil && !booking.ValidDate(*req.CompletionDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "completion_date must be YYYY-MM-DD")
		return req, false
	}

	return req, true
}

func (h *PortfolioHandler) checkStyle(ctx context.Context, styleID *string) error {
	if styleID == nil {
		return nil
	}
	var exists int
	err := h.db.QueryRowContext(ctx, `SELECT 1 FROM hair_styles WHERE id = $1`, *styleID).Scan(&exists)
	if err == sql.ErrNoRows {
		return errUnknownStyle
	}
	return err
}

func (h *PortfolioHandler) styleError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownStyle) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown style")
		return
	}
	slog.Error("failed to query style", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

func (h *PortfolioHandler) respondImage(ctx context.Context, w http.ResponseWriter, id string, status int) {
	img, err := scanImage(h.db.QueryRowContext(ctx, imageSelect+` WHERE i.id = $1`, id))
	if err != nil {
		slog.Error("failed to reload portfolio image", "image_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, status, img)
}

func nilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
