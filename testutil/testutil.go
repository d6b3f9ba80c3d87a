// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/braiding-studio/auth"
	"github.com/danielhkuo/braiding-studio/cliparse"
	"github.com/danielhkuo/braiding-studio/db"
	"github.com/danielhkuo/braiding-studio/mailer"
	"github.com/danielhkuo/braiding-studio/models"
)

// TestPassword is the password every fixture account is created with
const TestPassword = "braids-and-twists"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.Config{DatabaseType: "sqlite", DatabaseURL: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		SessionSecret:   "test-session-secret",
		SuperAdminEmail: "owner@example.com",
		MailFrom:        cliparse.DefaultMailFrom,
		StorageURL:      "https://cdn.example.com/storage/v1/object/public",
		Timezone:        "America/New_York",
		StudioPhone:     "(503) 555-0123",
		StudioEmail:     "info@braidingstudio.com",
	}
}

// CreateTestUser inserts an account and returns it with a valid bearer token
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, email, role string) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		ID:           auth.NewID(),
		Email:        auth.NormalizeEmail(email),
		FullName:     "Test " + role,
		Role:         role,
		IsAdmin:      role == models.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, now, now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user, auth.IssueToken(user.ID, cfg.SessionSecret, time.Hour)
}

// CreateTestProfile sets contact details for a client
func CreateTestProfile(t *testing.T, conn *sql.DB, userID, firstName, lastName, phone string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO profiles (user_id, first_name, last_name, phone, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, firstName, lastName, phone, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
}

// CreateTestService adds a hair style and returns its ID
func CreateTestService(t *testing.T, conn *sql.DB, name string, price float64, hours int) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO hair_styles (id, name, description, base_price, duration_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, name, name+" description", price, hours, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}

	return id
}

// CreateTestAppointment inserts an appointment with the given status and returns its ID
func CreateTestAppointment(t *testing.T, conn *sql.DB, clientID string, styleID *string, date, status string) string {
	t.Helper()

	id := auth.NewID()
	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO appointments (id, client_id, style_id, appointment_date, appointment_time,
		                          estimated_duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '10:00', 3, $5, $6, $7)
	`, id, clientID, styleID, date, status, now, now)
	if err != nil {
		t.Fatalf("Failed to create test appointment: %v", err)
	}

	return id
}

// CreateTestImage adds a portfolio image and returns its ID
func CreateTestImage(t *testing.T, conn *sql.DB, title, imageURL string, styleID, completionDate *string, featured bool, order int) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO portfolio_images (id, title, image_url, style_id, completion_date,
		                              is_featured, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, title, imageURL, styleID, completionDate, featured, order, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}

	return id
}

// FakeSender records messages instead of sending them
type FakeSender struct {
	mu       sync.Mutex
	Messages []mailer.Message
	Err      error
}

func (f *FakeSender) Send(ctx context.Context, msg mailer.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Messages = append(f.Messages, msg)
	return "fake-message-id", nil
}

// Sent returns a copy of the recorded messages
func (f *FakeSender) Sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.Messages...)
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if s, ok := body.(string); ok {
			jsonBody = []byte(s)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns an Authorization header map for token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
