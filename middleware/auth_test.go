// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/braiding-studio/auth"
	"github.com/danielhkuo/braiding-studio/models"
	"github.com/danielhkuo/braiding-studio/testutil"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"Bearer  abc.def ", "abc.def"},
		{"bearer abc.def", ""},
		{"Basic dXNlcjpwdw==", ""},
		{"", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, BearerToken(req), tt.header)
	}
}

func TestRequireUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	authn := NewAuthenticator(db, cfg.SessionSecret)

	client, token := testutil.CreateTestUser(t, db, cfg, "client@example.com", models.RoleClient)

	var seen models.User
	handler := authn.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
	}{
		{"valid token", testutil.Bearer(token), http.StatusNoContent},
		{"missing header", nil, http.StatusUnauthorized},
		{"tampered token", testutil.Bearer(token + "x"), http.StatusUnauthorized},
		{"wrong secret", testutil.Bearer(auth.IssueToken(client.ID, "other", time.Hour)), http.StatusUnauthorized},
		{"expired token", testutil.Bearer(auth.IssueToken(client.ID, cfg.SessionSecret, -time.Hour)), http.StatusUnauthorized},
		{"unknown user", testutil.Bearer(auth.IssueToken("ghost", cfg.SessionSecret, time.Hour)), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler(w, testutil.MakeRequest("GET", "/me/appointments", nil, tt.headers))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	assert.Equal(t, client.ID, seen.ID)
	assert.False(t, seen.IsAdmin)
}

func TestRequireAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	authn := NewAuthenticator(db, cfg.SessionSecret)

	_, clientToken := testutil.CreateTestUser(t, db, cfg, "client@example.com", models.RoleClient)
	_, adminToken := testutil.CreateTestUser(t, db, cfg, "admin@example.com", models.RoleAdmin)

	handler := authn.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/admin/appointments", nil, testutil.Bearer(adminToken)))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/admin/appointments", nil, testutil.Bearer(clientToken)))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/admin/appointments", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
