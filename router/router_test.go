// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/braiding-studio/models"
	"github.com/danielhkuo/braiding-studio/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "braiding-studio API v1", w.Body.String())

	// Only the exact root matches
	req = httptest.NewRequest("GET", "/nope", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	for _, path := range []string{"/services", "/portfolio", "/portfolio?year=2024"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestRouteProtection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	_, clientToken := testutil.CreateTestUser(t, db, cfg, "client@example.com", models.RoleClient)
	_, adminToken := testutil.CreateTestUser(t, db, cfg, "admin@example.com", models.RoleAdmin)

	testCases := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"me without token", "GET", "/auth/me", "", http.StatusUnauthorized},
		{"me with garbage token", "GET", "/auth/me", "garbage", http.StatusUnauthorized},
		{"me as client", "GET", "/auth/me", clientToken, http.StatusOK},
		{"own appointments as client", "GET", "/me/appointments", clientToken, http.StatusOK},
		{"admin list without token", "GET", "/admin/appointments", "", http.StatusUnauthorized},
		{"admin list as client", "GET", "/admin/appointments", clientToken, http.StatusForbidden},
		{"admin list as admin", "GET", "/admin/appointments", adminToken, http.StatusOK},
		{"summary as admin", "GET", "/admin/summary", adminToken, http.StatusOK},
		{"clients as client", "GET", "/admin/clients", clientToken, http.StatusForbidden},
		{"admins as admin", "GET", "/admin/accounts", adminToken, http.StatusOK},
		{"admin services as admin", "GET", "/admin/services", adminToken, http.StatusOK},
		{"admin portfolio as admin", "GET", "/admin/portfolio", adminToken, http.StatusOK},
		{"delete service as client", "DELETE", "/admin/services/x", clientToken, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.token != "" {
				headers = testutil.Bearer(tc.token)
			}
			req := testutil.MakeRequest(tc.method, tc.path, nil, headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},               // Only GET is defined
		{"DELETE", "/services"},           // Only GET is defined
		{"POST", "/admin/appointments/x"}, // Only PATCH is defined
		{"PUT", "/auth/login"},            // Only POST is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	client, token := testutil.CreateTestUser(t, db, cfg, "client@example.com", models.RoleClient)
	aptID := testutil.CreateTestAppointment(t, db, client.ID, nil, "2025-06-01", models.StatusPending)

	req := testutil.MakeRequest("GET", "/appointments/"+aptID, nil, testutil.Bearer(token))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var apt models.Appointment
	testutil.AssertJSON(t, w, &apt)
	assert.Equal(t, aptID, apt.ID)
}

func TestAdminAccountsMeRoute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, &testutil.FakeSender{})

	// A helper admin is not the super admin, so only /me is allowed
	_, token := testutil.CreateTestUser(t, db, cfg, "helper@example.com", models.RoleAdmin)

	body := models.UpdateOwnAccountRequest{FullName: "Helper", Email: "helper@example.com"}
	req := testutil.MakeRequest("PUT", "/admin/accounts/me", body, testutil.Bearer(token))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = testutil.MakeRequest("PUT", "/admin/accounts/someone-else", body, testutil.Bearer(token))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}
