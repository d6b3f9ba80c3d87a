// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/braiding-studio/models"
	"github.com/danielhkuo/braiding-studio/testutil"
)

func TestListClients(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewClientHandler(db, cfg)

	future := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	past := time.Now().AddDate(0, -1, 0).Format("2006-01-02")

	maya, _ := testutil.CreateTestUser(t, db, cfg, "maya@example.com", models.RoleClient)
	testutil.CreateTestProfile(t, db, maya.ID, "Maya", "Jones", "555-0100")
	testutil.CreateTestAppointment(t, db, maya.ID, nil, past, models.StatusCompleted)
	testutil.CreateTestAppointment(t, db, maya.ID, nil, future, models.StatusConfirmed)
	testutil.CreateTestAppointment(t, db, maya.ID, nil, past, models.StatusConfirmed)
	testutil.CreateTestAppointment(t, db, maya.ID, nil, future, models.StatusPending)

	// Accounts without bookings are not clients yet
	testutil.CreateTestUser(t, db, cfg, "browser@example.com", models.RoleClient)

	req := testutil.MakeRequest("GET", "/admin/clients", nil, nil)
	w := httptest.NewRecorder()
	handler.ListClients(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var clients []models.ClientSummary
	testutil.AssertJSON(t, w, &clients)
	require.Len(t, clients, 1)

	c := clients[0]
	assert.Equal(t, maya.ID, c.User.ID)
	assert.Equal(t, "Maya", c.Profile.FirstName)
	assert.Len(t, c.Appointments, 4)
	assert.Equal(t, models.ClientStats{Total: 4, Completed: 1, Upcoming: 1}, c.Stats)
}

func TestListClientsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewClientHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/admin/clients", nil, nil)
	w := httptest.NewRecorder()
	handler.ListClients(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAdminSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewClientHandler(db, cfg)

	a, _ := testutil.CreateTestUser(t, db, cfg, "a@example.com", models.RoleClient)
	b, _ := testutil.CreateTestUser(t, db, cfg, "b@example.com", models.RoleClient)
	testutil.CreateTestService(t, db, "Box Braids", 150, 5)
	testutil.CreateTestImage(t, db, "One", "https://cdn/1.jpg", nil, nil, false, 0)
	testutil.CreateTestImage(t, db, "Two", "https://cdn/2.jpg", nil, nil, false, 0)
	testutil.CreateTestAppointment(t, db, a.ID, nil, "2025-06-01", models.StatusPending)
	testutil.CreateTestAppointment(t, db, a.ID, nil, "2025-06-02", models.StatusPending)
	testutil.CreateTestAppointment(t, db, b.ID, nil, "2025-06-03", models.StatusCompleted)

	req := testutil.MakeRequest("GET", "/admin/summary", nil, nil)
	w := httptest.NewRecorder()
	handler.Summary(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var summary models.AdminSummary
	testutil.AssertJSON(t, w, &summary)

	assert.Equal(t, 2, summary.AppointmentsByStatus[models.StatusPending])
	assert.Equal(t, 1, summary.AppointmentsByStatus[models.StatusCompleted])
	assert.Equal(t, 0, summary.AppointmentsByStatus[models.StatusQuoted])
	assert.Len(t, summary.AppointmentsByStatus, 5)
	assert.Equal(t, 1, summary.Services)
	assert.Equal(t, 2, summary.PortfolioImages)
	assert.Equal(t, 2, summary.Clients)
}
