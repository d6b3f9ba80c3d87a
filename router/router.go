// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/braiding-studio/cliparse"
	"github.com/danielhkuo/braiding-studio/handlers"
	"github.com/danielhkuo/braiding-studio/mailer"
	"github.com/danielhkuo/braiding-studio/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sender mailer.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, sender)
	serviceHandler := handlers.NewServiceHandler(db, cfg)
	portfolioHandler := handlers.NewPortfolioHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db, cfg)

	authn := middleware.NewAuthenticator(db, cfg.SessionSecret)
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(authn.RequireUser(h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(authn.RequireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Marketing site (public)
	mux.HandleFunc("GET /services", middleware.WithLogging(serviceHandler.List))
	mux.HandleFunc("GET /portfolio", middleware.WithLogging(portfolioHandler.List))

	// Accounts
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(accountHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /auth/me", user(accountHandler.Me))
	mux.HandleFunc("POST /admin/setup", middleware.WithLogging(accountHandler.SetupAdmin))

	// Client booking
	mux.HandleFunc("POST /appointments", user(appointmentHandler.Book))
	mux.HandleFunc("GET /appointments/{id}", user(appointmentHandler.GetAppointment))
	mux.HandleFunc("GET /me/appointments", user(appointmentHandler.MyAppointments))

	// Admin dashboard
	mux.HandleFunc("GET /admin/appointments", admin(appointmentHandler.ListAll))
	mux.HandleFunc("PATCH /admin/appointments/{id}", admin(appointmentHandler.Update))

	mux.HandleFunc("GET /admin/services", admin(serviceHandler.List))
	mux.HandleFunc("POST /admin/services", admin(serviceHandler.Create))
	mux.HandleFunc("PUT /admin/services/{id}", admin(serviceHandler.Update))
	mux.HandleFunc("DELETE /admin/services/{id}", admin(serviceHandler.Delete))

	mux.HandleFunc("GET /admin/portfolio", admin(portfolioHandler.AdminList))
	mux.HandleFunc("POST /admin/portfolio", admin(portfolioHandler.Create))
	mux.HandleFunc("POST /admin/portfolio/fix-urls", admin(portfolioHandler.FixImageURLs))
	mux.HandleFunc("PUT /admin/portfolio/{id}", admin(portfolioHandler.Update))
	mux.HandleFunc("DELETE /admin/portfolio/{id}", admin(portfolioHandler.Delete))

	mux.HandleFunc("GET /admin/clients", admin(clientHandler.ListClients))
	mux.HandleFunc("GET /admin/summary", admin(clientHandler.Summary))

	mux.HandleFunc("GET /admin/accounts", admin(accountHandler.ListAdmins))
	mux.HandleFunc("PUT /admin/accounts/me", admin(accountHandler.UpdateOwnAccount))
	mux.HandleFunc("PUT /admin/accounts/{id}", admin(accountHandler.UpdateAdmin))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("braiding-studio API v1"))
	})

	return mux
}
