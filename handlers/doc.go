// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the braiding studio API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Signup, login, admin provisioning and admin accounts
  - AppointmentHandler: Booking, confirmation email and status updates
  - ServiceHandler: Service catalog
  - PortfolioHandler: Public gallery and portfolio management
  - ClientHandler: Client list and dashboard summary

Handlers are created via constructor functions that accept *sql.DB and Config:

	serviceHandler := handlers.NewServiceHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, sender)

Handlers behind authentication read the caller with
middleware.UserFromContext; the router wraps them with RequireUser or
RequireAdmin.

# Appointment Lifecycle

Appointments progress: pending → quoted → confirmed → completed, and may be
cancelled until completed. Transitions are checked by package booking:

	POST  /appointments             → Book (pending, emails confirmation)
	PATCH /admin/appointments/{id}  → Update (status and/or price_quote)

Setting a price quote on a pending appointment marks it quoted. Moves that
skip a step or leave a terminal status answer 409.

# Portfolio

GET /portfolio loads every image, then applies the search, style and year
filters in package portfolio. The response reports the unfiltered total and
the years and style names available for filter menus.
*/
package handlers
