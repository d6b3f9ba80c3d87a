// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the braiding studio API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sender)

The sender delivers booking confirmation emails (see package mailer).

# Endpoints

Health:

	GET /health

Marketing site (public):

	GET /services  - Service catalog by name
	GET /portfolio - Portfolio with ?search=, ?style=, ?year= filters

Accounts:

	POST /auth/signup  - Create a client account
	POST /auth/login   - Exchange credentials for a bearer token
	GET  /auth/me      - Current account (bearer token)
	POST /admin/setup  - Provision an admin (X-Setup-Key when configured)

Client booking (bearer token):

	POST /appointments      - Request an appointment
	GET  /appointments/{id} - Confirmation details
	GET  /me/appointments   - Own appointments

Admin dashboard (bearer token, admin role):

	GET   /admin/appointments      - All appointments (?status=)
	PATCH /admin/appointments/{id} - Move status / set price quote
	GET, POST      /admin/services
	PUT, DELETE    /admin/services/{id}
	GET, POST      /admin/portfolio
	PUT, DELETE    /admin/portfolio/{id}
	POST /admin/portfolio/fix-urls - Repoint legacy asset URLs at storage
	GET  /admin/clients            - Clients with stats
	GET  /admin/summary            - Dashboard counts
	GET  /admin/accounts           - Admin accounts
	PUT  /admin/accounts/me        - Edit own account
	PUT  /admin/accounts/{id}      - Edit another admin (super admin only)
*/
package router
