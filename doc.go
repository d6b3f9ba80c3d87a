// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the braiding studio API server.

The server backs a hair-braiding studio website: public service and portfolio
listings, client booking with confirmation emails, and an admin dashboard for
appointments, services, portfolio images and accounts.

# Starting the Server

The server reads a .env file, environment variables or CLI flags:

	DATABASE_URL=studio.db SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --session-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SECRET (--session-secret): HMAC key for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SUPER_ADMIN_EMAIL (--super-admin): Admin allowed to edit other admins
  - ADMIN_SETUP_KEY (--setup-key): Required by POST /admin/setup when set
  - RESEND_API_KEY (--resend-key): Without it emails are only logged
  - MAIL_FROM (--mail-from): Sender address for confirmations
  - STORAGE_PUBLIC_URL (--storage-url): Public base URL of the image bucket
  - STUDIO_TIMEZONE (--timezone): Zone appointment times are shown in
  - SERVICES_SEED_FILE (--seed): YAML service catalog loaded at startup
  - STUDIO_PHONE, STUDIO_EMAIL: Contact details printed in emails

# Architecture

  - handlers: HTTP request handlers (accounts, appointments, services, portfolio, clients)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON helpers
  - booking: Appointment status transitions and client stats
  - portfolio: Portfolio search and filtering
  - mailer: Confirmation email rendering and delivery
  - models: Request/response types
  - auth: Password hashing and bearer tokens
  - db: Connection, schema, seeding and account lookups
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
