// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags loads a .env file if present, then returns a Config struct:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Flags fall back to environment variables:

	-p               PORT                (default: 3318)
	-d               DATABASE_URL        (required)
	-t               DATABASE_TYPE       (sqlite or postgres, default: sqlite)
	--session-secret SESSION_SECRET      (required)
	--super-admin    SUPER_ADMIN_EMAIL
	--setup-key      ADMIN_SETUP_KEY
	--resend-key     RESEND_API_KEY
	--mail-from      MAIL_FROM
	--storage-url    STORAGE_PUBLIC_URL
	--timezone       STUDIO_TIMEZONE     (default: America/New_York)
	--seed           SERVICES_SEED_FILE
	--studio-phone   STUDIO_PHONE
	--studio-email   STUDIO_EMAIL

CLI flags take precedence over environment variables, and values already in
the environment take precedence over .env.

# Validation

ParseFlags returns an error if DATABASE_URL or SESSION_SECRET is missing, if
DATABASE_TYPE is unknown, or if the timezone cannot be loaded.
*/
package cliparse
