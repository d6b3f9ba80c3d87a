// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and catalog seeding.

# Connecting

Open picks the driver from DatabaseType (lib/pq for postgres, modernc.org/sqlite
otherwise) and pings before returning:

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on SQLite and PostgreSQL, so dates the studio types in
(appointment_date, completion_date) are stored as YYYY-MM-DD text.

# Tables

  - users: Client and admin accounts (role column)
  - profiles: Client contact details, upserted on booking
  - hair_styles: Services catalog
  - appointments: Booking requests and their status
  - portfolio_images: Finished work shown on the portfolio page

# Relationships

	users 1──1 profiles
	users 1──* appointments
	hair_styles 1──* appointments     (SET NULL on delete)
	hair_styles 1──* portfolio_images (SET NULL on delete)

# Seeding

SeedServices upserts a YAML catalog by service name:

	services:
	  - name: Box Braids
	    base_price: 180
	    duration_hours: 5
*/
package db
