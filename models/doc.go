// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest, LoginRequest: email, password
  - SetupAdminRequest: email, password, full_name
  - UpdateOwnAccountRequest: full_name, email, password, confirm_password
  - UpdateAdminRequest: full_name, email, password (all optional)
  - BookAppointmentRequest: contact details, style_id, date, time
  - UpdateAppointmentRequest: status and/or price_quote
  - ServiceRequest, PortfolioImageRequest: catalog and portfolio edits

# Response Types

  - AuthResponse: token, user
  - MessageResponse: message, optional user
  - PortfolioResponse: filtered images, total, available_years, styles
  - AdminSummary: dashboard counts
  - ErrorResponse: error, message

# Domain Types

  - User: account with role (password hash never serialized)
  - Profile: client contact details
  - Service: a hair style offered by the studio
  - Appointment: booking request with status and optional quote
  - PortfolioImage: finished work, with style name resolved
  - ClientSummary: client plus appointments and ClientStats

# Status Constants

Appointment statuses:

	StatusPending   = "pending"
	StatusQuoted    = "quoted"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

Allowed moves between them live in package booking.
*/
package models
