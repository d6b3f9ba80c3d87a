// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package booking holds the appointment status rules and per-client statistics.
//
// An appointment starts pending. The studio quotes a price (quoted), confirms
// a time (confirmed) and finally marks it completed. Pending, quoted and
// confirmed appointments can be cancelled; completed and cancelled are final.
// A pending appointment may also be confirmed directly.
package booking
