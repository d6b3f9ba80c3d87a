// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package booking

import (
	"time"

	"github.com/danielhkuo/braiding-studio/models"
)

// DateLayout is the format appointment and completion dates are stored in
const DateLayout = "2006-01-02"

// TimeLayout is the format appointment times are stored in
const TimeLayout = "15:04"

// ClientStats counts a client's appointments. Upcoming means confirmed with a
// date of today or later in loc.
func ClientStats(appointments []models.Appointment, now time.Time, loc *time.Location) models.ClientStats {
	today := now.In(loc).Format(DateLayout)

	stats := models.ClientStats{Total: len(appointments)}
	for _, apt := range appointments {
		switch apt.Status {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusConfirmed:
			// YYYY-MM-DD compares correctly as a string
			if apt.AppointmentDate >= today {
				stats.Upcoming++
			}
		}
	}
	return stats
}

// ValidDate reports whether s is a YYYY-MM-DD date
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// BeforeToday reports whether the YYYY-MM-DD date falls before now's date in loc
func BeforeToday(date string, now time.Time, loc *time.Location) bool {
	return date < now.In(loc).Format(DateLayout)
}

// ValidTime reports whether s is an HH:MM 24-hour time
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
