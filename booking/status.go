// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package booking

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/braiding-studio/models"
)

var (
	ErrUnknownStatus     = errors.New("unknown appointment status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions lists the statuses reachable from each status.
// Completed and cancelled are terminal.
var transitions = map[string][]string{
	models.StatusPending:   {models.StatusQuoted, models.StatusConfirmed, models.StatusCancelled},
	models.StatusQuoted:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: nil,
	models.StatusCancelled: nil,
}

// IsValidStatus reports whether status is one of the known appointment statuses
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// Transition checks that an appointment may move from one status to another.
// Setting the current status again is allowed and changes nothing.
func Transition(from, to string) error {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return ErrUnknownStatus
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// NextAction returns the single forward step the dashboard offers for a status
// (send quote, confirm, complete), or "" when there is none
func NextAction(status string) string {
	switch status {
	case models.StatusPending:
		return models.StatusQuoted
	case models.StatusQuoted:
		return models.StatusConfirmed
	case models.StatusConfirmed:
		return models.StatusCompleted
	}
	return ""
}

// ApplyQuote returns the status an appointment has after a price quote is set.
// Quoting a pending appointment marks it quoted; other statuses are kept.
func ApplyQuote(status string) string {
	if status == models.StatusPending {
		return models.StatusQuoted
	}
	return status
}
