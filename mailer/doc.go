// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer renders and delivers transactional email.

# Senders

Sender is the delivery interface. New returns a Resend-backed sender when an
API key is configured and a LogSender otherwise, so local runs never need
credentials:

	sender := mailer.New(cfg.ResendAPIKey)
	id, err := sender.Send(ctx, mailer.Message{...})

# Booking Confirmation

RenderConfirmation produces the email sent after a client books:

	subject, html, err := mailer.RenderConfirmation(data, cfg.Location())

Date and time are interpreted in the studio timezone and rendered as
"Monday, March 3rd, 2025" and "2:30 PM EST". User-supplied fields are
HTML-escaped by html/template.
*/
package mailer
