// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/danielhkuo/braiding-studio/auth"
)

var ErrNoRecipient = errors.New("message has no recipient")

// Message is a single outgoing HTML email
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers messages and returns the provider's message ID
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender delivers mail through the Resend API
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}

// LogSender only logs messages. Used when no API key is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipient
	}
	id, err := auth.GenerateID(8)
	if err != nil {
		return "", err
	}
	slog.Info("email not sent (no provider configured)",
		"message_id", id,
		"to", msg.To,
		"subject", msg.Subject,
	)
	return id, nil
}

// New picks the Resend sender when apiKey is set, otherwise LogSender
func New(apiKey string) Sender {
	if apiKey == "" {
		return LogSender{}
	}
	return NewResendSender(apiKey)
}
