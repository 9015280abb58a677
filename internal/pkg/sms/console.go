package sms

import (
	"context"
	"log/slog"
)

// Console is an SMS implementation that logs messages instead of sending them.
//
// It is meant for local development where no gateway credentials exist. The
// full body is written to the structured log so developers can read the code.
type Console struct{}

// NewConsole constructs a console SMS sender.
func NewConsole() *Console {
	return &Console{}
}

// Send logs the message at info level.
func (c *Console) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "console sms delivery",
		"to", msg.To,
		"body", msg.Body,
	)
	return nil
}

// Close implements io.Closer for interface compatibility.
func (c *Console) Close() error {
	return nil
}
