package mail

import (
	"context"
	"log/slog"
	"strings"
)

// Console is a Mail implementation that logs messages instead of sending them.
//
// It is meant for local development where no SMTP relay is available. The full
// body is written to the structured log so developers can read the code.
type Console struct{}

// NewConsole constructs a console mail sender.
func NewConsole() *Console {
	return &Console{}
}

// Send logs the message at info level.
func (c *Console) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := msg.TextBody
	if body == "" {
		body = msg.HTMLBody
	}

	slog.InfoContext(ctx, "console mail delivery",
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"body", body,
	)
	return nil
}

// Close implements io.Closer for interface compatibility.
func (c *Console) Close() error {
	return nil
}
