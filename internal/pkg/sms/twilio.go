package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrTwilioConfigRequired is returned when account SID, auth token, or sender are missing.
var ErrTwilioConfigRequired = errors.New("pkgsms: twilio account sid, auth token, and from number are required")

// TwilioConfig configures the Twilio gateway.
type TwilioConfig struct {
	// AccountSID is the Twilio account identifier.
	AccountSID string
	// AuthToken is the Twilio API secret.
	AuthToken string
	// From is the sender number in E.164 form.
	From string
}

// Twilio is an SMS implementation backed by the Twilio REST API.
type Twilio struct {
	client *twilio.RestClient
	from   string
}

// NewTwilio constructs a Twilio SMS sender.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, ErrTwilioConfigRequired
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Twilio{
		client: client,
		from:   cfg.From,
	}, nil
}

// Send delivers a message through Twilio.
func (t *Twilio) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to, err := NormalizeE164(msg.To)
	if err != nil {
		return err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(msg.Body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("pkgsms: twilio send: %w", err)
	}
	return nil
}

// Close implements io.Closer for interface compatibility.
func (t *Twilio) Close() error {
	return nil
}
