package sms

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

const defaultMSG91URL = "https://control.msg91.com/api/sendhttp.php"

// ErrMSG91ConfigRequired is returned when the auth key or sender ID is missing.
var ErrMSG91ConfigRequired = errors.New("pkgsms: msg91 auth key and sender id are required")

// MSG91Config configures the MSG91 gateway.
type MSG91Config struct {
	// AuthKey is the MSG91 API key.
	AuthKey string
	// SenderID is the registered 6-character sender ID.
	SenderID string
	// URL overrides the default API endpoint, mainly for tests.
	URL string
}

// MSG91 is an SMS implementation backed by the MSG91 HTTP API.
type MSG91 struct {
	cfg    MSG91Config
	client *http.Client
}

// NewMSG91 constructs an MSG91 SMS sender.
func NewMSG91(cfg MSG91Config, client *http.Client) (*MSG91, error) {
	if cfg.AuthKey == "" || cfg.SenderID == "" {
		return nil, ErrMSG91ConfigRequired
	}
	if cfg.URL == "" {
		cfg.URL = defaultMSG91URL
	}

	return &MSG91{cfg: cfg, client: client}, nil
}

// Send delivers a message through MSG91.
func (m *MSG91) Send(ctx context.Context, msg Message) error {
	if _, err := NormalizeE164(msg.To); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("authkey", m.cfg.AuthKey)
	form.Set("sender", m.cfg.SenderID)
	form.Set("mobiles", LocalDigits(msg.To))
	form.Set("message", msg.Body)
	form.Set("route", "4")
	form.Set("country", "91")

	return doGateway(ctx, m.client, "msg91", gatewayRequest{
		method: http.MethodPost,
		url:    m.cfg.URL,
		form:   form,
	})
}

// Close implements io.Closer for interface compatibility.
func (m *MSG91) Close() error {
	return nil
}
