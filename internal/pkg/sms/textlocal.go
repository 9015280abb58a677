package sms

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

const defaultTextlocalURL = "https://api.textlocal.in/send/"

// ErrTextlocalConfigRequired is returned when the API key or sender name is missing.
var ErrTextlocalConfigRequired = errors.New("pkgsms: textlocal api key and sender are required")

// TextlocalConfig configures the Textlocal gateway.
type TextlocalConfig struct {
	// APIKey is the Textlocal API key.
	APIKey string
	// Sender is the registered sender name.
	Sender string
	// URL overrides the default API endpoint, mainly for tests.
	URL string
}

// Textlocal is an SMS implementation backed by the Textlocal HTTP API.
type Textlocal struct {
	cfg    TextlocalConfig
	client *http.Client
}

// NewTextlocal constructs a Textlocal SMS sender.
func NewTextlocal(cfg TextlocalConfig, client *http.Client) (*Textlocal, error) {
	if cfg.APIKey == "" || cfg.Sender == "" {
		return nil, ErrTextlocalConfigRequired
	}
	if cfg.URL == "" {
		cfg.URL = defaultTextlocalURL
	}

	return &Textlocal{cfg: cfg, client: client}, nil
}

// Send delivers a message through Textlocal.
func (t *Textlocal) Send(ctx context.Context, msg Message) error {
	to, err := NormalizeE164(msg.To)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("apikey", t.cfg.APIKey)
	form.Set("sender", t.cfg.Sender)
	form.Set("numbers", to)
	form.Set("message", msg.Body)

	return doGateway(ctx, t.client, "textlocal", gatewayRequest{
		method: http.MethodPost,
		url:    t.cfg.URL,
		form:   form,
	})
}

// Close implements io.Closer for interface compatibility.
func (t *Textlocal) Close() error {
	return nil
}
