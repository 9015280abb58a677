package sms

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

const defaultFast2SMSURL = "https://www.fast2sms.com/dev/bulkV2"

// ErrFast2SMSConfigRequired is returned when the API key is missing.
var ErrFast2SMSConfigRequired = errors.New("pkgsms: fast2sms api key is required")

// Fast2SMSConfig configures the Fast2SMS gateway.
type Fast2SMSConfig struct {
	// APIKey is the Fast2SMS authorization key.
	APIKey string
	// URL overrides the default API endpoint, mainly for tests.
	URL string
}

// Fast2SMS is an SMS implementation backed by the Fast2SMS bulk API.
type Fast2SMS struct {
	cfg    Fast2SMSConfig
	client *http.Client
}

// NewFast2SMS constructs a Fast2SMS sender.
func NewFast2SMS(cfg Fast2SMSConfig, client *http.Client) (*Fast2SMS, error) {
	if cfg.APIKey == "" {
		return nil, ErrFast2SMSConfigRequired
	}
	if cfg.URL == "" {
		cfg.URL = defaultFast2SMSURL
	}

	return &Fast2SMS{cfg: cfg, client: client}, nil
}

// Send delivers a message through Fast2SMS.
func (f *Fast2SMS) Send(ctx context.Context, msg Message) error {
	if _, err := NormalizeE164(msg.To); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("route", "q")
	form.Set("numbers", LocalDigits(msg.To))
	form.Set("message", msg.Body)

	return doGateway(ctx, f.client, "fast2sms", gatewayRequest{
		method:  http.MethodPost,
		url:     f.cfg.URL,
		headers: map[string]string{"authorization": f.cfg.APIKey},
		form:    form,
	})
}

// Close implements io.Closer for interface compatibility.
func (f *Fast2SMS) Close() error {
	return nil
}
