package sms

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// ProviderTwilio selects the Twilio gateway.
	ProviderTwilio = "twilio"
	// ProviderMSG91 selects the MSG91 gateway.
	ProviderMSG91 = "msg91"
	// ProviderFast2SMS selects the Fast2SMS gateway.
	ProviderFast2SMS = "fast2sms"
	// ProviderTextlocal selects the Textlocal gateway.
	ProviderTextlocal = "textlocal"
	// ProviderConsole selects the log-only development fallback.
	ProviderConsole = "console"
)

// ErrUnknownProvider indicates an unsupported SMS provider name.
var ErrUnknownProvider = errors.New("pkgsms: unknown provider")

// FactoryOptions groups config for supported SMS gateways.
type FactoryOptions struct {
	// Twilio provides configuration for the Twilio gateway.
	Twilio TwilioConfig
	// MSG91 provides configuration for the MSG91 gateway.
	MSG91 MSG91Config
	// Fast2SMS provides configuration for the Fast2SMS gateway.
	Fast2SMS Fast2SMSConfig
	// Textlocal provides configuration for the Textlocal gateway.
	Textlocal TextlocalConfig

	// HTTPClient is shared by the HTTP-based gateways; a sane default is used when nil.
	HTTPClient *http.Client
}

// NewFromProvider constructs an SMS implementation by provider name.
func NewFromProvider(provider string, opts FactoryOptions) (SMS, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	switch strings.TrimSpace(provider) {
	case ProviderTwilio:
		return NewTwilio(opts.Twilio)
	case ProviderMSG91:
		return NewMSG91(opts.MSG91, client)
	case ProviderFast2SMS:
		return NewFast2SMS(opts.Fast2SMS, client)
	case ProviderTextlocal:
		return NewTextlocal(opts.Textlocal, client)
	case ProviderConsole:
		return NewConsole(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}
