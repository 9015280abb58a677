package sms

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInvalidMobile is returned when the destination is not a usable mobile number.
var ErrInvalidMobile = errors.New("pkgsms: invalid mobile number")

// Message represents an SMS payload.
type Message struct {
	// To is the destination mobile number, local 10-digit or E.164.
	To string
	// Body is the text content.
	Body string
}

// SMS abstracts a text message provider.
type SMS interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}

// defaultCountryCode prefixes local 10-digit numbers when normalizing to E.164.
const defaultCountryCode = "+91"

// NormalizeE164 converts a local 10-digit mobile number to E.164 form.
//
// Numbers already in E.164 form pass through unchanged.
func NormalizeE164(mobile string) (string, error) {
	m := strings.TrimSpace(mobile)

	if strings.HasPrefix(m, "+") {
		if len(m) < 11 || len(m) > 16 || !allDigits(m[1:]) {
			return "", ErrInvalidMobile
		}
		return m, nil
	}

	if len(m) != 10 || !allDigits(m) {
		return "", ErrInvalidMobile
	}
	return defaultCountryCode + m, nil
}

// LocalDigits strips the default country code, returning the bare 10-digit number.
func LocalDigits(mobile string) string {
	m := strings.TrimSpace(mobile)
	m = strings.TrimPrefix(m, defaultCountryCode)
	return strings.TrimPrefix(m, "+")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
