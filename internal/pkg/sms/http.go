package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// gatewayRequest is one HTTP call to an SMS gateway, retried on transient failure.
type gatewayRequest struct {
	method  string
	url     string
	headers map[string]string
	form    url.Values
}

// doGateway executes the request with capped fibonacci backoff.
//
// Network errors and 5xx responses are retried; 4xx responses fail immediately
// since resending the same payload will not help.
func doGateway(ctx context.Context, client *http.Client, name string, greq gatewayRequest) error {
	backoff := retry.WithMaxRetries(3, retry.WithCappedDuration(2*time.Second, retry.NewFibonacci(200*time.Millisecond)))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var body io.Reader
		if greq.form != nil {
			body = strings.NewReader(greq.form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, greq.method, greq.url, body)
		if err != nil {
			return fmt.Errorf("pkgsms: %s build request: %w", name, err)
		}
		if greq.form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		for k, v := range greq.headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("pkgsms: %s request: %w", name, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("pkgsms: %s responded %d", name, resp.StatusCode))
		}
		if resp.StatusCode >= http.StatusBadRequest {
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("pkgsms: %s responded %d: %s", name, resp.StatusCode, strings.TrimSpace(string(payload)))
		}

		return nil
	})
}
