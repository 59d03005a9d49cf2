package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPInvoiceDispatcher posts paid-registration invoice payloads to the
// external email service.
type HTTPInvoiceDispatcher struct {
	url    string
	client *http.Client
}

func NewHTTPInvoiceDispatcher(url string, timeout time.Duration) *HTTPInvoiceDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPInvoiceDispatcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (d *HTTPInvoiceDispatcher) Dispatch(ctx context.Context, payload InvoicePayload) error {
	if d.url == "" {
		return errors.New("invoice email service url is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal invoice payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post invoice payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("invoice email service returned %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
