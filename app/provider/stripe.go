package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSignature = errors.New("invalid stripe signature")

type StripeConfig struct {
	SecretKey                 string
	WebhookSecret             string
	APIBaseURL                string
	SignatureToleranceSeconds int64
	HTTPTimeout               time.Duration
}

type StripeClient struct {
	cfg    StripeConfig
	client *http.Client
}

func NewStripeClient(cfg StripeConfig) *StripeClient {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tolerance := cfg.SignatureToleranceSeconds
	if tolerance <= 0 {
		tolerance = 300
	}
	cfg.SignatureToleranceSeconds = tolerance
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		cfg.APIBaseURL = "https://api.stripe.com"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return &StripeClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Address is the billing address block inside customer_details.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CustomerDetails struct {
	Email   string   `json:"email"`
	Address *Address `json:"address"`
}

type CustomField struct {
	Key  string `json:"key"`
	Text struct {
		Value string `json:"value"`
	} `json:"text"`
}

// CheckoutSession carries the fields the registration flow reads from a
// completed checkout: the correlation token, the captured billing
// address, and any payer-supplied attendee name.
type CheckoutSession struct {
	ID                string           `json:"id"`
	ClientReferenceID string           `json:"client_reference_id"`
	CustomerDetails   *CustomerDetails `json:"customer_details"`
	CustomFields      []CustomField    `json:"custom_fields"`
}

// AttendeeNameField returns the payer-supplied name from the first
// custom field, or "" when the checkout page carried none.
func (s *CheckoutSession) AttendeeNameField() string {
	if len(s.CustomFields) == 0 {
		return ""
	}
	return strings.TrimSpace(s.CustomFields[0].Text.Value)
}

type Event struct {
	ID      string
	Type    string
	Session *CheckoutSession
	Raw     []byte
}

type LineItem struct {
	Description string `json:"description"`
	AmountTotal int64  `json:"amount_total"`
	Quantity    int64  `json:"quantity"`
}

// VerifyAndParseEvent authenticates the raw webhook body against the
// Stripe-Signature header and decodes the event envelope. Verification
// failure returns ErrInvalidSignature and nothing else happens.
func (c *StripeClient) VerifyAndParseEvent(payload []byte, signature string) (*Event, error) {
	if strings.TrimSpace(c.cfg.WebhookSecret) == "" {
		return nil, errors.New("stripe webhook secret is not configured")
	}
	if !verifyStripeSignature(payload, signature, c.cfg.WebhookSecret, c.cfg.SignatureToleranceSeconds) {
		return nil, ErrInvalidSignature
	}

	var envelope struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, err
	}

	event := &Event{
		ID:   strings.TrimSpace(envelope.ID),
		Type: envelope.Type,
		Raw:  payload,
	}

	if envelope.Type == "checkout.session.completed" && len(envelope.Data.Object) > 0 {
		session := &CheckoutSession{}
		if err := json.Unmarshal(envelope.Data.Object, session); err != nil {
			return nil, err
		}
		event.Session = session
	}

	return event, nil
}

// ListLineItems fetches the priced components of a checkout session.
// The raw response body is returned alongside the decoded items so the
// caller can audit-log it verbatim.
func (c *StripeClient) ListLineItems(ctx context.Context, sessionID string) ([]LineItem, []byte, error) {
	if strings.TrimSpace(c.cfg.SecretKey) == "" {
		return nil, nil, errors.New("stripe secret key is not configured")
	}

	endpoint := c.cfg.APIBaseURL + "/v1/checkout/sessions/" + url.PathEscape(sessionID) + "/line_items"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, nil, fmt.Errorf("stripe list line items failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data []LineItem `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, err
	}

	return payload.Data, body, nil
}

func verifyStripeSignature(payload []byte, signatureHeader string, webhookSecret string, toleranceSeconds int64) bool {
	signatureHeader = strings.TrimSpace(signatureHeader)
	if signatureHeader == "" || strings.TrimSpace(webhookSecret) == "" {
		return false
	}

	parts := strings.Split(signatureHeader, ",")
	var ts string
	v1 := make([]string, 0, 1)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "t=") {
			ts = strings.TrimSpace(strings.TrimPrefix(part, "t="))
		}
		if strings.HasPrefix(part, "v1=") {
			v1 = append(v1, strings.TrimSpace(strings.TrimPrefix(part, "v1=")))
		}
	}
	if ts == "" || len(v1) == 0 {
		return false
	}

	tsUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	now := time.Now().Unix()
	if now-tsUnix > toleranceSeconds || tsUnix-now > toleranceSeconds {
		return false
	}

	signedPayload := []byte(ts + "." + string(payload))
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	_, _ = mac.Write(signedPayload)
	expected := mac.Sum(nil)

	for _, sig := range v1 {
		candidate, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(candidate, expected) {
			return true
		}
	}

	return false
}
