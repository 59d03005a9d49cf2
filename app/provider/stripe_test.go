package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func signPayload(payload []byte, secret string, ts int64) string {
	signed := fmt.Sprintf("%d.%s", ts, string(payload))
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	header := signPayload(payload, secret, time.Now().Unix())

	if !verifyStripeSignature(payload, header, secret, 300) {
		t.Fatal("expected signature to validate")
	}
	if verifyStripeSignature(payload, header, "wrong-secret", 300) {
		t.Fatal("expected signature with wrong secret to fail")
	}
}

func TestVerifyStripeSignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	header := signPayload(payload, secret, time.Now().Add(-time.Hour).Unix())

	if verifyStripeSignature(payload, header, secret, 300) {
		t.Fatal("expected stale signature to fail")
	}
}

func TestVerifyAndParseCheckoutCompletedEvent(t *testing.T) {
	secret := "whsec_test"
	client := NewStripeClient(StripeConfig{WebhookSecret: secret})

	payload := []byte(`{
		"id": "evt_123",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"client_reference_id": "42",
				"customer_details": {
					"email": "alice@example.edu",
					"address": {"line1": "1 Main St", "city": "Brisbane", "state": "QLD", "postal_code": "4000", "country": "AU"}
				},
				"custom_fields": [{"key": "attendeename", "text": {"value": "Alice Liddell"}}]
			}
		}
	}`)
	header := signPayload(payload, secret, time.Now().Unix())

	event, err := client.VerifyAndParseEvent(payload, header)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.ID != "evt_123" {
		t.Fatalf("unexpected event id: %s", event.ID)
	}
	if event.Session == nil {
		t.Fatal("expected session to be decoded")
	}
	if event.Session.ClientReferenceID != "42" {
		t.Fatalf("unexpected client reference: %s", event.Session.ClientReferenceID)
	}
	if event.Session.AttendeeNameField() != "Alice Liddell" {
		t.Fatalf("unexpected attendee name: %q", event.Session.AttendeeNameField())
	}
	if event.Session.CustomerDetails.Address.City != "Brisbane" {
		t.Fatalf("unexpected address city: %q", event.Session.CustomerDetails.Address.City)
	}
}

func TestVerifyAndParseEventRejectsBadSignature(t *testing.T) {
	client := NewStripeClient(StripeConfig{WebhookSecret: "whsec_test"})

	_, err := client.VerifyAndParseEvent([]byte(`{"id":"evt_1"}`), "t=1,v1=deadbeef")
	if err == nil {
		t.Fatal("expected verification error")
	}
}

func TestVerifyAndParseIgnoresSessionForOtherEventTypes(t *testing.T) {
	secret := "whsec_test"
	client := NewStripeClient(StripeConfig{WebhookSecret: secret})

	payload := []byte(`{"id":"evt_9","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	header := signPayload(payload, secret, time.Now().Unix())

	event, err := client.VerifyAndParseEvent(payload, header)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.Session != nil {
		t.Fatal("expected no session for non-checkout event")
	}
}

func TestListLineItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_test_1/line_items" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Fatalf("unexpected authorization header: %s", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"data":[{"description":"Regular Registration","amount_total":160000,"quantity":1}]}`))
	}))
	defer server.Close()

	client := NewStripeClient(StripeConfig{SecretKey: "sk_test", APIBaseURL: server.URL})

	items, raw, err := client.ListLineItems(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one line item, got %d", len(items))
	}
	if items[0].AmountTotal != 160000 || items[0].Quantity != 1 {
		t.Fatalf("unexpected line item: %+v", items[0])
	}
	if len(raw) == 0 {
		t.Fatal("expected raw body for audit logging")
	}
}
