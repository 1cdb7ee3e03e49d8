package stripe

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestValidateConfig(t *testing.T) {
	cfg := &Config{SecretKey: "sk_test_123", APIBaseURL: "https://api.stripe.com"}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("ValidateConfig error: %v", err)
	}

	bad := &Config{APIBaseURL: "https://api.stripe.com"}
	if err := ValidateConfig(bad); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestConfigNormalizeDefaults(t *testing.T) {
	cfg := &Config{SecretKey: "  sk_test_123  ", APIBaseURL: " https://api.stripe.com/ "}
	cfg.Normalize()
	if cfg.SecretKey != "sk_test_123" {
		t.Fatalf("unexpected secret key: %q", cfg.SecretKey)
	}
	if cfg.APIBaseURL != "https://api.stripe.com" {
		t.Fatalf("unexpected api base url: %q", cfg.APIBaseURL)
	}
	if cfg.WebhookToleranceSeconds != defaultWebhookToleranceS {
		t.Fatalf("unexpected tolerance: %d", cfg.WebhookToleranceSeconds)
	}
}

func TestVerifyAndParseWebhook(t *testing.T) {
	cfg := &Config{SecretKey: "sk_test_123", WebhookSecret: "whsec_123", APIBaseURL: "https://api.stripe.com"}
	now := time.Now()
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","status":"succeeded","amount":12050,"amount_received":12050,"currency":"usd","created":` + fmt.Sprintf("%d", now.Unix()) + `,"metadata":{"order_no":"PH20260101123456"}}}}`)
	signature := computeSignature(cfg.WebhookSecret, now.Unix(), body)
	headers := map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", now.Unix(), signature),
	}

	result, err := VerifyAndParseWebhook(cfg, headers, body, now)
	if err != nil {
		t.Fatalf("VerifyAndParseWebhook error: %v", err)
	}
	if result.EventType != "payment_intent.succeeded" {
		t.Fatalf("unexpected event type: %s", result.EventType)
	}
	if result.OrderNo != "PH20260101123456" {
		t.Fatalf("unexpected order no: %s", result.OrderNo)
	}
	if result.IntentID != "pi_1" {
		t.Fatalf("unexpected intent id: %s", result.IntentID)
	}
	if result.Status != "success" {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Amount != "120.50" || result.Currency != "USD" {
		t.Fatalf("unexpected amount: %s %s", result.Amount, result.Currency)
	}
}

func TestVerifyAndParseWebhookInvalidSignature(t *testing.T) {
	cfg := &Config{SecretKey: "sk_test_123", WebhookSecret: "whsec_123", APIBaseURL: "https://api.stripe.com"}
	now := time.Now()
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	headers := map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", now.Unix(), strings.Repeat("0", 64)),
	}
	if _, err := VerifyAndParseWebhook(cfg, headers, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifyAndParseWebhookExpiredTimestamp(t *testing.T) {
	cfg := &Config{SecretKey: "sk_test_123", WebhookSecret: "whsec_123", APIBaseURL: "https://api.stripe.com"}
	now := time.Now()
	old := now.Add(-time.Hour)
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	signature := computeSignature(cfg.WebhookSecret, old.Unix(), body)
	headers := map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", old.Unix(), signature),
	}
	if _, err := VerifyAndParseWebhook(cfg, headers, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestMapPaymentIntentStatus(t *testing.T) {
	cases := map[string]string{
		"succeeded":               "success",
		"canceled":                "failed",
		"requires_payment_method": "failed",
		"processing":              "pending",
		"requires_action":         "pending",
		"unknown_status":          "pending",
	}
	for input, want := range cases {
		if got := mapPaymentIntentStatus(input); got != want {
			t.Fatalf("mapPaymentIntentStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMinorAmountConversion(t *testing.T) {
	minor, err := toMinorAmount("120.50", "USD")
	if err != nil {
		t.Fatalf("toMinorAmount error: %v", err)
	}
	if minor != 12050 {
		t.Fatalf("unexpected minor amount: %d", minor)
	}

	minor, err = toMinorAmount("1200", "JPY")
	if err != nil {
		t.Fatalf("toMinorAmount error: %v", err)
	}
	if minor != 1200 {
		t.Fatalf("unexpected minor amount: %d", minor)
	}

	if got := fromMinorAmount(12050, "USD"); got != "120.50" {
		t.Fatalf("unexpected amount: %s", got)
	}
	if got := fromMinorAmount(1200, "JPY"); got != "1200" {
		t.Fatalf("unexpected amount: %s", got)
	}

	if _, err := toMinorAmount("0", "USD"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}
