package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/pharmanext/internal/config"
	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
)

func TestEmailServiceDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendVerifyCode("user@example.com", "123456", constants.VerifyPurposeRegister)
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestEmailServiceNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true})
	err := svc.SendCustomEmail("user@example.com", "subject", "body")
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestBuildOrderStatusContent(t *testing.T) {
	input := OrderStatusEmailInput{
		OrderNo:     "PH20260101123456",
		Status:      constants.OrderStatusPaid,
		Amount:      models.NewMoneyFromFloat(120.5),
		Currency:    "USD",
		PaymentType: constants.PaymentTypeCard,
	}
	subject, body := buildOrderStatusContent(input)
	if !strings.Contains(subject, "PH20260101123456") || !strings.Contains(subject, "Paid") {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "120.50") || !strings.Contains(body, "USD") {
		t.Fatalf("unexpected body: %s", body)
	}

	input.Status = constants.OrderStatusDelivered
	input.PaymentType = constants.PaymentTypeCOD
	_, body = buildOrderStatusContent(input)
	if !strings.Contains(body, "collected on delivery") {
		t.Fatalf("expected cash on delivery note, got %s", body)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	if !isEmailRecipientRejected(errors.New("550 no such recipient here")) {
		t.Fatal("expected recipient rejection to be detected")
	}
	if isEmailRecipientRejected(errors.New("connection timed out")) {
		t.Fatal("unexpected recipient rejection")
	}
}
