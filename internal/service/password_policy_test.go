package service

import (
	"errors"
	"testing"

	"github.com/pharmanext/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	cases := []struct {
		name     string
		password string
		wantWeak bool
	}{
		{name: "valid", password: "Abcdef12", wantWeak: false},
		{name: "too short", password: "Ab1", wantWeak: true},
		{name: "missing upper", password: "abcdef12", wantWeak: true},
		{name: "missing lower", password: "ABCDEF12", wantWeak: true},
		{name: "missing number", password: "Abcdefgh", wantWeak: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(policy, tc.password)
			if tc.wantWeak && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if !tc.wantWeak && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePasswordEmptyPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
