package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("19.999"))
	if m.String() != "20.00" {
		t.Fatalf("expected 20.00, got %s", m.String())
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"20.00"` {
		t.Fatalf("expected \"20.00\", got %s", data)
	}
}

func TestMoneyUnmarshalNumberAndString(t *testing.T) {
	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.5`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber.String() != "12.50" {
		t.Fatalf("expected 12.50, got %s", fromNumber.String())
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"12.50"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if !fromString.Decimal.Equal(fromNumber.Decimal) {
		t.Fatalf("expected equal amounts, got %s vs %s", fromString, fromNumber)
	}
}

func TestMoneyMapLowest(t *testing.T) {
	formulations := MoneyMap{
		"tablet":  NewMoneyFromFloat(40),
		"syrup":   NewMoneyFromFloat(25.5),
		"capsule": NewMoneyFromFloat(60),
	}
	lowest, ok := formulations.Lowest()
	if !ok {
		t.Fatal("expected a lowest price")
	}
	if lowest.String() != "25.50" {
		t.Fatalf("expected 25.50, got %s", lowest.String())
	}

	if _, ok := (MoneyMap{}).Lowest(); ok {
		t.Fatal("empty map should report no lowest price")
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"user", RoleUser, true},
		{" Seller ", RoleSeller, true},
		{"ADMIN", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRole(%q) = %q,%v want %q,%v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
