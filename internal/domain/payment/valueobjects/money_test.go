package valueobjects

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCents int64
		wantErr   bool
	}{
		{name: "whole amount", raw: "100", wantCents: 10000},
		{name: "decimal amount", raw: "99.50", wantCents: 9950},
		{name: "single cent", raw: "0.01", wantCents: 1},
		{name: "whitespace trimmed", raw: " 25 ", wantCents: 2500},
		{name: "zero rejected", raw: "0", wantErr: true},
		{name: "negative rejected", raw: "-5", wantErr: true},
		{name: "non numeric rejected", raw: "abc", wantErr: true},
		{name: "empty rejected", raw: "", wantErr: true},
		{name: "mixed rejected", raw: "10x", wantErr: true},
		{name: "bare fraction", raw: ".5", wantCents: 50},
		{name: "trailing dot", raw: "100.", wantCents: 10000},
		{name: "single decimal digit", raw: "99.5", wantCents: 9950},
		{name: "three decimals rejected", raw: "1.234", wantErr: true},
		{name: "exponent rejected", raw: "1e300", wantErr: true},
		{name: "infinity rejected", raw: "Inf", wantErr: true},
		{name: "nan rejected", raw: "NaN", wantErr: true},
		{name: "plus sign rejected", raw: "+5", wantErr: true},
		{name: "overlong whole rejected", raw: "1234567890123456", wantErr: true},
		{name: "bare dot rejected", raw: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw, "EGP")
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAmount(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.raw, err)
			}
			if got.AmountInCents() != tt.wantCents {
				t.Errorf("ParseAmount(%q) = %d cents, want %d", tt.raw, got.AmountInCents(), tt.wantCents)
			}
		})
	}
}

func TestMoneyEquals(t *testing.T) {
	a := NewMoney(10000, "EGP")
	b := NewMoney(10000, "EGP")
	c := NewMoney(10000, "USD")

	if !a.Equals(b) {
		t.Error("expected equal amounts in same currency to be equal")
	}
	if a.Equals(c) {
		t.Error("expected different currencies to not be equal")
	}
}

func TestMoneyDefaultCurrency(t *testing.T) {
	m := NewMoney(500, "")
	if m.Currency() != "EGP" {
		t.Errorf("default currency = %q, want EGP", m.Currency())
	}
}
