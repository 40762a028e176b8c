package valueobjects

import "testing"

func TestNewSenderIdentifierMobile(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		want    string
	}{
		{name: "valid 010 number", raw: "01012345678", want: "01012345678"},
		{name: "valid 011 number", raw: "01187654321", want: "01187654321"},
		{name: "valid 012 number", raw: "01200000000", want: "01200000000"},
		{name: "valid 015 number", raw: "01599999999", want: "01599999999"},
		{name: "country code plus prefix stripped", raw: "+201012345678", want: "01012345678"},
		{name: "country code 002 prefix stripped", raw: "00201012345678", want: "01012345678"},
		{name: "spaces removed", raw: "010 1234 5678", want: "01012345678"},
		{name: "unknown operator prefix", raw: "01312345678", wantErr: true},
		{name: "too short", raw: "0101234567", wantErr: true},
		{name: "too long", raw: "010123456789", wantErr: true},
		{name: "letters rejected", raw: "0101234567a", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSenderIdentifier(tt.raw, ChannelVCash, TrustDashboard)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewSenderIdentifier(%q) expected error, got %q", tt.raw, got.Value())
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSenderIdentifier(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Value() != tt.want {
				t.Errorf("NewSenderIdentifier(%q) = %q, want %q", tt.raw, got.Value(), tt.want)
			}
		})
	}
}

func TestNewSenderIdentifierInstapay(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		trust   TrustLevel
		wantErr bool
	}{
		{name: "dashboard accepts short handle", raw: "a@b", trust: TrustDashboard},
		{name: "public rejects short handle", raw: "a@b", trust: TrustPublic, wantErr: true},
		{name: "public accepts six chars", raw: "ab@cde", trust: TrustPublic},
		{name: "full bank handle", raw: "user@bank", trust: TrustPublic},
		{name: "ipa alias with dots", raw: "first.last.ipa", trust: TrustPublic},
		{name: "spaces rejected", raw: "user name@bank", trust: TrustDashboard, wantErr: true},
		{name: "arabic letters rejected", raw: "مستخدم@bank", trust: TrustDashboard, wantErr: true},
		{name: "dashboard rejects two chars", raw: "ab", trust: TrustDashboard, wantErr: true},
		{name: "empty rejected", raw: "", trust: TrustDashboard, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSenderIdentifier(tt.raw, ChannelInstapay, tt.trust)
			if tt.wantErr && err == nil {
				t.Errorf("NewSenderIdentifier(%q, instapay, trust=%d) expected error", tt.raw, tt.trust)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewSenderIdentifier(%q, instapay, trust=%d) unexpected error: %v", tt.raw, tt.trust, err)
			}
		})
	}
}

func TestNewSenderIdentifierInvalidChannel(t *testing.T) {
	if _, err := NewSenderIdentifier("01012345678", ChannelKey("paypal"), TrustDashboard); err == nil {
		t.Error("expected error for unknown channel")
	}
}
