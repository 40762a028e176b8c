package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	when := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(1, when, 12, 500_000, 250, "EGP")
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, inv.Status())
	assert.Equal(t, "inv_", inv.Ref()[:4])
	assert.Equal(t, int64(500_000), inv.GrossAmount().AmountInCents())
	// 2.5% of 5000.00 EGP
	assert.Equal(t, int64(12_500), inv.FeeAmount().AmountInCents())
	assert.Equal(t, int64(487_500), inv.NetAmountInCents())
	assert.True(t, inv.PeriodStart().Before(inv.PeriodEnd()))
}

func TestNewInvoice_Validation(t *testing.T) {
	when := time.Now()

	tests := []struct {
		name    string
		appID   uint
		count   int
		gross   int64
		feeBps  int64
		wantErr string
	}{
		{"missing application", 0, 1, 100, 100, "application ID is required"},
		{"negative count", 1, -1, 100, 100, "claim count cannot be negative"},
		{"negative gross", 1, 1, -100, 100, "gross amount cannot be negative"},
		{"fee over 100%", 1, 1, 100, 10001, "between 0 and 10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.appID, when, tt.count, tt.gross, tt.feeBps, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInvoice_Lifecycle(t *testing.T) {
	inv, err := NewInvoice(1, time.Now(), 3, 10_000, 0, "")
	require.NoError(t, err)

	// cannot pay a draft
	require.Error(t, inv.MarkPaid())

	require.NoError(t, inv.Issue())
	assert.Equal(t, StatusIssued, inv.Status())
	assert.NotNil(t, inv.IssuedAt())

	// cannot issue twice
	require.Error(t, inv.Issue())

	require.NoError(t, inv.MarkPaid())
	assert.Equal(t, StatusPaid, inv.Status())
	assert.NotNil(t, inv.PaidAt())
}
