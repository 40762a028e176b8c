package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ta7wila/internal/domain/invoice"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
)

func TestInvoiceRenderer_Render(t *testing.T) {
	s, err := store.NewStore(1, "Corner Shop", "corner-shop", []vo.ChannelKey{vo.ChannelVCash}, "")
	require.NoError(t, err)

	inv, err := invoice.NewInvoice(1, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 12, 500_000, 250, "EGP")
	require.NoError(t, err)

	data, filename, err := NewInvoiceRenderer().Render(inv, s)
	require.NoError(t, err)

	assert.True(t, len(data) > 500, "pdf should have content")
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.Contains(t, filename, inv.Ref())
	assert.Contains(t, filename, ".pdf")
}
