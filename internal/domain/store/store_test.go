package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "ta7wila/internal/domain/payment/valueobjects"
)

func TestNewStore(t *testing.T) {
	s, err := NewStore(1, " Corner Shop ", "Corner-Shop", []vo.ChannelKey{vo.ChannelVCash, vo.ChannelInstapay}, "# Pay here")
	require.NoError(t, err)

	assert.Equal(t, "Corner Shop", s.Name())
	assert.Equal(t, "corner-shop", s.Slug())
	assert.Equal(t, StatusActive, s.Status())
	assert.Equal(t, "app_", s.SID()[:4])
	assert.True(t, s.OffersChannel(vo.ChannelInstapay))
	assert.False(t, s.OffersChannel(vo.ChannelECash))
}

func TestNewStore_Validation(t *testing.T) {
	opts := []vo.ChannelKey{vo.ChannelVCash}

	tests := []struct {
		name    string
		ownerID uint
		sname   string
		slug    string
		options []vo.ChannelKey
		wantErr string
	}{
		{"missing owner", 0, "Shop", "shop-1", opts, "owner ID is required"},
		{"empty name", 1, "  ", "shop-1", opts, "store name is required"},
		{"empty slug", 1, "Shop", "", opts, "store slug is required"},
		{"short slug", 1, "Shop", "ab", opts, "between 3 and 64"},
		{"bad slug chars", 1, "Shop", "my shop!", opts, "lowercase letters, digits and hyphens"},
		{"leading hyphen", 1, "Shop", "-shop", opts, "lowercase letters, digits and hyphens"},
		{"no options", 1, "Shop", "shop-1", nil, "at least one payment option"},
		{"unknown channel", 1, "Shop", "shop-1", []vo.ChannelKey{"paypal"}, "unknown payment channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.ownerID, tt.sname, tt.slug, tt.options, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewStore_DeduplicatesOptions(t *testing.T) {
	s, err := NewStore(1, "Shop", "shop-1", []vo.ChannelKey{vo.ChannelVCash, vo.ChannelVCash, vo.ChannelECash}, "")
	require.NoError(t, err)
	assert.Equal(t, []vo.ChannelKey{vo.ChannelVCash, vo.ChannelECash}, s.PaymentOptions())
}

func TestStore_UpdatePaymentOptions(t *testing.T) {
	s, err := NewStore(1, "Shop", "shop-1", []vo.ChannelKey{vo.ChannelVCash}, "")
	require.NoError(t, err)

	require.NoError(t, s.UpdatePaymentOptions([]vo.ChannelKey{vo.ChannelInstapay}))
	assert.True(t, s.OffersChannel(vo.ChannelInstapay))
	assert.False(t, s.OffersChannel(vo.ChannelVCash))

	err = s.UpdatePaymentOptions(nil)
	require.Error(t, err)
}

func TestStore_ActivateDeactivate(t *testing.T) {
	s, err := NewStore(1, "Shop", "shop-1", []vo.ChannelKey{vo.ChannelVCash}, "")
	require.NoError(t, err)

	s.Deactivate()
	assert.False(t, s.IsActive())
	s.Activate()
	assert.True(t, s.IsActive())
}
