package ta7wila

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Response bodies below mirror the API handler serialization field for field.

func TestCheckVerification_DecodesMatchedTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/verifications/vr_abc/check", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"ref": "vr_abc",
				"channel": "vcash",
				"sender_value": "01098765432",
				"amount": "150.50",
				"status": "matched",
				"transaction": {
					"ref": "tx_123",
					"channel": "vcash",
					"sender_value": "01098765432",
					"sender_name": "Aya Mahmoud",
					"amount": "150.50",
					"status": "claimed",
					"occurred_at": "2026-08-30T10:00:00Z"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	v, err := client.CheckVerification(context.Background(), "vr_abc")
	require.NoError(t, err)

	assert.Equal(t, "vr_abc", v.Ref)
	assert.Equal(t, "matched", v.Status)
	require.NotNil(t, v.Transaction)
	assert.Equal(t, "tx_123", v.Transaction.Ref)
	assert.Equal(t, "Aya Mahmoud", v.Transaction.SenderName)
	assert.Equal(t, "claimed", v.Transaction.Status)
}

func TestGetStore_DecodesStatusAndDestinations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stores/app_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"sid": "app_1",
				"name": "Corner Shop",
				"slug": "corner-shop",
				"status": "active",
				"payment_options": ["vcash", "instapay"],
				"created_at": "2026-08-01T00:00:00Z",
				"destinations": [
					{"sid": "pd_1", "channel": "vcash", "value": "01012345678", "active": true, "created_at": "2026-08-01T00:00:00Z"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	store, err := client.GetStore(context.Background(), "app_1")
	require.NoError(t, err)

	assert.Equal(t, "active", store.Status)
	assert.Equal(t, []string{"vcash", "instapay"}, store.PaymentOptions)
	require.Len(t, store.Destinations, 1)
	assert.Equal(t, "pd_1", store.Destinations[0].SID)
	assert.True(t, store.Destinations[0].Active)
}
