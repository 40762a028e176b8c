package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ta7wila/internal/shared/logger"
)

func newBridgeServer(t *testing.T, status *Status, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/status" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPoller_PollsAndCaches(t *testing.T) {
	var hits atomic.Int64
	srv := newBridgeServer(t, &Status{State: StateConnected, PhoneNumber: "+201012345678"}, &hits)

	poller := NewPoller(NewClient(srv.URL), logger.NewLogger(), 10*time.Millisecond, time.Minute)
	poller.Start(context.Background())
	defer poller.Stop()

	require.Eventually(t, func() bool {
		return hits.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	status, err := poller.CurrentStatus()
	require.NoError(t, err)
	assert.Equal(t, StateConnected, status.State)
	assert.Equal(t, "+201012345678", status.PhoneNumber)
}

func TestPoller_ExpiresStaleQR(t *testing.T) {
	stale := time.Now().UTC().Add(-2 * time.Minute)
	srv := newBridgeServer(t, &Status{
		State:      StateWaitingScan,
		QRCode:     "qr-data",
		QRIssuedAt: &stale,
	}, nil)

	poller := NewPoller(NewClient(srv.URL), logger.NewLogger(), 10*time.Millisecond, 45*time.Second)
	poller.Start(context.Background())
	defer poller.Stop()

	require.Eventually(t, func() bool {
		status, err := poller.CurrentStatus()
		return err == nil && status.State == StateWaitingScan
	}, time.Second, 5*time.Millisecond)

	status, err := poller.CurrentStatus()
	require.NoError(t, err)
	assert.Empty(t, status.QRCode, "expired QR should be cleared")
	assert.Nil(t, status.QRIssuedAt)
}

func TestPoller_FreshQRSurvives(t *testing.T) {
	fresh := time.Now().UTC()
	srv := newBridgeServer(t, &Status{
		State:      StateWaitingScan,
		QRCode:     "qr-data",
		QRIssuedAt: &fresh,
	}, nil)

	poller := NewPoller(NewClient(srv.URL), logger.NewLogger(), 10*time.Millisecond, 45*time.Second)
	poller.Start(context.Background())
	defer poller.Stop()

	require.Eventually(t, func() bool {
		status, err := poller.CurrentStatus()
		return err == nil && status.QRCode != ""
	}, time.Second, 5*time.Millisecond)
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	srv := newBridgeServer(t, &Status{State: StateDisconnected}, nil)

	poller := NewPoller(NewClient(srv.URL), logger.NewLogger(), 10*time.Millisecond, time.Minute)
	poller.Start(context.Background())

	poller.Stop()
	poller.Stop()
}
