package whatsapp

import (
	"context"
	"sync"
	"time"

	"ta7wila/internal/shared/biztime"
	"ta7wila/internal/shared/logger"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultQRExpiry     = 45 * time.Second
)

// Poller keeps a cached view of the bridge session so status requests from
// the dashboard do not each hit the bridge. It also expires stale QR codes;
// the bridge keeps serving an old code, but a code older than the expiry
// window will no longer scan.
type Poller struct {
	client       *Client
	logger       logger.Interface
	pollInterval time.Duration
	qrExpiry     time.Duration

	mu         sync.RWMutex
	lastStatus *Status
	lastErr    error

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPoller(client *Client, log logger.Interface, pollInterval, qrExpiry time.Duration) *Poller {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if qrExpiry <= 0 {
		qrExpiry = defaultQRExpiry
	}
	return &Poller{
		client:       client,
		logger:       log,
		pollInterval: pollInterval,
		qrExpiry:     qrExpiry,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the poll loop.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Infow("starting whatsapp bridge poller",
		"poll_interval", p.pollInterval,
		"qr_expiry", p.qrExpiry,
	)

	p.wg.Add(1)
	go p.run(ctx)
}

// Stop terminates the poll loop and waits for it to exit.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})
	p.wg.Wait()
	p.logger.Infow("whatsapp bridge poller stopped")
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	p.poll(ctx)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	status, err := p.client.GetStatus(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.lastErr = err
		p.logger.Warnw("whatsapp bridge poll failed", "error", err)
		return
	}

	prev := p.lastStatus
	p.lastStatus = status
	p.lastErr = nil

	if prev == nil || prev.State != status.State {
		p.logger.Infow("whatsapp session state changed",
			"state", status.State,
			"has_qr", status.QRCode != "",
		)
	}
}

// CurrentStatus returns the latest bridge snapshot. A QR code past its
// expiry window is cleared so the dashboard prompts for a fresh one.
func (p *Poller) CurrentStatus() (*Status, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.lastErr != nil {
		return nil, p.lastErr
	}
	if p.lastStatus == nil {
		return &Status{State: StateDisconnected}, nil
	}

	status := *p.lastStatus
	if status.QRCode != "" && status.QRIssuedAt != nil {
		if biztime.NowUTC().Sub(status.QRIssuedAt.UTC()) > p.qrExpiry {
			status.QRCode = ""
			status.QRIssuedAt = nil
		}
	}

	return &status, nil
}
