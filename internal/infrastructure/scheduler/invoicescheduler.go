// Package scheduler runs the periodic background tasks of the platform.
package scheduler

import (
	"context"
	"sync"
	"time"

	invoiceUsecases "ta7wila/internal/application/invoice/usecases"
	"ta7wila/internal/shared/logger"
)

// InvoiceScheduler rolls verified claims into monthly invoices. Generation is
// idempotent per store and month, so the daily cadence only matters for how
// quickly a new month's invoices appear.
type InvoiceScheduler struct {
	generateUC *invoiceUsecases.GenerateMonthlyInvoicesUseCase
	logger     logger.Interface
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	interval   time.Duration
}

func NewInvoiceScheduler(
	generateUC *invoiceUsecases.GenerateMonthlyInvoicesUseCase,
	logger logger.Interface,
) *InvoiceScheduler {
	return &InvoiceScheduler{
		generateUC: generateUC,
		logger:     logger,
		stopChan:   make(chan struct{}),
		interval:   24 * time.Hour,
	}
}

// Start starts the scheduler.
func (s *InvoiceScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting invoice scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully.
func (s *InvoiceScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping invoice scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("invoice scheduler stopped")
	})
}

func (s *InvoiceScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to catch up after downtime
	s.generateInvoices(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("invoice scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.generateInvoices(ctx)
		}
	}
}

func (s *InvoiceScheduler) generateInvoices(ctx context.Context) {
	startTime := time.Now()

	result, err := s.generateUC.Execute(ctx, invoiceUsecases.GenerateMonthlyInvoicesCommand{})
	if err != nil {
		s.logger.Errorw("failed to generate monthly invoices",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if len(result.Generated) > 0 {
		s.logger.Infow("monthly invoices generated",
			"generated", len(result.Generated),
			"skipped", result.Skipped,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("no new invoices to generate",
			"skipped", result.Skipped,
			"duration", time.Since(startTime),
		)
	}
}
