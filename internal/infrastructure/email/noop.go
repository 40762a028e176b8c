package email

import (
	"ta7wila/internal/shared/logger"
)

// NoopEmailService logs instead of sending. Used when email is disabled in
// configuration, so callers never need a nil check.
type NoopEmailService struct {
	logger logger.Interface
}

func NewNoopEmailService(log logger.Interface) *NoopEmailService {
	return &NoopEmailService{logger: log}
}

func (s *NoopEmailService) SendVerificationDecisionEmail(to, storeName, verificationRef, decision, amount string) error {
	s.logger.Debugw("email disabled, skipping verification decision email",
		"to", to, "verification_ref", verificationRef, "decision", decision)
	return nil
}

func (s *NoopEmailService) SendInvoiceIssuedEmail(to, storeName, invoiceRef, periodLabel, netAmount string) error {
	s.logger.Debugw("email disabled, skipping invoice email",
		"to", to, "invoice_ref", invoiceRef)
	return nil
}

func (s *NoopEmailService) SendTestEmail(to string) error {
	s.logger.Debugw("email disabled, skipping test email", "to", to)
	return nil
}
