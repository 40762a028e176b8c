package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

// Service sends transactional email to merchants.
type Service interface {
	SendVerificationDecisionEmail(to, storeName, verificationRef, decision, amount string) error
	SendInvoiceIssuedEmail(to, storeName, invoiceRef, periodLabel, netAmount string) error
	SendTestEmail(to string) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// SendVerificationDecisionEmail notifies a merchant that an admin decided one
// of their verification requests.
func (s *SMTPEmailService) SendVerificationDecisionEmail(to, storeName, verificationRef, decision, amount string) error {
	verificationURL := fmt.Sprintf("%s/dashboard/verifications/%s", s.config.BaseURL, verificationRef)

	subject := fmt.Sprintf("Payment claim %s for %s", decision, storeName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body dir="auto">
			<h2>Payment Claim %s</h2>
			<p>A payment claim of <strong>%s</strong> for <strong>%s</strong> was <strong>%s</strong>.</p>
			<p>Reference: %s</p>
			<p><a href="%s">View the details in your dashboard</a></p>
		</body>
		</html>
	`, decision, amount, storeName, decision, verificationRef, verificationURL)

	plainBody := fmt.Sprintf(`
A payment claim of %s for %s was %s.

Reference: %s

View the details: %s
	`, amount, storeName, decision, verificationRef, verificationURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// SendInvoiceIssuedEmail notifies a merchant that a monthly invoice is ready.
func (s *SMTPEmailService) SendInvoiceIssuedEmail(to, storeName, invoiceRef, periodLabel, netAmount string) error {
	invoiceURL := fmt.Sprintf("%s/dashboard/invoices/%s", s.config.BaseURL, invoiceRef)

	subject := fmt.Sprintf("Invoice for %s (%s)", storeName, periodLabel)
	htmlBody := fmt.Sprintf(`
		<html>
		<body dir="auto">
			<h2>Your Invoice Is Ready</h2>
			<p>The invoice for <strong>%s</strong> covering <strong>%s</strong> has been issued.</p>
			<p>Net payout: <strong>%s</strong></p>
			<p>Reference: %s</p>
			<p><a href="%s">Download the PDF from your dashboard</a></p>
		</body>
		</html>
	`, storeName, periodLabel, netAmount, invoiceRef, invoiceURL)

	plainBody := fmt.Sprintf(`
The invoice for %s covering %s has been issued.

Net payout: %s
Reference: %s

Download the PDF: %s
	`, storeName, periodLabel, netAmount, invoiceRef, invoiceURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// SendTestEmail verifies the SMTP configuration.
func (s *SMTPEmailService) SendTestEmail(to string) error {
	return s.sendEmail(to,
		"SMTP Configuration Test",
		"<html><body><p>Your email configuration works.</p></body></html>",
		"Your email configuration works.")
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
