// Package whatsapp exposes the WhatsApp bridge session to the dashboard:
// session status with the pairing QR code, and explicit start and stop.
package whatsapp

import (
	"context"

	"ta7wila/internal/infrastructure/whatsapp"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type SessionStatus struct {
	State       string `json:"state"`
	QRCode      string `json:"qr_code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type Service struct {
	client *whatsapp.Client
	poller *whatsapp.Poller
	logger logger.Interface
}

func NewService(client *whatsapp.Client, poller *whatsapp.Poller, log logger.Interface) *Service {
	return &Service{client: client, poller: poller, logger: log}
}

// GetStatus returns the cached bridge status. The poller keeps it fresh and
// drops QR codes past their scan window.
func (s *Service) GetStatus(ctx context.Context) (*SessionStatus, error) {
	status, err := s.poller.CurrentStatus()
	if err != nil {
		return nil, apperrors.NewInternalError("whatsapp bridge is unreachable")
	}
	return toSessionStatus(status), nil
}

// StartSession asks the bridge to begin pairing and returns the first status,
// usually carrying a QR code to scan.
func (s *Service) StartSession(ctx context.Context) (*SessionStatus, error) {
	status, err := s.client.StartSession(ctx)
	if err != nil {
		s.logger.Errorw("failed to start whatsapp session", "error", err)
		return nil, apperrors.NewInternalError("failed to start whatsapp session")
	}
	s.logger.Infow("whatsapp session starting", "state", status.State)
	return toSessionStatus(status), nil
}

func (s *Service) StopSession(ctx context.Context) error {
	if err := s.client.StopSession(ctx); err != nil {
		s.logger.Errorw("failed to stop whatsapp session", "error", err)
		return apperrors.NewInternalError("failed to stop whatsapp session")
	}
	s.logger.Infow("whatsapp session stopped")
	return nil
}

type SendMessageCommand struct {
	Mobile string `json:"mobile" validate:"required,min=10"`
	Body   string `json:"body" validate:"required"`
}

// SendMessage delivers a text message through the connected session.
func (s *Service) SendMessage(ctx context.Context, cmd SendMessageCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}
	if err := s.client.SendMessage(ctx, cmd.Mobile, cmd.Body); err != nil {
		s.logger.Errorw("failed to send whatsapp message", "error", err)
		return apperrors.NewInternalError("failed to send whatsapp message")
	}
	return nil
}

func toSessionStatus(status *whatsapp.Status) *SessionStatus {
	return &SessionStatus{
		State:       string(status.State),
		QRCode:      status.QRCode,
		PhoneNumber: status.PhoneNumber,
	}
}
