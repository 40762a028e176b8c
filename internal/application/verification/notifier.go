package verification

import (
	"context"
	"time"

	"ta7wila/internal/domain/store"
	"ta7wila/internal/domain/user"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/infrastructure/email"
	"ta7wila/internal/infrastructure/webhook"
	"ta7wila/internal/shared/logger"
)

// EmailDecisionNotifier mails review outcomes to the owner of the store the
// claim was submitted against, and posts the event to the store's webhook URL
// when one is configured.
type EmailDecisionNotifier struct {
	storeRepo store.Repository
	userRepo  user.Repository
	emails    email.Service
	webhooks  *webhook.Notifier
	logger    logger.Interface
}

func NewEmailDecisionNotifier(
	storeRepo store.Repository,
	userRepo user.Repository,
	emails email.Service,
	webhooks *webhook.Notifier,
	log logger.Interface,
) *EmailDecisionNotifier {
	return &EmailDecisionNotifier{
		storeRepo: storeRepo,
		userRepo:  userRepo,
		emails:    emails,
		webhooks:  webhooks,
		logger:    log,
	}
}

func (n *EmailDecisionNotifier) NotifyDecision(ctx context.Context, v *verification.Verification) error {
	st, err := n.storeRepo.GetByDBID(ctx, v.ApplicationID())
	if err != nil {
		return err
	}
	owner, err := n.userRepo.GetByDBID(ctx, st.OwnerID())
	if err != nil {
		return err
	}

	if n.webhooks != nil && st.WebhookURL() != "" {
		event := webhook.Event{
			Type:            "verification.decided",
			VerificationRef: v.Ref(),
			Status:          v.Status().String(),
			Amount:          v.Amount().String(),
			Channel:         v.Channel().String(),
			OccurredAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if err := n.webhooks.Send(ctx, st.WebhookURL(), event); err != nil {
			n.logger.Warnw("failed to deliver decision webhook", "error", err, "store_sid", st.SID())
		}
	}

	return n.emails.SendVerificationDecisionEmail(
		owner.Email().String(),
		st.Name(),
		v.Ref(),
		v.Status().String(),
		v.Amount().String(),
	)
}
