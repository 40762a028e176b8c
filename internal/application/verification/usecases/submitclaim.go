package usecases

import (
	"context"
	"fmt"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

// ClaimGuard serializes identical in-flight claim submissions.
type ClaimGuard interface {
	Acquire(ctx context.Context, destinationID uint, senderValue string, amountCents int64) (bool, error)
	Release(ctx context.Context, destinationID uint, senderValue string, amountCents int64) error
}

type SubmitClaimCommand struct {
	ApplicationID  uint
	DestinationSID string
	SenderValue    string
	Amount         string
	Trust          vo.TrustLevel
}

type SubmitClaimResult struct {
	Verification *verification.Verification
	// Matched is the claimed provider transaction, nil when the claim is
	// queued for review without an immediate match.
	Matched *transaction.Transaction
}

// SubmitClaimUseCase records a "I paid you" claim and tries to match it
// against the ingested provider transactions. Matching claims the oldest
// unclaimed transaction with the same destination, sender and exact amount.
type SubmitClaimUseCase struct {
	verificationRepo verification.Repository
	transactionRepo  transaction.Repository
	destinationRepo  payment.DestinationRepository
	claimGuard       ClaimGuard
	txManager        *db.TransactionManager
	logger           logger.Interface
	currency         string
}

func NewSubmitClaimUseCase(
	verificationRepo verification.Repository,
	transactionRepo transaction.Repository,
	destinationRepo payment.DestinationRepository,
	claimGuard ClaimGuard,
	txManager *db.TransactionManager,
	log logger.Interface,
	currency string,
) *SubmitClaimUseCase {
	return &SubmitClaimUseCase{
		verificationRepo: verificationRepo,
		transactionRepo:  transactionRepo,
		destinationRepo:  destinationRepo,
		claimGuard:       claimGuard,
		txManager:        txManager,
		logger:           log,
		currency:         currency,
	}
}

func (uc *SubmitClaimUseCase) Execute(ctx context.Context, cmd SubmitClaimCommand) (*SubmitClaimResult, error) {
	amount, err := vo.ParseAmount(cmd.Amount, uc.currency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	dest, err := uc.destinationRepo.GetBySID(ctx, cmd.DestinationSID)
	if err != nil {
		return nil, err
	}
	if dest.ApplicationID() != cmd.ApplicationID {
		return nil, apperrors.NewNotFoundError("payment destination not found")
	}
	if !dest.IsActive() {
		return nil, apperrors.NewValidationError("payment destination is not active")
	}

	sender, err := vo.NewSenderIdentifier(cmd.SenderValue, dest.Channel(), cmd.Trust)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	acquired, err := uc.claimGuard.Acquire(ctx, dest.DBID(), sender.Value(), amount.AmountInCents())
	if err != nil {
		return nil, fmt.Errorf("failed to acquire claim guard: %w", err)
	}
	if !acquired {
		return nil, apperrors.NewConflictError("an identical claim is already being processed")
	}
	defer func() {
		if err := uc.claimGuard.Release(ctx, dest.DBID(), sender.Value(), amount.AmountInCents()); err != nil {
			uc.logger.Warnw("failed to release claim guard", "error", err)
		}
	}()

	v, err := verification.NewVerification(cmd.ApplicationID, dest.DBID(), sender, amount)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var matched *transaction.Transaction
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.verificationRepo.Create(txCtx, v); err != nil {
			return err
		}

		candidate, err := uc.transactionRepo.FindOldestUnclaimedMatch(txCtx, dest.DBID(), sender.Value(), amount)
		if err != nil {
			return err
		}
		if candidate == nil {
			return nil
		}

		if err := candidate.MarkClaimed(v.Ref()); err != nil {
			return err
		}
		if err := uc.transactionRepo.Update(txCtx, candidate); err != nil {
			return err
		}

		if err := v.AttachMatch(candidate.DBID()); err != nil {
			return err
		}
		if err := uc.verificationRepo.Update(txCtx, v); err != nil {
			return err
		}

		matched = candidate
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to submit claim",
			"error", err,
			"application_id", cmd.ApplicationID,
			"destination_sid", cmd.DestinationSID,
		)
		return nil, err
	}

	uc.logger.Infow("claim submitted",
		"verification_ref", v.Ref(),
		"application_id", cmd.ApplicationID,
		"channel", dest.Channel(),
		"sender", utils.MaskIdentifier(sender.Value()),
		"matched", matched != nil,
	)

	return &SubmitClaimResult{
		Verification: v,
		Matched:      matched,
	}, nil
}
