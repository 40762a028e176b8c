package usecases

import (
	"context"

	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type CheckVerificationCommand struct {
	Ref string
}

type CheckVerificationResult struct {
	Verification *verification.Verification
	Matched      *transaction.Transaction
}

// CheckVerificationUseCase is the first half of the review flow. It reveals
// whether a claim has a matching provider transaction, retrying the match for
// claims that were submitted before the transaction arrived. A reviewer can
// only record a decision on a claim that has been checked and matched.
type CheckVerificationUseCase struct {
	verificationRepo verification.Repository
	transactionRepo  transaction.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewCheckVerificationUseCase(
	verificationRepo verification.Repository,
	transactionRepo transaction.Repository,
	txManager *db.TransactionManager,
	log logger.Interface,
) *CheckVerificationUseCase {
	return &CheckVerificationUseCase{
		verificationRepo: verificationRepo,
		transactionRepo:  transactionRepo,
		txManager:        txManager,
		logger:           log,
	}
}

func (uc *CheckVerificationUseCase) Execute(ctx context.Context, cmd CheckVerificationCommand) (*CheckVerificationResult, error) {
	v, err := uc.verificationRepo.GetByRef(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}

	if v.Status() == verification.StatusPending {
		if err := uc.tryMatch(ctx, v); err != nil {
			return nil, err
		}
	}

	result := &CheckVerificationResult{Verification: v}
	if v.IsMatched() || v.Status().IsFinal() {
		if id := v.MatchedTransactionID(); id != nil {
			matched, err := uc.transactionRepo.GetByDBID(ctx, *id)
			if err != nil {
				return nil, err
			}
			result.Matched = matched
		}
	}
	return result, nil
}

func (uc *CheckVerificationUseCase) tryMatch(ctx context.Context, v *verification.Verification) error {
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		candidate, err := uc.transactionRepo.FindOldestUnclaimedMatch(txCtx, v.DestinationID(), v.Sender().Value(), v.Amount())
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
		return uc.verificationRepo.Update(txCtx, v)
	})
	if err != nil {
		uc.logger.Errorw("failed to re-run claim matching", "error", err, "verification_ref", v.Ref())
		return err
	}
	if v.IsMatched() {
		uc.logger.Infow("claim matched on check", "verification_ref", v.Ref())
	}
	return nil
}

type DecideVerificationCommand struct {
	Ref        string
	Decision   string
	ReviewerID uint
}

type DecideVerificationResult struct {
	Verification *verification.Verification
}

// DecideVerificationUseCase is the second half of the review flow. It records
// the reviewer's verdict on a matched claim and notifies the store owner.
type DecideVerificationUseCase struct {
	verificationRepo verification.Repository
	notifier         DecisionNotifier
	logger           logger.Interface
}

// DecisionNotifier delivers the outcome of a review to the store owner.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, v *verification.Verification) error
}

func NewDecideVerificationUseCase(
	verificationRepo verification.Repository,
	notifier DecisionNotifier,
	log logger.Interface,
) *DecideVerificationUseCase {
	return &DecideVerificationUseCase{
		verificationRepo: verificationRepo,
		notifier:         notifier,
		logger:           log,
	}
}

func (uc *DecideVerificationUseCase) Execute(ctx context.Context, cmd DecideVerificationCommand) (*DecideVerificationResult, error) {
	decision := verification.Status(cmd.Decision)
	if decision != verification.StatusVerified && decision != verification.StatusRejected {
		return nil, apperrors.NewValidationError("decision must be verified or rejected")
	}

	v, err := uc.verificationRepo.GetByRef(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}

	if err := v.Decide(decision, cmd.ReviewerID); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.verificationRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	uc.logger.Infow("claim decided",
		"verification_ref", v.Ref(),
		"decision", decision,
		"reviewer_id", cmd.ReviewerID,
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyDecision(ctx, v); err != nil {
			uc.logger.Warnw("failed to notify store owner of decision", "error", err, "verification_ref", v.Ref())
		}
	}

	return &DecideVerificationResult{Verification: v}, nil
}
