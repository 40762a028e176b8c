package usecases

import (
	"context"

	verificationusecases "ta7wila/internal/application/verification/usecases"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type PublicPayCommand struct {
	Slug           string
	DestinationSID string
	SenderValue    string
	Amount         string
}

type PublicPayResult struct {
	VerificationRef string
	Status          string
	Matched         bool
}

// PublicPayUseCase submits a claim from the unauthenticated checkout page.
// It resolves the store by slug and applies public trust validation, then
// defers to the shared claim submission flow.
type PublicPayUseCase struct {
	storeRepo store.Repository
	submit    *verificationusecases.SubmitClaimUseCase
	logger    logger.Interface
}

func NewPublicPayUseCase(
	storeRepo store.Repository,
	submit *verificationusecases.SubmitClaimUseCase,
	log logger.Interface,
) *PublicPayUseCase {
	return &PublicPayUseCase{storeRepo: storeRepo, submit: submit, logger: log}
}

func (uc *PublicPayUseCase) Execute(ctx context.Context, cmd PublicPayCommand) (*PublicPayResult, error) {
	st, err := uc.storeRepo.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		return nil, err
	}
	if !st.IsActive() {
		return nil, apperrors.NewNotFoundError("store not found")
	}

	result, err := uc.submit.Execute(ctx, verificationusecases.SubmitClaimCommand{
		ApplicationID:  st.DBID(),
		DestinationSID: cmd.DestinationSID,
		SenderValue:    cmd.SenderValue,
		Amount:         cmd.Amount,
		Trust:          vo.TrustPublic,
	})
	if err != nil {
		return nil, err
	}

	return &PublicPayResult{
		VerificationRef: result.Verification.Ref(),
		Status:          result.Verification.Status().String(),
		Matched:         result.Matched != nil,
	}, nil
}
