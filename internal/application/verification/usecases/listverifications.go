package usecases

import (
	"context"

	"ta7wila/internal/domain/verification"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type ListVerificationsCommand struct {
	// ApplicationID scopes the listing to one store. Zero lists the open
	// review queue across all stores.
	ApplicationID uint
	Statuses      []string
	Page          int
	PageSize      int
}

type ListVerificationsResult struct {
	Verifications []*verification.Verification
	Total         int64
	Page          int
	PageSize      int
}

type ListVerificationsUseCase struct {
	verificationRepo verification.Repository
	logger           logger.Interface
}

func NewListVerificationsUseCase(verificationRepo verification.Repository, log logger.Interface) *ListVerificationsUseCase {
	return &ListVerificationsUseCase{verificationRepo: verificationRepo, logger: log}
}

func (uc *ListVerificationsUseCase) Execute(ctx context.Context, cmd ListVerificationsCommand) (*ListVerificationsResult, error) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	if cmd.PageSize < 1 || cmd.PageSize > 100 {
		cmd.PageSize = 20
	}
	offset := (cmd.Page - 1) * cmd.PageSize

	statuses := make([]verification.Status, 0, len(cmd.Statuses))
	for _, raw := range cmd.Statuses {
		s := verification.Status(raw)
		if !s.IsValid() {
			return nil, apperrors.NewValidationError("invalid status filter: " + raw)
		}
		statuses = append(statuses, s)
	}

	var (
		items []*verification.Verification
		total int64
		err   error
	)
	if cmd.ApplicationID == 0 {
		items, total, err = uc.verificationRepo.ListOpen(ctx, offset, cmd.PageSize)
	} else {
		items, total, err = uc.verificationRepo.ListByApplication(ctx, cmd.ApplicationID, statuses, offset, cmd.PageSize)
	}
	if err != nil {
		uc.logger.Errorw("failed to list verifications", "error", err, "application_id", cmd.ApplicationID)
		return nil, err
	}

	return &ListVerificationsResult{
		Verifications: items,
		Total:         total,
		Page:          cmd.Page,
		PageSize:      cmd.PageSize,
	}, nil
}
