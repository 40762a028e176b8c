package usecases

import (
	"context"

	"ta7wila/internal/domain/user"
	"ta7wila/internal/shared/logger"
)

type ListUsersCommand struct {
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users []*user.User
	Total int64
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, log logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: log}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, cmd ListUsersCommand) (*ListUsersResult, error) {
	offset := (cmd.Page - 1) * cmd.PageSize
	users, total, err := uc.userRepo.List(ctx, offset, cmd.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}
	return &ListUsersResult{Users: users, Total: total}, nil
}
