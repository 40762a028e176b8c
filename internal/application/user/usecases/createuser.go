package usecases

import (
	"context"

	"ta7wila/internal/domain/user"
	uservo "ta7wila/internal/domain/user/valueobjects"
	"ta7wila/internal/infrastructure/auth"
	"ta7wila/internal/shared/authorization"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type CreateUserCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required"`
	Mobile   string
	Role     string `validate:"required,oneof=admin merchant employee"`
}

type CreateUserResult struct {
	User *user.User
}

// CreateUserUseCase provisions accounts with an explicit role. Self-service
// registration only creates merchants; employee and admin accounts come
// through here.
type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   *auth.BcryptPasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher *auth.BcryptPasswordHasher, log logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo, hasher: hasher, logger: log}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	email, err := uservo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	password, err := uservo.NewPlainPassword(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("email is already registered")
	}

	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to create account")
	}

	role := authorization.UserRole(cmd.Role)
	u, err := user.NewUser(email, hash, cmd.Name, cmd.Mobile, role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Infow("user provisioned", "user_id", u.DBID(), "role", role.String(),
		"email_domain", email.Domain())
	return &CreateUserResult{User: u}, nil
}
