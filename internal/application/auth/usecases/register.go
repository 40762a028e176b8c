package usecases

import (
	"context"

	"ta7wila/internal/domain/user"
	uservo "ta7wila/internal/domain/user/valueobjects"
	"ta7wila/internal/infrastructure/auth"
	"ta7wila/internal/shared/authorization"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Password string
	Name     string
	Mobile   string
}

type RegisterResult struct {
	User *user.User
}

// RegisterUseCase creates a merchant account. Administrators are provisioned
// out of band, never through self-service registration.
type RegisterUseCase struct {
	userRepo user.Repository
	hasher   *auth.BcryptPasswordHasher
	logger   logger.Interface
}

func NewRegisterUseCase(userRepo user.Repository, hasher *auth.BcryptPasswordHasher, log logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{userRepo: userRepo, hasher: hasher, logger: log}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
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

	u, err := user.NewUser(email, hash, cmd.Name, cmd.Mobile, authorization.RoleMerchant)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", u.DBID(), "email_domain", email.Domain())
	return &RegisterResult{User: u}, nil
}
