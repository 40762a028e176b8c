package usecases

import (
	"context"

	"ta7wila/internal/domain/user"
	uservo "ta7wila/internal/domain/user/valueobjects"
	"ta7wila/internal/infrastructure/auth"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User   *user.User
	Tokens *auth.TokenPair
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   *auth.BcryptPasswordHasher
	jwt      *auth.JWTService
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher *auth.BcryptPasswordHasher,
	jwt *auth.JWTService,
	log logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, jwt: jwt, logger: log}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := uservo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// same answer for unknown accounts and bad passwords
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", u.DBID(), "email", utils.MaskEmail(email.String()))
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if !u.CanLogin() {
		return nil, apperrors.NewForbiddenError("account is suspended")
	}

	u.RecordLogin()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to record login time", "error", err, "user_id", u.DBID())
	}

	tokens, err := uc.jwt.Generate(u.DBID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_id", u.DBID())
		return nil, apperrors.NewInternalError("failed to sign in")
	}

	uc.logger.Infow("user logged in", "user_id", u.DBID(), "role", u.Role())
	return &LoginResult{User: u, Tokens: tokens}, nil
}

type RefreshCommand struct {
	RefreshToken string
}

type RefreshResult struct {
	Tokens *auth.TokenPair
}

type RefreshUseCase struct {
	jwt    *auth.JWTService
	logger logger.Interface
}

func NewRefreshUseCase(jwt *auth.JWTService, log logger.Interface) *RefreshUseCase {
	return &RefreshUseCase{jwt: jwt, logger: log}
}

func (uc *RefreshUseCase) Execute(ctx context.Context, cmd RefreshCommand) (*RefreshResult, error) {
	tokens, err := uc.jwt.Refresh(cmd.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	return &RefreshResult{Tokens: tokens}, nil
}

type GetProfileCommand struct {
	UserID uint
}

type GetProfileResult struct {
	User *user.User
}

type GetProfileUseCase struct {
	userRepo user.Repository
}

func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, cmd GetProfileCommand) (*GetProfileResult, error) {
	u, err := uc.userRepo.GetByDBID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	return &GetProfileResult{User: u}, nil
}
