package mappers

import (
	"fmt"

	"ta7wila/internal/domain/user"
	uservo "ta7wila/internal/domain/user/valueobjects"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/shared/authorization"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.DBID(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash(),
		Name:         u.Name(),
		Mobile:       u.Mobile(),
		Role:         u.Role().String(),
		Status:       string(u.Status()),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func UserToDomain(model *models.UserModel) (*user.User, error) {
	email, err := uservo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email: %w", err)
	}

	status := user.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid user status: %s", model.Status)
	}

	return user.ReconstructUser(
		model.ID,
		email,
		model.PasswordHash,
		model.Name,
		model.Mobile,
		authorization.ParseUserRole(model.Role),
		status,
		model.LastLoginAt,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
