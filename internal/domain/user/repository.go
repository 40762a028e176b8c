package user

import (
	"context"

	uservo "ta7wila/internal/domain/user/valueobjects"
)

// Repository defines persistence operations for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByDBID(ctx context.Context, dbID uint) (*User, error)
	GetByEmail(ctx context.Context, email uservo.Email) (*User, error)
	ExistsByEmail(ctx context.Context, email uservo.Email) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
}
