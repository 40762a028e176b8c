package user

import (
	"fmt"
	"strings"
	"time"

	uservo "ta7wila/internal/domain/user/valueobjects"
	"ta7wila/internal/shared/authorization"
	"ta7wila/internal/shared/biztime"
)

// Status of a user account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusSuspended
}

// User is a dashboard account. Merchants own stores, employees act on a
// merchant's stores, admins review verifications across all stores.
type User struct {
	dbID         uint
	email        uservo.Email
	passwordHash string
	name         string
	mobile       string
	role         authorization.UserRole
	status       Status
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an account. passwordHash is the bcrypt digest produced by
// the hasher in the infrastructure layer.
func NewUser(email uservo.Email, passwordHash, name, mobile string, role authorization.UserRole) (*User, error) {
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		mobile:       strings.TrimSpace(mobile),
		role:         role,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// RecordLogin stamps a successful authentication.
func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateProfile replaces name and mobile.
func (u *User) UpdateProfile(name, mobile string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.mobile = strings.TrimSpace(mobile)
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) Suspend() {
	u.status = StatusSuspended
	u.updatedAt = biztime.NowUTC()
}

func (u *User) Activate() {
	u.status = StatusActive
	u.updatedAt = biztime.NowUTC()
}

func (u *User) CanLogin() bool {
	return u.status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}

func (u *User) DBID() uint                       { return u.dbID }
func (u *User) Email() uservo.Email              { return u.email }
func (u *User) PasswordHash() string             { return u.passwordHash }
func (u *User) Name() string                     { return u.name }
func (u *User) Mobile() string                   { return u.mobile }
func (u *User) Role() authorization.UserRole     { return u.role }
func (u *User) Status() Status                   { return u.status }
func (u *User) LastLoginAt() *time.Time          { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time             { return u.createdAt }
func (u *User) UpdatedAt() time.Time             { return u.updatedAt }

// SetDBID sets the database ID after persistence.
func (u *User) SetDBID(dbID uint) {
	u.dbID = dbID
}

// ReconstructUser rebuilds a User from persistence.
func ReconstructUser(
	dbID uint,
	email uservo.Email,
	passwordHash, name, mobile string,
	role authorization.UserRole,
	status Status,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		dbID:         dbID,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		mobile:       mobile,
		role:         role,
		status:       status,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}
