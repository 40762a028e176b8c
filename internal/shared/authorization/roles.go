package authorization

type UserRole string

const (
	// RoleAdmin reviews verification requests and manages the platform.
	RoleAdmin UserRole = "admin"
	// RoleMerchant owns stores and their payment destinations.
	RoleMerchant UserRole = "merchant"
	// RoleEmployee is a store-scoped account created by a merchant.
	RoleEmployee UserRole = "employee"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMerchant, RoleEmployee:
		return true
	}
	return false
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleMerchant
}
