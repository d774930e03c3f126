package domain

// UserRole роль пользователя из заголовка X-User-Role
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleStaff    UserRole = "STAFF"
	RoleCustomer UserRole = "CUSTOMER"
)

// IsValid returns true for a known role
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// CanSeeAllBookings returns true for roles that work with every customer's orders
func (r UserRole) CanSeeAllBookings() bool {
	return r == RoleAdmin || r == RoleStaff
}
