package enum

// UserRole represents the role assigned to a user account
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// Valid checks whether the role is one of the known roles
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// CanViewCost reports whether the role may see cost prices and profit margins
func (r UserRole) CanViewCost() bool {
	return r == RoleAdmin
}

// String returns the string representation of the role
func (r UserRole) String() string {
	return string(r)
}
