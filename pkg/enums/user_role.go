package enums

import "fmt"

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

var validUserRoles = []UserRole{
	RoleAdmin,
	RoleStaff,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	for _, v := range validUserRoles {
		if r == v {
			return true
		}
	}
	return false
}

func ParseUserRole(value string) (UserRole, error) {
	candidate := UserRole(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid user role: %q", value)
	}
	return candidate, nil
}
