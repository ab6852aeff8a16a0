package auth

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
	Email  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}

// IsStaff is true for staff members and admins.
func (p Principal) IsStaff() bool {
	return p.Role == user.RoleStaff || p.Role == user.RoleAdmin
}

func (p Principal) HasRole(roles ...user.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
