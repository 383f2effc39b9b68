package presenter

import (
	"fmt"

	"property-booking/internal/data/entity"
)

// Role is the viewer variant a booking table is rendered for.
type Role int

const (
	RoleContractor Role = iota + 1
	RoleLandlord
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleContractor:
		return string(entity.RoleContractor)
	case RoleLandlord:
		return string(entity.RoleLandlord)
	case RoleAdmin:
		return string(entity.RoleAdmin)
	default:
		return "unknown"
	}
}

// ParseRole maps a stored user role onto its viewer variant.
func ParseRole(role string) (Role, error) {
	switch entity.UserRole(role) {
	case entity.RoleContractor:
		return RoleContractor, nil
	case entity.RoleLandlord:
		return RoleLandlord, nil
	case entity.RoleAdmin:
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("invalid role %q", role)
	}
}

// Viewer is the session state a table is built for. Loading is true while
// the identity is still being resolved.
type Viewer struct {
	Role    Role
	Loading bool
}
