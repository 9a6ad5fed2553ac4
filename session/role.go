// Package session holds the process-wide record of the current
// authenticated (or demo) identity, its role, and the salon/stylist
// associations derived from the user record.
package session

import "strings"

// Role is the capability class of the current user. The set is open:
// unrecognized values are preserved and routed to the customer area.
type Role string

const (
	RoleUser       Role = "user"
	RoleSalon      Role = "salon"
	RoleManager    Role = "manager"
	RoleStylist    Role = "stylist"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole normalizes a raw role string.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// Area is a top-level app area a consumer routes to after the session
// resolves.
type Area string

const (
	AreaCustomer Area = "customer"
	AreaSalon    Area = "salon"
	AreaStylist  Area = "stylist"
	AreaAdmin    Area = "admin"
	AreaAuth     Area = "auth"
)

// AreaForRole maps a role to its app area. This is the single routing
// function consumed by every call site; salon and manager are colocated,
// as are admin and superadmin. Unrecognized roles fall back to the
// customer area.
func AreaForRole(role Role) Area {
	switch role {
	case RoleSalon, RoleManager:
		return AreaSalon
	case RoleStylist:
		return AreaStylist
	case RoleAdmin, RoleSuperAdmin:
		return AreaAdmin
	default:
		return AreaCustomer
	}
}
