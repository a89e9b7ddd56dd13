package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role is a coarse permission group carried in access tokens.
type Role string

const (
	RoleTenant        Role = "TENANT"
	RolePropertyOwner Role = "PROPERTY_OWNER"
	RoleAdmin         Role = "ADMIN"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RoleTenant, RolePropertyOwner, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes and validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Roles  []Role
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the identity carries at least one of roles.
func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}
	return false
}
