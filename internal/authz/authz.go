// Package authz resolves raw role labels into effective capabilities.
//
// Every privilege check in the server goes through Resolve so that the rule
// "super_admin implies every other role" lives in exactly one place.
package authz

import (
	"github.com/samrambhak/community-server-go/internal/model"
)

// Capabilities is the effective permission set of one user.
type Capabilities struct {
	roles map[model.Role]struct{}
}

// Resolve builds the effective capability set from the roles assigned to a
// user. Unknown labels are ignored.
func Resolve(roles []model.Role) Capabilities {
	c := Capabilities{roles: make(map[model.Role]struct{}, len(model.AllRoles))}
	for _, r := range roles {
		switch r {
		case model.RoleSuperAdmin:
			for _, all := range model.AllRoles {
				c.roles[all] = struct{}{}
			}
		case model.RoleContentModerator, model.RoleCategoryManager:
			c.roles[r] = struct{}{}
		}
	}
	return c
}

// Has reports whether the capability set includes role.
func (c Capabilities) Has(role model.Role) bool {
	_, ok := c.roles[role]
	return ok
}

// HasAny reports whether any of the given roles is satisfied. With no roles
// it behaves like IsAdmin.
func (c Capabilities) HasAny(roles ...model.Role) bool {
	if len(roles) == 0 {
		return c.IsAdmin()
	}
	for _, r := range roles {
		if c.Has(r) {
			return true
		}
	}
	return false
}

func (c Capabilities) IsAdmin() bool {
	return len(c.roles) > 0
}
