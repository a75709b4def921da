package permissions

import (
	"encoding/json"
	"strings"
)

// Action names an operation category inside a module.
type Action = string

// Known actions. The vocabulary is open; upstream may introduce new ones.
const (
	ActionRead   Action = "Read"
	ActionCreate Action = "Create"
	ActionUpdate Action = "Update"
	ActionDelete Action = "Delete"
)

// Permission grants one action on one module.
type Permission struct {
	Module string `json:"module" validate:"required"`
	Action Action `json:"action" validate:"required"`
}

// String renders the permission as module.action.
func (p Permission) String() string {
	return p.Module + "." + p.Action
}

// UserPermissions is the resolved role and permission set of one caller.
// Values are immutable; build a new one with New instead of patching.
type UserPermissions struct {
	roles []string
	perms []Permission
	set   map[Permission]struct{}
}

// Empty returns the least privileged value: no roles, no permissions.
func Empty() UserPermissions {
	return UserPermissions{}
}

// New builds UserPermissions from upstream roles and permissions. Blank roles
// and permissions with an empty module or action are dropped, duplicates are
// removed and the first-seen order is kept.
func New(roles []string, perms []Permission) UserPermissions {
	up := UserPermissions{}
	seenRoles := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if strings.TrimSpace(role) == "" {
			continue
		}
		if _, ok := seenRoles[role]; ok {
			continue
		}
		seenRoles[role] = struct{}{}
		up.roles = append(up.roles, role)
	}
	for _, p := range perms {
		if p.Module == "" || p.Action == "" {
			continue
		}
		if up.set == nil {
			up.set = make(map[Permission]struct{}, len(perms))
		}
		if _, ok := up.set[p]; ok {
			continue
		}
		up.set[p] = struct{}{}
		up.perms = append(up.perms, p)
	}
	return up
}

// Roles returns a copy of the caller's role names in upstream order.
func (up UserPermissions) Roles() []string {
	out := make([]string, len(up.roles))
	copy(out, up.roles)
	return out
}

// Permissions returns a copy of the granted permissions.
func (up UserPermissions) Permissions() []Permission {
	out := make([]Permission, len(up.perms))
	copy(out, up.perms)
	return out
}

// IsEmpty reports whether nothing is granted.
func (up UserPermissions) IsEmpty() bool {
	return len(up.roles) == 0 && len(up.perms) == 0
}

// Has reports whether the exact (module, action) pair was granted.
func (up UserPermissions) Has(module string, action Action) bool {
	_, ok := up.set[Permission{Module: module, Action: action}]
	return ok
}

// HasRole reports whether the caller holds the named role.
func (up UserPermissions) HasRole(role string) bool {
	for _, r := range up.roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAny reports whether at least one of the permissions is granted.
// An empty requirement is satisfied.
func (up UserPermissions) HasAny(required ...Permission) bool {
	if len(required) == 0 {
		return true
	}
	for _, p := range required {
		if up.Has(p.Module, p.Action) {
			return true
		}
	}
	return false
}

// HasAll reports whether every permission is granted.
func (up UserPermissions) HasAll(required ...Permission) bool {
	for _, p := range required {
		if !up.Has(p.Module, p.Action) {
			return false
		}
	}
	return true
}

// HasPermission is the pure authorization query used by the presentation layer.
func HasPermission(up UserPermissions, module string, action Action) bool {
	return up.Has(module, action)
}

type payload struct {
	Roles       []string     `json:"roles"`
	Permissions []Permission `json:"permissions"`
}

// MarshalJSON renders {roles, permissions} with empty arrays instead of null.
func (up UserPermissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(payload{Roles: up.Roles(), Permissions: up.Permissions()})
}
