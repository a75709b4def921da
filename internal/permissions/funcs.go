package permissions

import "html/template"

// FuncMap returns template helpers gating affordances on resolved permissions:
//
//	{{ if can .Permissions "Processing" "Create" }}...{{ end }}
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"can": func(up UserPermissions, module, action string) bool {
			return up.Has(module, action)
		},
		"canAny": func(up UserPermissions, module string, actions ...string) bool {
			required := make([]Permission, 0, len(actions))
			for _, action := range actions {
				required = append(required, Permission{Module: module, Action: action})
			}
			return len(required) > 0 && up.HasAny(required...)
		},
		// canManage requires every CRUD action on module.
		"canManage": func(up UserPermissions, module string) bool {
			return up.HasAll(CRUD(module)...)
		},
		"hasRole": func(up UserPermissions, role string) bool {
			return up.HasRole(role)
		},
		// visibleModules lists the known modules the caller may read, in
		// navigation order.
		"visibleModules": func(up UserPermissions) []string {
			var out []string
			for _, module := range Modules() {
				if up.Has(module, ActionRead) {
					out = append(out, module)
				}
			}
			return out
		},
	}
}
