// Package access implements the authorization core: the workspace role
// hierarchy, the resource-to-workspace locator, the coarse workspace role
// gate and the fine-grained policy/rule evaluator.
package access

import "workhub/internal/model"

// roleRank задает фиксированный порядок ролей. Роли сравниваются только
// внутри этой иерархии.
var roleRank = map[model.WorkspaceRole]int{
	model.RoleViewer: 0,
	model.RoleEditor: 1,
	model.RoleAdmin:  2,
	model.RoleOwner:  3,
}

// RoleAtLeast reports whether actual meets or exceeds required in the
// fixed order viewer < editor < admin < owner. An unknown role ranks
// below viewer, so it never satisfies any requirement.
func RoleAtLeast(actual, required model.WorkspaceRole) bool {
	actualRank, ok := roleRank[actual]
	if !ok {
		return false
	}
	requiredRank, ok := roleRank[required]
	if !ok {
		return false
	}
	return actualRank >= requiredRank
}
