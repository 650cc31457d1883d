// Package policy is the authorization table behind every gated route:
// which role may perform which action on which resource. It is pure and
// has no dependency on the web or storage layers so it can be tested in
// isolation.
package policy

import (
	"fmt"

	"timeclock/backend/internal/auth"
)

// Resources.
const (
	ResourceAttendances = "attendances"
	ResourceEmployees   = "employees"
	ResourceShifts      = "shifts"
	ResourceUsers       = "users"
	ResourceCompany     = "company"
)

// Actions.
const (
	ActionReadAny   = "read:any"
	ActionCreate    = "create"
	ActionUpdateAny = "update:any"
	ActionDelete    = "delete"
)

var allActions = []string{ActionReadAny, ActionCreate, ActionUpdateAny, ActionDelete}

// grants maps role -> resource -> allowed actions. Absence means denied.
var grants = map[string]map[string][]string{
	auth.RoleAdmin: {
		ResourceAttendances: allActions,
		ResourceEmployees:   allActions,
		ResourceShifts:      allActions,
		ResourceUsers:       allActions,
		ResourceCompany:     allActions,
	},
	auth.RoleManager: {
		ResourceAttendances: {ActionReadAny, ActionCreate},
		ResourceEmployees:   allActions,
		ResourceShifts:      allActions,
		ResourceCompany:     {ActionReadAny},
	},
	auth.RoleKiosk: {
		ResourceAttendances: {ActionCreate},
	},
	auth.RoleViewer: {
		ResourceAttendances: {ActionReadAny},
		ResourceEmployees:   {ActionReadAny},
		ResourceShifts:      {ActionReadAny},
	},
}

// Decision is the outcome of a policy evaluation, kept around for logs.
type Decision struct {
	Allowed  bool
	Role     string
	Resource string
	Action   string
}

func (d Decision) String() string {
	verdict := "deny"
	if d.Allowed {
		verdict = "allow"
	}
	return fmt.Sprintf("%s %s %s:%s", verdict, d.Role, d.Resource, d.Action)
}

// Evaluate looks the triple up in the grants table. Unknown roles,
// resources and actions all evaluate to a deny, never to a panic.
func Evaluate(role, resource, action string) Decision {
	d := Decision{Role: role, Resource: resource, Action: action}

	actions, ok := grants[role][resource]
	if !ok {
		return d
	}

	for _, a := range actions {
		if a == action {
			d.Allowed = true
			return d
		}
	}

	return d
}

// Can reports whether the role may perform the action on the resource.
func Can(role, resource, action string) bool {
	return Evaluate(role, resource, action).Allowed
}
