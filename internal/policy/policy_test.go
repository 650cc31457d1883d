package policy

import (
	"testing"

	"timeclock/backend/internal/auth"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{auth.RoleAdmin, ResourceUsers, ActionDelete, true},
		{auth.RoleAdmin, ResourceCompany, ActionUpdateAny, true},
		{auth.RoleManager, ResourceEmployees, ActionCreate, true},
		{auth.RoleManager, ResourceShifts, ActionUpdateAny, true},
		{auth.RoleManager, ResourceUsers, ActionReadAny, false},
		{auth.RoleManager, ResourceCompany, ActionUpdateAny, false},
		{auth.RoleKiosk, ResourceAttendances, ActionCreate, true},
		{auth.RoleKiosk, ResourceAttendances, ActionReadAny, false},
		{auth.RoleKiosk, ResourceEmployees, ActionReadAny, false},
		{auth.RoleViewer, ResourceAttendances, ActionReadAny, true},
		{auth.RoleViewer, ResourceEmployees, ActionDelete, false},
	}

	for _, c := range cases {
		d := Evaluate(c.role, c.resource, c.action)
		if d.Allowed != c.allowed {
			t.Fatalf("Evaluate(%s, %s, %s) = %v, want %v", c.role, c.resource, c.action, d.Allowed, c.allowed)
		}
	}
}

func TestEvaluateUnknownTriplesDeny(t *testing.T) {
	cases := []struct {
		role     string
		resource string
		action   string
	}{
		{"", ResourceUsers, ActionReadAny},
		{"SUPERADMIN", ResourceUsers, ActionReadAny},
		{auth.RoleAdmin, "unknown", ActionReadAny},
		{auth.RoleAdmin, ResourceUsers, "unknown"},
	}

	for _, c := range cases {
		if Can(c.role, c.resource, c.action) {
			t.Fatalf("Can(%q, %q, %q) = true, want deny", c.role, c.resource, c.action)
		}
	}
}

func TestDecisionString(t *testing.T) {
	d := Evaluate(auth.RoleViewer, ResourceShifts, ActionReadAny)
	if got := d.String(); got != "allow VIEWER shifts:read:any" {
		t.Fatalf("Decision.String() = %q", got)
	}

	d = Evaluate(auth.RoleKiosk, ResourceShifts, ActionDelete)
	if got := d.String(); got != "deny KIOSK shifts:delete" {
		t.Fatalf("Decision.String() = %q", got)
	}
}
