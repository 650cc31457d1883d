package report

import "testing"

func ptr(v int) *int { return &v }

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{510, "08:30"},
		{1439, "23:59"},
		{1500, "25:00"},
		{-5, "00:00"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestBuildSingleEmployee(t *testing.T) {
	groups := Build([]Entry{
		{EmployeeID: 1, EmployeeName: "Ana", WorkDay: "2026-08-24", InAt: ptr(540), OutAt: ptr(1050)},
		{EmployeeID: 1, EmployeeName: "Ana", WorkDay: "2026-08-25", InAt: ptr(9 * 60), OutAt: ptr(17*60 + 30)},
	})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if g.EmployeeName != "Ana" {
		t.Fatalf("group name = %q", g.EmployeeName)
	}
	if len(g.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(g.Lines))
	}
	if g.Lines[1].In != "09:00" || g.Lines[1].Out != "17:30" || g.Lines[1].Worked != "08:30" {
		t.Fatalf("line = %+v", g.Lines[1])
	}
	if g.Total != "17:00" || g.TotalMinutes != 1020 {
		t.Fatalf("total = %s (%d minutes)", g.Total, g.TotalMinutes)
	}
}

func TestBuildOpenPairSkippedFromTotal(t *testing.T) {
	groups := Build([]Entry{
		{EmployeeID: 7, EmployeeName: "Bo", WorkDay: "2026-08-24", InAt: ptr(480), OutAt: ptr(720)},
		{EmployeeID: 7, EmployeeName: "Bo", WorkDay: "2026-08-24", InAt: ptr(780), OutAt: nil},
	})

	g := groups[0]
	if g.Lines[1].Out != "--:--" || g.Lines[1].Worked != "--:--" {
		t.Fatalf("open line = %+v", g.Lines[1])
	}
	if g.TotalMinutes != 240 {
		t.Fatalf("total minutes = %d, want 240", g.TotalMinutes)
	}
}

func TestBuildOvernightPair(t *testing.T) {
	groups := Build([]Entry{
		{EmployeeID: 2, EmployeeName: "Cy", WorkDay: "2026-08-24", InAt: ptr(22 * 60), OutAt: ptr(6 * 60)},
	})

	if got := groups[0].Lines[0].Worked; got != "08:00" {
		t.Fatalf("overnight worked = %q, want 08:00", got)
	}
}

func TestBuildOrdersGroupsByName(t *testing.T) {
	groups := Build([]Entry{
		{EmployeeID: 9, EmployeeName: "Zed", WorkDay: "2026-08-24", InAt: ptr(540), OutAt: ptr(600)},
		{EmployeeID: 3, EmployeeName: "Amy", WorkDay: "2026-08-24", InAt: ptr(540), OutAt: ptr(600)},
	})

	if groups[0].EmployeeName != "Amy" || groups[1].EmployeeName != "Zed" {
		t.Fatalf("order = %s, %s", groups[0].EmployeeName, groups[1].EmployeeName)
	}
}
