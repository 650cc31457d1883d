// Package report turns raw attendance pairs into the per employee
// summary shown on the reports page and written to the exports. It is
// pure so the aggregation can be tested without a database.
package report

import (
	"fmt"
	"sort"

	"timeclock/backend/internal/pkg/timefmt"
)

// Entry is one attendance pair inside the requested range.
type Entry struct {
	EmployeeID   int
	EmployeeName string
	WorkDay      string
	InAt         *int
	OutAt        *int
}

// Line is one rendered report row.
type Line struct {
	WorkDay string `json:"work_day"`
	In      string `json:"in"`
	Out     string `json:"out"`
	Worked  string `json:"worked"`
	Minutes int    `json:"minutes"`
}

// Group is all the lines of one employee plus the Total row.
type Group struct {
	EmployeeID   int    `json:"employee"`
	EmployeeName string `json:"employee_name"`
	Lines        []Line `json:"lines"`
	TotalMinutes int    `json:"total_minutes"`
	Total        string `json:"total"`
}

const missingClock = "--:--"

// FormatDuration renders worked minutes as HH:MM. Totals can exceed a
// day so the hour part is not bounded.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// pairMinutes is the worked length of a closed pair. An out before the
// in means the pair crossed midnight.
func pairMinutes(in, out int) int {
	d := out - in
	if d < 0 {
		d += timefmt.MinutesPerDay
	}
	return d
}

func clock(minutes *int) string {
	if minutes == nil {
		return missingClock
	}
	s, err := timefmt.MinutesToClock(*minutes)
	if err != nil {
		return missingClock
	}
	return s
}

// Build groups entries by employee, renders each pair and sums closed
// pairs into the employee total. Groups come out ordered by employee
// name, lines keep their input order.
func Build(entries []Entry) []Group {
	byEmployee := map[int]*Group{}
	var order []int

	for _, e := range entries {
		g, ok := byEmployee[e.EmployeeID]
		if !ok {
			g = &Group{EmployeeID: e.EmployeeID, EmployeeName: e.EmployeeName}
			byEmployee[e.EmployeeID] = g
			order = append(order, e.EmployeeID)
		}

		line := Line{
			WorkDay: e.WorkDay,
			In:      clock(e.InAt),
			Out:     clock(e.OutAt),
			Worked:  missingClock,
		}

		if e.InAt != nil && e.OutAt != nil {
			line.Minutes = pairMinutes(*e.InAt, *e.OutAt)
			line.Worked = FormatDuration(line.Minutes)
			g.TotalMinutes += line.Minutes
		}

		g.Lines = append(g.Lines, line)
	}

	groups := make([]Group, 0, len(order))
	for _, id := range order {
		g := byEmployee[id]
		g.Total = FormatDuration(g.TotalMinutes)
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].EmployeeName < groups[j].EmployeeName
	})

	return groups
}
