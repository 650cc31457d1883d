package entity

import (
	"github.com/uptrace/bun"
)

// Attendance is one clock-in/clock-out pair for an employee. The in/out
// flags gate whether the matching minute offset is meaningful. InAt and
// OutAt are minutes since midnight of WorkDay, same representation as
// the schedule windows.
type Attendance struct {
	bun.BaseModel `bun:"table:attendances"`

	BasicEntity
	EmployeeID *int    `json:"employee" bun:"employee_id"`
	In         *bool   `json:"in"       bun:"in_flag"`
	InAt       *int    `json:"in_at"    bun:"in_at"`
	Out        *bool   `json:"out"      bun:"out_flag"`
	OutAt      *int    `json:"out_at"   bun:"out_at"`
	WorkDay    *string `json:"work_day" bun:"work_day"`
}
