package attendance

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Start    *string
	End      *string
	Employee *int
}

type ScheduleWindow struct {
	ID   int `json:"id"`
	From int `json:"from"`
	To   int `json:"to"`
}

type EmployeeShift struct {
	ID        int     `json:"id"`
	Name      *string `json:"name"`
	Tolerance int     `json:"tolerance"`
}

type RegisterEmployee struct {
	ID    int            `json:"id"`
	Name  *string        `json:"name"`
	Shift *EmployeeShift `json:"shift"`
}

type TodayAttendance struct {
	ID    int    `json:"id"`
	In    bool   `json:"in"`
	InAt  *int   `json:"in_at"`
	Out   bool   `json:"out"`
	OutAt *int   `json:"out_at"`
	Day   string `json:"work_day"`
}

// RegisterResponse is everything the kiosk confirmation modal shows.
type RegisterResponse struct {
	Employee    RegisterEmployee  `json:"employee"`
	Schedules   []ScheduleWindow  `json:"schedules"`
	Attendances []TodayAttendance `json:"attendances"`
	Now         int               `json:"now"`
	WeekDay     int               `json:"week_day"`
	WeekDayName string            `json:"week_day_name"`
}

type PunchRequest struct {
	Pin *string `json:"pin" form:"pin"`
}

type PunchResponse struct {
	bun.BaseModel `bun:"table:attendances"`

	ID         int       `json:"id" bun:"-"`
	EmployeeID int       `json:"employee" bun:"employee_id"`
	In         bool      `json:"in" bun:"in_flag"`
	InAt       *int      `json:"in_at" bun:"in_at"`
	Out        bool      `json:"out" bun:"out_flag"`
	OutAt      *int      `json:"out_at" bun:"out_at"`
	WorkDay    string    `json:"work_day" bun:"work_day"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

// RangeRow is one attendance pair inside a report window.
type RangeRow struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee"`
	EmployeeName *string `json:"employee_name"`
	InAt         *int    `json:"in_at"`
	OutAt        *int    `json:"out_at"`
	WorkDay      string  `json:"work_day"`
}
