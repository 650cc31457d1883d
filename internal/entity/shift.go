package entity

import (
	"github.com/uptrace/bun"
)

// Shift is a named work schedule template composed of per-weekday time
// windows.
type Shift struct {
	bun.BaseModel `bun:"table:shifts"`

	BasicEntity
	Name      *string `json:"name"      bun:"name"`
	Tolerance *int    `json:"tolerance" bun:"tolerance"`
}

// ShiftDay is one weekday entry within a shift, week_day 0=Sunday.
type ShiftDay struct {
	bun.BaseModel `bun:"table:shift_days"`

	BasicEntity
	WeekDay *int `json:"week_day" bun:"week_day"`
	ShiftID *int `json:"shift"    bun:"shift_id"`
}

// ShiftSchedule is a single from-to window within a day, both offsets
// in minutes since midnight.
type ShiftSchedule struct {
	bun.BaseModel `bun:"table:shift_schedules"`

	BasicEntity
	FromMinutes *int `json:"from" bun:"from_minutes"`
	ToMinutes   *int `json:"to"   bun:"to_minutes"`
	DayID       *int `json:"day"  bun:"day_id"`
}
