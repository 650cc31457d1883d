package shift

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type ScheduleResponse struct {
	ID   int `json:"id"`
	From int `json:"from"`
	To   int `json:"to"`
}

type DayResponse struct {
	ID        int                `json:"id"`
	WeekDay   int                `json:"week_day"`
	Schedules []ScheduleResponse `json:"schedules"`
}

type GetListResponse struct {
	ID        int     `json:"id"`
	Name      *string `json:"name"`
	Tolerance *int    `json:"tolerance"`
}

type GetDetailByIdResponse struct {
	ID        int           `json:"id"`
	Name      *string       `json:"name"`
	Tolerance *int          `json:"tolerance"`
	Days      []DayResponse `json:"days"`
}

type CreateRequest struct {
	Name *string `json:"name" form:"name"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:shifts"`

	ID        int       `json:"id" bun:"-"`
	Name      *string   `json:"name" bun:"name"`
	Tolerance int       `json:"tolerance" bun:"tolerance"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID        int     `json:"id" form:"id"`
	Name      *string `json:"name" form:"name"`
	Tolerance *int    `json:"tolerance" form:"tolerance"`
}

type CreateDayRequest struct {
	WeekDay *int `json:"week_day" form:"week_day"`
	Shift   *int `json:"shift" form:"shift"`
}

type CreateDayResponse struct {
	bun.BaseModel `bun:"table:shift_days"`

	ID        int       `json:"id" bun:"-"`
	WeekDay   *int      `json:"week_day" bun:"week_day"`
	ShiftID   *int      `json:"shift" bun:"shift_id"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type CreateScheduleRequest struct {
	From *int `json:"from" form:"from"`
	To   *int `json:"to" form:"to"`
	Day  *int `json:"day" form:"day"`
}

type CreateScheduleResponse struct {
	bun.BaseModel `bun:"table:shift_schedules"`

	ID        int       `json:"id" bun:"-"`
	From      int       `json:"from" bun:"from_minutes"`
	To        int       `json:"to" bun:"to_minutes"`
	DayID     *int      `json:"day" bun:"day_id"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateScheduleRequest struct {
	ID   int  `json:"id" form:"id"`
	From *int `json:"from" form:"from"`
	To   *int `json:"to" form:"to"`
}
