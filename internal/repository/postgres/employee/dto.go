package employee

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

type ShiftResponse struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Tolerance int           `json:"tolerance"`
	Days      []DayResponse `json:"days"`
}

type GetListResponse struct {
	ID        int     `json:"id"`
	Name      *string `json:"name"`
	ShiftID   *int    `json:"shift_id"`
	ShiftName *string `json:"shift_name"`
}

type GetDetailByIdResponse struct {
	ID        int           `json:"id"`
	Name      *string       `json:"name"`
	Pin       *string       `json:"pin"`
	CreatedAt time.Time     `json:"created_at"`
	Shift     ShiftResponse `json:"shift"`
}

type CreateRequest struct {
	Name  *string `json:"name" form:"name"`
	Pin   *string `json:"pin" form:"pin"`
	Shift *int    `json:"shift" form:"shift"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:employees"`

	ID        int       `json:"id" bun:"-"`
	Name      *string   `json:"name" bun:"name"`
	Pin       *string   `json:"pin" bun:"pin"`
	ShiftID   *int      `json:"shift" bun:"shift_id"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID    int     `json:"id" form:"id"`
	Name  *string `json:"name" form:"name"`
	Pin   *string `json:"pin" form:"pin"`
	Shift *int    `json:"shift" form:"shift"`
}

type ExportRow struct {
	ID        int
	Name      string
	Pin       string
	ShiftName string
}
