package shift

import (
	"context"

	"timeclock/backend/internal/repository/postgres/shift"
)

type Shift interface {
	GetList(ctx context.Context, filter shift.Filter) ([]shift.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (shift.GetDetailByIdResponse, error)
	Create(ctx context.Context, request shift.CreateRequest) (shift.CreateResponse, error)
	UpdateAll(ctx context.Context, request shift.UpdateRequest) error
	Delete(ctx context.Context, id int) error

	CreateDay(ctx context.Context, request shift.CreateDayRequest) (shift.CreateDayResponse, error)
	DeleteDay(ctx context.Context, id int) error

	CreateSchedule(ctx context.Context, request shift.CreateScheduleRequest) (shift.CreateScheduleResponse, error)
	UpdateSchedule(ctx context.Context, request shift.UpdateScheduleRequest) error
	DeleteSchedule(ctx context.Context, id int) error
}
