package attendance

import (
	"context"

	"timeclock/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	Register(ctx context.Context, pin string) (attendance.RegisterResponse, error)
	Punch(ctx context.Context, request attendance.PunchRequest) (attendance.PunchResponse, error)
	GetRange(ctx context.Context, filter attendance.Filter) ([]attendance.RangeRow, error)
}
