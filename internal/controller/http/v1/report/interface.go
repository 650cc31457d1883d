package report

import (
	"context"

	"timeclock/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	GetRange(ctx context.Context, filter attendance.Filter) ([]attendance.RangeRow, error)
}
