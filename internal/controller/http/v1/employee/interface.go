package employee

import (
	"context"

	"timeclock/backend/internal/repository/postgres/employee"
)

type Employee interface {
	GetList(ctx context.Context, filter employee.Filter) ([]employee.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (employee.GetDetailByIdResponse, error)
	Create(ctx context.Context, request employee.CreateRequest) (employee.CreateResponse, error)
	UpdateAll(ctx context.Context, request employee.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	GetExportList(ctx context.Context) ([]employee.ExportRow, error)
}
