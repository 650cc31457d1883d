package report

import (
	"net/http"
	"reflect"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/report"
	"timeclock/backend/internal/repository/postgres/attendance"
	"timeclock/backend/internal/service"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

// filterFromQuery validates the date range and optional employee from
// the query string.
func (uc Controller) filterFromQuery(c *web.Context) (attendance.Filter, error) {
	var filter attendance.Filter

	start, _ := c.GetQueryFunc(reflect.String, "start").(*string)
	end, _ := c.GetQueryFunc(reflect.String, "end").(*string)
	if employee, ok := c.GetQueryFunc(reflect.Int, "employee").(*int); ok {
		filter.Employee = employee
	}

	if err := c.ValidQuery(); err != nil {
		return attendance.Filter{}, err
	}

	if start == nil || end == nil {
		return attendance.Filter{}, web.NewRequestError(errors.New("start and end are required"), http.StatusBadRequest)
	}

	parsedStart, err := date.ParseDate(*start)
	if err != nil {
		return attendance.Filter{}, web.NewRequestError(errors.Wrap(err, "parsing start"), http.StatusBadRequest)
	}
	parsedEnd, err := date.ParseDate(*end)
	if err != nil {
		return attendance.Filter{}, web.NewRequestError(errors.Wrap(err, "parsing end"), http.StatusBadRequest)
	}
	if parsedEnd.Before(parsedStart.Time) {
		return attendance.Filter{}, web.NewRequestError(errors.New("end is before start"), http.StatusBadRequest)
	}

	startStr := parsedStart.String()
	endStr := parsedEnd.String()
	filter.Start = &startStr
	filter.End = &endStr

	return filter, nil
}

func (uc Controller) build(c *web.Context) ([]report.Group, error) {
	filter, err := uc.filterFromQuery(c)
	if err != nil {
		return nil, err
	}

	rows, err := uc.attendance.GetRange(c.Ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]report.Entry, 0, len(rows))
	for _, row := range rows {
		name := ""
		if row.EmployeeName != nil {
			name = *row.EmployeeName
		}
		entries = append(entries, report.Entry{
			EmployeeID:   row.EmployeeID,
			EmployeeName: name,
			WorkDay:      row.WorkDay,
			InAt:         row.InAt,
			OutAt:        row.OutAt,
		})
	}

	return report.Build(entries), nil
}

// GetReport returns the grouped attendance report for the range.
func (uc Controller) GetReport(c *web.Context) error {
	groups, err := uc.build(c)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": groups,
			"count":   len(groups),
		},
		"status": true,
	}, http.StatusOK)
}

// ExportExcel streams the report as an xlsx download.
func (uc Controller) ExportExcel(c *web.Context) error {
	groups, err := uc.build(c)
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.ReportToExcel(groups)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	return nil
}

// ExportPDF streams the report as a pdf download.
func (uc Controller) ExportPDF(c *web.Context) error {
	groups, err := uc.build(c)
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.ReportToPDF("Attendance report", groups)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
	return nil
}
