package attendance

import (
	"net/http"
	"reflect"
	"regexp"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/repository/postgres/attendance"

	"github.com/pkg/errors"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

// Attendance

// Register resolves a kiosk pin into the confirmation payload. The pin
// format is checked before touching storage so mistyped pins never
// reach the database.
func (uc Controller) Register(c *web.Context) error {
	pin, ok := c.GetQueryFunc(reflect.String, "pin").(*string)
	if !ok || pin == nil {
		return c.RespondError(web.NewRequestError(errors.New("pin is required"), http.StatusBadRequest))
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	if !pinPattern.MatchString(*pin) {
		return c.RespondError(web.NewRequestError(errors.New("pin must be exactly 4 digits"), http.StatusBadRequest))
	}

	response, err := uc.attendance.Register(c.Ctx, *pin)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// GetRangeList returns the raw attendance pairs between start and end,
// optionally for one employee. The repository validates the range.
func (uc Controller) GetRangeList(c *web.Context) error {
	var filter attendance.Filter

	if start, ok := c.GetQueryFunc(reflect.String, "start").(*string); ok {
		filter.Start = start
	}
	if end, ok := c.GetQueryFunc(reflect.String, "end").(*string); ok {
		filter.End = end
	}
	if employee, ok := c.GetQueryFunc(reflect.Int, "employee").(*int); ok {
		filter.Employee = employee
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.GetRange(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

// Punch records a clock event, closing the open pair for today or
// opening a new one.
func (uc Controller) Punch(c *web.Context) error {
	var request attendance.PunchRequest

	if err := c.BindFunc(&request, "Pin"); err != nil {
		return c.RespondError(err)
	}

	if !pinPattern.MatchString(*request.Pin) {
		return c.RespondError(web.NewRequestError(errors.New("pin must be exactly 4 digits"), http.StatusBadRequest))
	}

	response, err := uc.attendance.Punch(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
