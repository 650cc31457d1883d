package shift

import (
	"net/http"
	"reflect"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/editstate"
	"timeclock/backend/internal/repository/postgres/shift"
)

type Controller struct {
	shift   Shift
	tracker *editstate.Tracker
}

func NewController(shift Shift, tracker *editstate.Tracker) *Controller {
	return &Controller{shift: shift, tracker: tracker}
}

// shift

func (uc Controller) GetList(c *web.Context) error {
	var filter shift.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.shift.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.shift.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request shift.CreateRequest

	if err := c.BindFunc(&request, "Name"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.shift.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateAll(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request shift.UpdateRequest

	if err := c.BindFunc(&request, "Name", "Tolerance"); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	err := uc.shift.UpdateAll(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.shift.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// days

func (uc Controller) CreateDay(c *web.Context) error {
	var request shift.CreateDayRequest

	if err := c.BindFunc(&request, "WeekDay", "Shift"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.shift.CreateDay(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) DeleteDay(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.shift.DeleteDay(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// schedules

func (uc Controller) CreateSchedule(c *web.Context) error {
	var request shift.CreateScheduleRequest

	if err := c.BindFunc(&request, "Day"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.shift.CreateSchedule(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// UpdateSchedule persists a window edit. The tracker walks the row
// through touched and saving so concurrent sessions see the save in
// flight, and a failed save leaves the row touched with the error
// surfaced to the caller.
func (uc Controller) UpdateSchedule(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request shift.UpdateScheduleRequest

	if err := c.BindFunc(&request, "From", "To"); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	if _, err := uc.tracker.Apply(c.Ctx, id, editstate.Edit); err != nil {
		return c.RespondError(err)
	}
	if _, err := uc.tracker.Apply(c.Ctx, id, editstate.Submit); err != nil {
		return c.RespondError(err)
	}

	if err := uc.shift.UpdateSchedule(c.Ctx, request); err != nil {
		if _, trackErr := uc.tracker.Apply(c.Ctx, id, editstate.SaveFail); trackErr != nil {
			return c.RespondError(trackErr)
		}
		return c.RespondError(err)
	}

	status, err := uc.tracker.Apply(c.Ctx, id, editstate.SaveOK)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"id":     id,
			"status": status.String(),
		},
		"status": true,
	}, http.StatusOK)
}

// GetScheduleStatus reports the edit status of one schedule row.
func (uc Controller) GetScheduleStatus(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	status, err := uc.tracker.Get(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"id":     id,
			"status": status.String(),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) DeleteSchedule(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.shift.DeleteSchedule(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	if err := uc.tracker.Clear(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
