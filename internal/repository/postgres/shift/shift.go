package shift

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/pkg/timefmt"
	"timeclock/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				deleted_at IS NULL
			`
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
				name ILIKE '%s'`, "%"+search+"%")
	}
	orderQuery := "ORDER BY name asc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			id,
			name,
			tolerance
		FROM shifts

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting shifts"), http.StatusBadRequest)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.Tolerance); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning shift list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(id)
		FROM  shifts
			%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning shift count"), http.StatusBadRequest)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, `
		SELECT
			id,
			name,
			tolerance
		FROM shifts
		WHERE deleted_at IS NULL AND id = ?
	`, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Tolerance,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting shift detail"), http.StatusBadRequest)
	}

	days, err := r.loadDays(ctx, detail.ID)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}
	detail.Days = days

	return detail, nil
}

func (r Repository) loadDays(ctx context.Context, shiftID int) ([]DayResponse, error) {
	dayRows, err := r.QueryContext(ctx, `
		SELECT id, week_day
		FROM shift_days
		WHERE deleted_at IS NULL AND shift_id = ?
		ORDER BY week_day asc
	`, shiftID)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting shift days"), http.StatusBadRequest)
	}
	defer dayRows.Close()

	var days []DayResponse
	for dayRows.Next() {
		var day DayResponse
		if err = dayRows.Scan(&day.ID, &day.WeekDay); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning shift day"), http.StatusBadRequest)
		}
		days = append(days, day)
	}
	if err = dayRows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading shift days"), http.StatusBadRequest)
	}

	for i := range days {
		scheduleRows, err := r.QueryContext(ctx, `
			SELECT id, from_minutes, to_minutes
			FROM shift_schedules
			WHERE deleted_at IS NULL AND day_id = ?
			ORDER BY from_minutes asc
		`, days[i].ID)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "selecting day schedules"), http.StatusBadRequest)
		}

		for scheduleRows.Next() {
			var schedule ScheduleResponse
			if err = scheduleRows.Scan(&schedule.ID, &schedule.From, &schedule.To); err != nil {
				scheduleRows.Close()
				return nil, web.NewRequestError(errors.Wrap(err, "scanning day schedule"), http.StatusBadRequest)
			}
			days[i].Schedules = append(days[i].Schedules, schedule)
		}
		scheduleRows.Close()
	}

	return days, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name"); err != nil {
		return CreateResponse{}, err
	}

	// New shifts start with the company default tolerance.
	tolerance := 0
	if err := r.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT tolerance_minutes FROM company_info WHERE deleted_at IS NULL LIMIT 1), 0)`).Scan(&tolerance); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "reading default tolerance"), http.StatusInternalServerError)
	}

	var response CreateResponse

	response.Name = request.Name
	response.Tolerance = tolerance
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating shift"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Name", "Tolerance"); err != nil {
		return err
	}

	if *request.Tolerance < 0 || *request.Tolerance >= timefmt.MinutesPerDay {
		return web.NewRequestError(errors.New("tolerance out of range"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("shifts").Where("deleted_at IS NULL AND id = ?", request.ID)

	q.Set("name = ?", request.Name)
	q.Set("tolerance = ?", request.Tolerance)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating shift"), http.StatusBadRequest)
	}

	return nil
}

// Delete soft deletes the shift and cascades to its days and schedules.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return err
	}

	now := time.Now()

	scheduleQ := r.NewUpdate().Table("shift_schedules").
		Where("deleted_at IS NULL AND day_id IN (SELECT id FROM shift_days WHERE shift_id = ?)", id)
	scheduleQ.Set("deleted_at = ?", now)
	scheduleQ.Set("deleted_by = ?", claims.UserId)
	if _, err = scheduleQ.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting shift schedules"), http.StatusBadRequest)
	}

	dayQ := r.NewUpdate().Table("shift_days").Where("deleted_at IS NULL AND shift_id = ?", id)
	dayQ.Set("deleted_at = ?", now)
	dayQ.Set("deleted_by = ?", claims.UserId)
	if _, err = dayQ.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting shift days"), http.StatusBadRequest)
	}

	return r.DeleteRow(ctx, "shifts", id)
}

func (r Repository) CreateDay(ctx context.Context, request CreateDayRequest) (CreateDayResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return CreateDayResponse{}, err
	}

	if err := r.ValidateStruct(&request, "WeekDay", "Shift"); err != nil {
		return CreateDayResponse{}, err
	}

	if *request.WeekDay < 0 || *request.WeekDay > 6 {
		return CreateDayResponse{}, web.NewRequestError(errors.New("week_day must be between 0 and 6"), http.StatusBadRequest)
	}

	// One entry per weekday within a shift.
	dayUsed := true
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN
			(SELECT id FROM shift_days WHERE shift_id = ? AND week_day = ? AND deleted_at IS NULL) IS NOT NULL
			THEN true ELSE false END`, *request.Shift, *request.WeekDay).Scan(&dayUsed); err != nil {
		return CreateDayResponse{}, web.NewRequestError(errors.Wrap(err, "week_day check"), http.StatusInternalServerError)
	}
	if dayUsed {
		return CreateDayResponse{}, web.NewRequestError(errors.New("week_day already exists on this shift"), http.StatusBadRequest)
	}

	var response CreateDayResponse

	response.WeekDay = request.WeekDay
	response.ShiftID = request.Shift
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateDayResponse{}, web.NewRequestError(errors.Wrap(err, "creating shift day"), http.StatusBadRequest)
	}

	return response, nil
}

// DeleteDay soft deletes a day and cascades to its schedules.
func (r Repository) DeleteDay(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return err
	}

	scheduleQ := r.NewUpdate().Table("shift_schedules").Where("deleted_at IS NULL AND day_id = ?", id)
	scheduleQ.Set("deleted_at = ?", time.Now())
	scheduleQ.Set("deleted_by = ?", claims.UserId)
	if _, err = scheduleQ.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting day schedules"), http.StatusBadRequest)
	}

	return r.DeleteRow(ctx, "shift_days", id)
}

// validateWindow is the schedule window policy: both offsets inside a
// day and distinct. from > to means an overnight window spanning
// midnight and is allowed.
func validateWindow(from, to int) error {
	if from < 0 || from >= timefmt.MinutesPerDay {
		return web.NewRequestError(errors.Errorf("from %d out of range", from), http.StatusBadRequest)
	}
	if to < 0 || to >= timefmt.MinutesPerDay {
		return web.NewRequestError(errors.Errorf("to %d out of range", to), http.StatusBadRequest)
	}
	if from == to {
		return web.NewRequestError(errors.New("schedule window is empty"), http.StatusBadRequest)
	}
	return nil
}

// CreateSchedule adds a window to a day. The client creates rows with a
// placeholder 0..0 window and edits them in place, so an all-zero
// request skips the window policy.
func (r Repository) CreateSchedule(ctx context.Context, request CreateScheduleRequest) (CreateScheduleResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return CreateScheduleResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Day"); err != nil {
		return CreateScheduleResponse{}, err
	}

	from, to := 0, 0
	if request.From != nil {
		from = *request.From
	}
	if request.To != nil {
		to = *request.To
	}

	if from != 0 || to != 0 {
		if err := validateWindow(from, to); err != nil {
			return CreateScheduleResponse{}, err
		}
	}

	dayExists := false
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN
			(SELECT id FROM shift_days WHERE id = ? AND deleted_at IS NULL) IS NOT NULL
			THEN true ELSE false END`, *request.Day).Scan(&dayExists); err != nil {
		return CreateScheduleResponse{}, web.NewRequestError(errors.Wrap(err, "day check"), http.StatusInternalServerError)
	}
	if !dayExists {
		return CreateScheduleResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	var response CreateScheduleResponse

	response.From = from
	response.To = to
	response.DayID = request.Day
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateScheduleResponse{}, web.NewRequestError(errors.Wrap(err, "creating schedule"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateSchedule(ctx context.Context, request UpdateScheduleRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "From", "To"); err != nil {
		return err
	}

	if err := validateWindow(*request.From, *request.To); err != nil {
		return err
	}

	q := r.NewUpdate().Table("shift_schedules").Where("deleted_at IS NULL AND id = ?", request.ID)

	q.Set("from_minutes = ?", request.From)
	q.Set("to_minutes = ?", request.To)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating schedule"), http.StatusBadRequest)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) DeleteSchedule(ctx context.Context, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return err
	}

	return r.DeleteRow(ctx, "shift_schedules", id)
}
