package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/pkg/timefmt"
	"timeclock/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

// workDayFormat matches the date-only strings stored in work_day.
const workDayFormat = "2006-01-02"

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// companyNow returns the wall clock in the company timezone. A missing
// or invalid timezone falls back to the server local time.
func (r Repository) companyNow(ctx context.Context) time.Time {
	var tz *string
	_ = r.QueryRowContext(ctx,
		`SELECT timezone FROM company_info WHERE deleted_at IS NULL LIMIT 1`).Scan(&tz)

	if tz != nil {
		if loc, err := time.LoadLocation(*tz); err == nil {
			return time.Now().In(loc)
		}
	}

	return time.Now()
}

func (r Repository) findByPin(ctx context.Context, pin string) (RegisterEmployee, error) {
	var employee RegisterEmployee
	var shiftID *int

	err := r.QueryRowContext(ctx, `
		SELECT id, name, shift_id
		FROM employees
		WHERE deleted_at IS NULL AND pin = ?
	`, pin).Scan(&employee.ID, &employee.Name, &shiftID)
	if errors.Is(err, sql.ErrNoRows) {
		return RegisterEmployee{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return RegisterEmployee{}, web.NewRequestError(errors.Wrap(err, "selecting employee by pin"), http.StatusBadRequest)
	}

	if shiftID != nil {
		var shift EmployeeShift
		err = r.QueryRowContext(ctx, `
			SELECT id, name, tolerance
			FROM shifts
			WHERE deleted_at IS NULL AND id = ?
		`, *shiftID).Scan(&shift.ID, &shift.Name, &shift.Tolerance)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return RegisterEmployee{}, web.NewRequestError(errors.Wrap(err, "selecting employee shift"), http.StatusBadRequest)
		}
		if err == nil {
			employee.Shift = &shift
		}
	}

	return employee, nil
}

// Register resolves a pin into the confirmation payload the kiosk
// shows: the employee, today's schedule windows and punches, and the
// current minute of the day. An unknown pin is a 404.
func (r Repository) Register(ctx context.Context, pin string) (RegisterResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return RegisterResponse{}, err
	}

	employee, err := r.findByPin(ctx, pin)
	if err != nil {
		return RegisterResponse{}, err
	}

	now := r.companyNow(ctx)
	weekDay := int(now.Weekday())

	weekDayName, err := timefmt.WeekdayName(weekDay)
	if err != nil {
		return RegisterResponse{}, web.NewRequestError(errors.Wrap(err, "resolving weekday"), http.StatusInternalServerError)
	}

	response := RegisterResponse{
		Employee:    employee,
		Now:         now.Hour()*60 + now.Minute(),
		WeekDay:     weekDay,
		WeekDayName: weekDayName,
	}

	if employee.Shift != nil {
		rows, err := r.QueryContext(ctx, `
			SELECT ss.id, ss.from_minutes, ss.to_minutes
			FROM shift_schedules ss
			JOIN shift_days sd ON sd.id = ss.day_id
			WHERE ss.deleted_at IS NULL
				AND sd.deleted_at IS NULL
				AND sd.shift_id = ?
				AND sd.week_day = ?
			ORDER BY ss.from_minutes asc
		`, employee.Shift.ID, weekDay)
		if err != nil {
			return RegisterResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today schedules"), http.StatusBadRequest)
		}

		for rows.Next() {
			var window ScheduleWindow
			if err = rows.Scan(&window.ID, &window.From, &window.To); err != nil {
				rows.Close()
				return RegisterResponse{}, web.NewRequestError(errors.Wrap(err, "scanning schedule window"), http.StatusBadRequest)
			}
			response.Schedules = append(response.Schedules, window)
		}
		rows.Close()
	}

	workDay := now.Format(workDayFormat)

	rows, err := r.QueryContext(ctx, `
		SELECT id, in_flag, in_at, out_flag, out_at, work_day
		FROM attendances
		WHERE deleted_at IS NULL AND employee_id = ? AND work_day = ?
		ORDER BY in_at asc
	`, employee.ID, workDay)
	if err != nil {
		return RegisterResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today attendances"), http.StatusBadRequest)
	}
	defer rows.Close()

	for rows.Next() {
		var attendance TodayAttendance
		if err = rows.Scan(
			&attendance.ID,
			&attendance.In,
			&attendance.InAt,
			&attendance.Out,
			&attendance.OutAt,
			&attendance.Day); err != nil {
			return RegisterResponse{}, web.NewRequestError(errors.Wrap(err, "scanning today attendance"), http.StatusBadRequest)
		}
		response.Attendances = append(response.Attendances, attendance)
	}

	return response, nil
}

// Punch registers a clock event for the pin. An open pair for today is
// closed with the current minute, otherwise a new pair is opened.
func (r Repository) Punch(ctx context.Context, request PunchRequest) (PunchResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleKiosk)
	if err != nil {
		return PunchResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Pin"); err != nil {
		return PunchResponse{}, err
	}

	employee, err := r.findByPin(ctx, *request.Pin)
	if err != nil {
		return PunchResponse{}, err
	}

	now := r.companyNow(ctx)
	minute := now.Hour()*60 + now.Minute()
	workDay := now.Format(workDayFormat)

	var open PunchResponse
	err = r.QueryRowContext(ctx, `
		SELECT id, employee_id, in_flag, in_at, out_flag, out_at, work_day
		FROM attendances
		WHERE deleted_at IS NULL
			AND employee_id = ?
			AND work_day = ?
			AND out_flag = false
		ORDER BY in_at desc
		LIMIT 1
	`, employee.ID, workDay).Scan(
		&open.ID,
		&open.EmployeeID,
		&open.In,
		&open.InAt,
		&open.Out,
		&open.OutAt,
		&open.WorkDay,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return PunchResponse{}, web.NewRequestError(errors.Wrap(err, "selecting open attendance"), http.StatusBadRequest)
	}

	if err == nil {
		q := r.NewUpdate().Table("attendances").Where("deleted_at IS NULL AND id = ?", open.ID)

		q.Set("out_flag = ?", true)
		q.Set("out_at = ?", minute)
		q.Set("updated_at = ?", time.Now())
		q.Set("updated_by = ?", claims.UserId)

		if _, err = q.Exec(ctx); err != nil {
			return PunchResponse{}, web.NewRequestError(errors.Wrap(err, "closing attendance"), http.StatusBadRequest)
		}

		open.Out = true
		open.OutAt = &minute

		return open, nil
	}

	var response PunchResponse

	response.EmployeeID = employee.ID
	response.In = true
	response.InAt = &minute
	response.WorkDay = workDay
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return PunchResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusBadRequest)
	}

	return response, nil
}

// GetRange returns attendance pairs inside [start, end], optionally for
// a single employee, ordered the way the report consumes them.
func (r Repository) GetRange(ctx context.Context, filter Filter) ([]RangeRow, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Start == nil || filter.End == nil {
		return nil, web.NewRequestError(errors.New("start and end are required"), http.StatusBadRequest)
	}

	start, err := time.Parse(workDayFormat, *filter.Start)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "parsing start"), http.StatusBadRequest)
	}
	end, err := time.Parse(workDayFormat, *filter.End)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "parsing end"), http.StatusBadRequest)
	}
	if end.Before(start) {
		return nil, web.NewRequestError(errors.New("end is before start"), http.StatusBadRequest)
	}

	whereQuery := `
		WHERE
			a.deleted_at IS NULL
			AND a.work_day >= ? AND a.work_day <= ?
	`
	args := []interface{}{*filter.Start, *filter.End}

	if filter.Employee != nil {
		whereQuery += " AND a.employee_id = ?"
		args = append(args, *filter.Employee)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			e.name,
			a.in_at,
			a.out_at,
			a.work_day
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY e.name asc, a.work_day asc, a.in_at asc
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance range"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []RangeRow
	for rows.Next() {
		var row RangeRow
		if err = rows.Scan(
			&row.ID,
			&row.EmployeeID,
			&row.EmployeeName,
			&row.InAt,
			&row.OutAt,
			&row.WorkDay); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance row"), http.StatusBadRequest)
		}
		list = append(list, row)
	}

	return list, nil
}
