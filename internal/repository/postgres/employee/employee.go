package employee

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

// pinPattern is the kiosk credential format, exactly four digits.
var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

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
				e.deleted_at IS NULL
			`
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
				e.name ILIKE '%s'`, "%"+search+"%")
	}
	orderQuery := "ORDER BY e.name asc"

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
			e.id,
			e.name,
			e.shift_id,
			s.name
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusBadRequest)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.ShiftID,
			&detail.ShiftName); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(e.id)
		FROM  employees e
			%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee count"), http.StatusBadRequest)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var detail GetDetailByIdResponse
	var shiftID *int

	err = r.QueryRowContext(ctx, `
		SELECT
			e.id,
			e.name,
			e.pin,
			e.created_at,
			e.shift_id
		FROM employees e
		WHERE e.deleted_at IS NULL AND e.id = ?
	`, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Pin,
		&detail.CreatedAt,
		&shiftID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee detail"), http.StatusBadRequest)
	}

	if shiftID != nil {
		shift, err := r.loadShift(ctx, *shiftID)
		if err != nil {
			return GetDetailByIdResponse{}, err
		}
		detail.Shift = shift
	}

	return detail, nil
}

// loadShift loads a shift with its days and schedules, days ordered by
// weekday and windows by start offset.
func (r Repository) loadShift(ctx context.Context, shiftID int) (ShiftResponse, error) {
	var shift ShiftResponse

	err := r.QueryRowContext(ctx, `
		SELECT id, name, tolerance
		FROM shifts
		WHERE deleted_at IS NULL AND id = ?
	`, shiftID).Scan(&shift.ID, &shift.Name, &shift.Tolerance)
	if errors.Is(err, sql.ErrNoRows) {
		return ShiftResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return ShiftResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee shift"), http.StatusBadRequest)
	}

	dayRows, err := r.QueryContext(ctx, `
		SELECT id, week_day
		FROM shift_days
		WHERE deleted_at IS NULL AND shift_id = ?
		ORDER BY week_day asc
	`, shiftID)
	if err != nil {
		return ShiftResponse{}, web.NewRequestError(errors.Wrap(err, "selecting shift days"), http.StatusBadRequest)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var day DayResponse
		if err = dayRows.Scan(&day.ID, &day.WeekDay); err != nil {
			return ShiftResponse{}, web.NewRequestError(errors.Wrap(err, "scanning shift day"), http.StatusBadRequest)
		}
		shift.Days = append(shift.Days, day)
	}
	if err = dayRows.Err(); err != nil {
		return ShiftResponse{}, web.NewRequestError(errors.Wrap(err, "reading shift days"), http.StatusBadRequest)
	}

	for i := range shift.Days {
		scheduleRows, err := r.QueryContext(ctx, `
			SELECT id, from_minutes, to_minutes
			FROM shift_schedules
			WHERE deleted_at IS NULL AND day_id = ?
			ORDER BY from_minutes asc
		`, shift.Days[i].ID)
		if err != nil {
			return ShiftResponse{}, web.NewRequestError(errors.Wrap(err, "selecting day schedules"), http.StatusBadRequest)
		}

		for scheduleRows.Next() {
			var schedule ScheduleResponse
			if err = scheduleRows.Scan(&schedule.ID, &schedule.From, &schedule.To); err != nil {
				scheduleRows.Close()
				return ShiftResponse{}, web.NewRequestError(errors.Wrap(err, "scanning day schedule"), http.StatusBadRequest)
			}
			shift.Days[i].Schedules = append(shift.Days[i].Schedules, schedule)
		}
		scheduleRows.Close()
	}

	return shift, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Pin", "Shift"); err != nil {
		return CreateResponse{}, err
	}

	if !pinPattern.MatchString(*request.Pin) {
		return CreateResponse{}, web.NewRequestError(errors.New("pin must be exactly 4 digits"), http.StatusBadRequest)
	}

	pinUsed := true
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN
			(SELECT id FROM employees WHERE pin = ? AND deleted_at IS NULL) IS NOT NULL
			THEN true ELSE false END`, *request.Pin).Scan(&pinUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "pin check"), http.StatusInternalServerError)
	}
	if pinUsed {
		return CreateResponse{}, web.NewRequestError(errors.New("pin is used"), http.StatusBadRequest)
	}

	var response CreateResponse

	response.Name = request.Name
	response.Pin = request.Pin
	response.ShiftID = request.Shift
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating employee"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID", "Name", "Pin", "Shift"); err != nil {
		return err
	}

	if !pinPattern.MatchString(*request.Pin) {
		return web.NewRequestError(errors.New("pin must be exactly 4 digits"), http.StatusBadRequest)
	}

	pinUsed := true
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN
			(SELECT id FROM employees WHERE pin = ? AND deleted_at IS NULL AND id != ?) IS NOT NULL
			THEN true ELSE false END`, *request.Pin, request.ID).Scan(&pinUsed); err != nil {
		return web.NewRequestError(errors.Wrap(err, "pin check"), http.StatusInternalServerError)
	}
	if pinUsed {
		return web.NewRequestError(errors.New("pin is used"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", request.ID)

	q.Set("name = ?", request.Name)
	q.Set("pin = ?", request.Pin)
	q.Set("shift_id = ?", request.Shift)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "employees", id)
}

// GetExportList returns every employee with its shift name for the
// xlsx export.
func (r Repository) GetExportList(ctx context.Context) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager)
	if err != nil {
		return nil, err
	}

	rows, err := r.QueryContext(ctx, `
		SELECT
			e.id,
			e.name,
			e.pin,
			COALESCE(s.name, '')
		FROM employees e
		LEFT JOIN shifts s ON s.id = e.shift_id
		WHERE e.deleted_at IS NULL
		ORDER BY e.name asc
	`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employees for export"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []ExportRow
	for rows.Next() {
		var row ExportRow
		if err = rows.Scan(&row.ID, &row.Name, &row.Pin, &row.ShiftName); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning employee export row"), http.StatusBadRequest)
		}
		list = append(list, row)
	}

	return list, nil
}
