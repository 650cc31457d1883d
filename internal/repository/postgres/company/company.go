package company

import (
	"context"
	"database/sql"
	"net/http"
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

// GetInfo returns the single company settings row.
func (r Repository) GetInfo(ctx context.Context) (GetInfoResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetInfoResponse{}, err
	}

	var detail GetInfoResponse

	err = r.QueryRowContext(ctx, `
		SELECT id, name, timezone, tolerance_minutes
		FROM company_info
		WHERE deleted_at IS NULL
		LIMIT 1
	`).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Timezone,
		&detail.ToleranceMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetInfoResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetInfoResponse{}, web.NewRequestError(errors.Wrap(err, "selecting company info"), http.StatusBadRequest)
	}

	return detail, nil
}

func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "Name", "Timezone", "ToleranceMinutes"); err != nil {
		return err
	}

	if _, err := time.LoadLocation(*request.Timezone); err != nil {
		return web.NewRequestError(errors.Wrapf(err, "unknown timezone %q", *request.Timezone), http.StatusBadRequest)
	}

	if *request.ToleranceMinutes < 0 || *request.ToleranceMinutes >= timefmt.MinutesPerDay {
		return web.NewRequestError(errors.New("tolerance out of range"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("company_info").Where("deleted_at IS NULL")

	q.Set("name = ?", request.Name)
	q.Set("timezone = ?", request.Timezone)
	q.Set("tolerance_minutes = ?", request.ToleranceMinutes)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating company info"), http.StatusBadRequest)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}
