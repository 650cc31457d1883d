package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/repository/postgres"
	"timeclock/backend/internal/repository/postgres/attendance"

	"github.com/gin-gonic/gin"
)

type fakeAttendance struct {
	openPair bool
}

func (f *fakeAttendance) Register(ctx context.Context, pin string) (attendance.RegisterResponse, error) {
	if pin != "1234" {
		return attendance.RegisterResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	name := "Ana"
	return attendance.RegisterResponse{
		Employee:    attendance.RegisterEmployee{ID: 7, Name: &name},
		Now:         600,
		WeekDay:     1,
		WeekDayName: "Monday",
	}, nil
}

func (f *fakeAttendance) Punch(ctx context.Context, request attendance.PunchRequest) (attendance.PunchResponse, error) {
	if *request.Pin != "1234" {
		return attendance.PunchResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	minute := 600
	response := attendance.PunchResponse{ID: 1, EmployeeID: 7, In: true, InAt: &minute, WorkDay: "2026-08-24"}
	if f.openPair {
		out := 1050
		response.Out = true
		response.OutAt = &out
	}
	f.openPair = !f.openPair

	return response, nil
}

func (f *fakeAttendance) GetRange(ctx context.Context, filter attendance.Filter) ([]attendance.RangeRow, error) {
	if filter.Start == nil || filter.End == nil {
		return nil, web.NewRequestError(postgres.ErrNotFound, http.StatusBadRequest)
	}
	in, out := 540, 1050
	return []attendance.RangeRow{
		{ID: 1, EmployeeID: 7, InAt: &in, OutAt: &out, WorkDay: *filter.Start},
	}, nil
}

func newTestApp(fake *fakeAttendance) *web.App {
	gin.SetMode(gin.TestMode)

	app := web.NewApp()
	controller := NewController(fake)
	app.Get("/api/v1/employees/attendances/register", controller.Register)
	app.Post("/api/v1/employees/attendances", controller.Punch)

	return app
}

func TestRegisterUnknownPin(t *testing.T) {
	app := newTestApp(&fakeAttendance{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/attendances/register?pin=9999", nil)
	app.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRegisterBadPinFormat(t *testing.T) {
	app := newTestApp(&fakeAttendance{})

	for _, pin := range []string{"", "12", "12345", "abcd"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/attendances/register?pin="+pin, nil)
		app.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("pin %q: status = %d, want %d", pin, w.Code, http.StatusBadRequest)
		}
	}
}

func TestRegisterKnownPin(t *testing.T) {
	app := newTestApp(&fakeAttendance{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/attendances/register?pin=1234", nil)
	app.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Data   attendance.RegisterResponse `json:"data"`
		Status bool                        `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Status || body.Data.Employee.ID != 7 || *body.Data.Employee.Name != "Ana" {
		t.Fatalf("body = %+v", body)
	}
	if body.Data.WeekDayName != "Monday" {
		t.Fatalf("week day name = %q, want Monday", body.Data.WeekDayName)
	}
}

func TestPunchToggles(t *testing.T) {
	app := newTestApp(&fakeAttendance{})

	punch := func() attendance.PunchResponse {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/attendances", strings.NewReader(`{"pin":"1234"}`))
		req.Header.Set("Content-Type", "application/json")
		app.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var body struct {
			Data attendance.PunchResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		return body.Data
	}

	first := punch()
	if !first.In || first.Out {
		t.Fatalf("first punch = %+v, want open pair", first)
	}

	second := punch()
	if !second.Out || second.OutAt == nil {
		t.Fatalf("second punch = %+v, want closed pair", second)
	}
}

func TestPunchRequiresPin(t *testing.T) {
	app := newTestApp(&fakeAttendance{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/attendances", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
