package shift

import (
	"context"
	"net/http"
	"testing"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/pkg/repository/postgresql"
)

func TestValidateWindow(t *testing.T) {
	cases := []struct {
		name string
		from int
		to   int
		ok   bool
	}{
		{"standard day window", 480, 1020, true},
		{"starts at midnight", 0, 510, true},
		{"ends last minute", 1020, 1439, true},
		{"overnight crossing midnight", 1320, 360, true},
		{"empty window", 540, 540, false},
		{"from below range", -1, 540, false},
		{"from above range", 1440, 100, false},
		{"to below range", 540, -1, false},
		{"to above range", 540, 1440, false},
	}

	for _, c := range cases {
		err := validateWindow(c.from, c.to)
		if c.ok && err != nil {
			t.Fatalf("%s: validateWindow(%d, %d): %v", c.name, c.from, c.to, err)
		}
		if !c.ok {
			if err == nil {
				t.Fatalf("%s: validateWindow(%d, %d): expected error", c.name, c.from, c.to)
			}
			webErr := web.GetRequestError(err)
			if webErr == nil || webErr.Status != http.StatusBadRequest {
				t.Fatalf("%s: error %v is not a 400 request error", c.name, err)
			}
		}
	}
}

// The claims check runs before any query, so a denied role must fail
// without the repository touching the database.
func TestDeleteScheduleRequiresAdminOrManager(t *testing.T) {
	r := NewRepository(&postgresql.Database{})

	ctx := context.WithValue(context.Background(), auth.Key, auth.Claims{Role: auth.RoleViewer})
	err := r.DeleteSchedule(ctx, 1)
	webErr := web.GetRequestError(err)
	if webErr == nil || webErr.Status != http.StatusForbidden {
		t.Fatalf("viewer delete: error %v, want 403 request error", err)
	}

	err = r.DeleteSchedule(context.Background(), 1)
	webErr = web.GetRequestError(err)
	if webErr == nil || webErr.Status != http.StatusUnauthorized {
		t.Fatalf("missing claims: error %v, want 401 request error", err)
	}
}
