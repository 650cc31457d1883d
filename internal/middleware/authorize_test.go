package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/policy"

	"github.com/gin-gonic/gin"
)

// withClaims stands in for Authenticate and stores claims for the role
// in the request context.
func withClaims(role string) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(c *web.Context) error {
			c.Ctx = context.WithValue(c.Ctx, auth.Key, auth.Claims{Role: role})
			return handler(c)
		}
	}
}

func newAuthorizeApp(t *testing.T, called *bool, mw ...web.Middleware) *web.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := web.NewApp()
	app.Get("/guarded", func(c *web.Context) error {
		*called = true
		return c.Respond(map[string]interface{}{
			"data":   "ok!",
			"status": true,
		}, http.StatusOK)
	}, mw...)

	return app
}

func TestAuthorizeDeniedRoleNoHandlerCall(t *testing.T) {
	called := false
	app := newAuthorizeApp(t, &called,
		withClaims(auth.RoleViewer),
		Authorize(policy.ResourceUsers, policy.ActionReadAny),
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	app.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if called {
		t.Fatal("handler ran for a denied role")
	}

	var body struct {
		Error  string `json:"error"`
		Status bool   `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error != "access denied" || body.Status {
		t.Fatalf("body = %+v", body)
	}
}

func TestAuthorizeAllowedRole(t *testing.T) {
	called := false
	app := newAuthorizeApp(t, &called,
		withClaims(auth.RoleViewer),
		Authorize(policy.ResourceEmployees, policy.ActionReadAny),
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	app.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !called {
		t.Fatal("handler did not run for an allowed role")
	}
}

func TestAuthorizeMissingClaims(t *testing.T) {
	called := false
	app := newAuthorizeApp(t, &called,
		Authorize(policy.ResourceEmployees, policy.ActionReadAny),
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	app.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if called {
		t.Fatal("handler ran without claims")
	}
}
