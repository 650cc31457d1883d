package middleware

import (
	"errors"
	"log"
	"net/http"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/policy"
)

// Authorize gates a route on the policy table. It expects Authenticate
// to have stored claims in the context already.
func Authorize(resource, action string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
			if !ok {
				return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
			}

			decision := policy.Evaluate(claims.Role, resource, action)
			if !decision.Allowed {
				log.Println("authorize:", decision)
				return c.RespondError(web.NewRequestError(errors.New("access denied"), http.StatusForbidden))
			}

			return handler(c)
		}

		return h
	}

	return m
}
