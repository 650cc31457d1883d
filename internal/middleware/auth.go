package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
)

// TokenFromRequest pulls the token out of the authorization header or,
// for kiosk browsers that cannot set headers, the token cookie.
func TokenFromRequest(c *web.Context) (string, error) {
	authStr := c.Request.Header.Get("authorization")
	if authStr != "" {
		parts := strings.Split(authStr, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("expected authorization header format: Bearer <token>")
		}
		return parts[1], nil
	}

	cookie, err := c.Cookie("token")
	if err != nil || cookie == "" {
		return "", errors.New("missing authorization header or token cookie")
	}

	return cookie, nil
}

func Authenticate(a *auth.Auth, role ...string) web.Middleware {
	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(c *web.Context) error {
			token, err := TokenFromRequest(c)
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// Validate the token is signed by us and not revoked.
			claims, err := a.ValidateToken(c.Ctx, token)
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// check role inside token data
			if ok := claims.Authorized(role...); !ok && (len(role) > 0) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
			}

			// Add claims to the context so that they can be retrieved later.
			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			// Call the next handler.
			return handler(c)
		}

		return h
	}

	return m
}
