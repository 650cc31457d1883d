// Package auth knows how to validate the JWT tokens issued at sign-in
// and which role a set of claims carries.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Application roles. The policy table in internal/policy decides what
// each role may do per resource.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleKiosk   = "KIOSK"
	RoleViewer  = "VIEWER"
)

type ctxKey int

// Key is used to store and retrieve Claims from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
}

// Authorized returns true if the claims carry one of the expected roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth is used to validate tokens. Revoked tokens are tracked in redis so
// a signed-out session stays signed out until the token expires.
type Auth struct {
	key     string
	redisDB *redis.Client
}

func New(key string, redisDB *redis.Client) *Auth {
	return &Auth{key: key, redisDB: redisDB}
}

// ValidateToken recreates the Claims that were used to generate a token.
// It fails if the token was not signed by us, expired or was revoked.
func (a *Auth) ValidateToken(ctx context.Context, tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.key), nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	revoked, err := a.redisDB.Exists(ctx, revokedKey(tokenStr)).Result()
	if err != nil {
		return Claims{}, errors.Wrap(err, "checking revoked token")
	}
	if revoked > 0 {
		return Claims{}, errors.New("token is revoked")
	}

	return claims, nil
}

// RevokeToken marks the token as revoked until it would have expired
// anyway.
func (a *Auth) RevokeToken(ctx context.Context, tokenStr string, expiresAt int64) error {
	ttl := time.Until(time.Unix(expiresAt, 0))
	if ttl <= 0 {
		return nil
	}

	if err := a.redisDB.Set(ctx, revokedKey(tokenStr), 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "storing revoked token")
	}

	return nil
}

func revokedKey(tokenStr string) string {
	return "auth:revoked:" + tokenStr
}
