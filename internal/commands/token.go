package commands

import (
	"time"

	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/repository/postgres/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 3 * time.Hour
	refreshTokenTTL = 72 * time.Hour
)

// GenToken signs an access and refresh token pair for the user.
func GenToken(claims user.AuthClaims, key string) (string, string, error) {
	now := time.Now()

	accessClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(key))
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(key))
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

func parseToken(tokenStr, key string, ignoreExpiry bool) (auth.Claims, error) {
	var claims auth.Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(key), nil
	})
	if err != nil {
		ve, ok := err.(*jwt.ValidationError)
		expiredOnly := ok && ve.Errors == jwt.ValidationErrorExpired
		if !(ignoreExpiry && expiredOnly) {
			return auth.Claims{}, errors.Wrap(err, "parsing token")
		}
		return claims, nil
	}
	if !token.Valid {
		return auth.Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// VerifyTokens checks a token pair during refresh. The access token may
// already be expired, the refresh token may not.
func VerifyTokens(accessToken, refreshToken, key string) (auth.Claims, auth.Claims, error) {
	accessClaims, err := parseToken(accessToken, key, true)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, err
	}

	refreshClaims, err := parseToken(refreshToken, key, false)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, err
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}
