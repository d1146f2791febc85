package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/specialists-api/internal/core/domain"
	"github.com/clinicdesk/specialists-api/internal/core/ports"
)

// accessTokenCookie is the fallback transport for clients that cannot set
// headers (browser sessions).
const accessTokenCookie = "access_token"

// credentialsMsg is deliberately identical for every failure mode: callers
// cannot distinguish a malformed token from an expired one or from a token
// whose subject no longer exists.
const credentialsMsg = "could not validate credentials"

// Auth validates the JWT, confirms its subject still exists, and injects the
// user into the request context. One user lookup is performed per request;
// identity is never cached.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsMsg)
			}

			claims := &domain.AccessClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsMsg)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, credentialsMsg)
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}

// extractToken pulls the raw token string from the request. A well-formed
// Authorization bearer header takes precedence over the access_token cookie;
// a header that is present but not bearer-shaped falls through to the cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
