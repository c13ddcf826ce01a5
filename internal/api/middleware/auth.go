package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garagely/garage-api/internal/api/metrics"
	"github.com/garagely/garage-api/internal/core/token"
)

// UserIDKey is the echo context key the middleware stores the authenticated
// subject id under.
const UserIDKey = "user_id"

// Auth gates protected routes behind a bearer token. A missing or malformed
// Authorization header is treated exactly like no token. The caller always
// sees a uniform 401 "Unauthorized"; whether the token was expired or
// tampered with is recorded only in logs and metrics.
func Auth(verifier *token.Issuer, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			subject, err := verifier.Verify(raw, time.Now())
			if err != nil {
				result := "invalid"
				if errors.Is(err, token.ErrExpired) {
					result = "expired"
				}
				metrics.TokenVerificationsTotal.WithLabelValues(result).Inc()
				log.Debug().
					Str("reason", result).
					Str("path", c.Path()).
					Msg("rejected bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(UserIDKey, subject)
			return next(c)
		}
	}
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
