package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garagely/garage-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp["message"]
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict, "User already exists with this email"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"car missing", domain.ErrCarNotFound, http.StatusNotFound, "Car not found"},
		{"owner missing", domain.ErrOwnerNotFound, http.StatusUnprocessableEntity, "Owner user does not exist"},
		{"user has cars", domain.ErrUserHasCars, http.StatusConflict, "User still has registered cars"},
		{"rate limited", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
		{"bad email", domain.ErrInvalidEmail, http.StatusBadRequest, "invalid email address"},
		{"short password", domain.ErrPasswordTooShort, http.StatusBadRequest, "password must be at least 6 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.code {
				t.Errorf("code: want %d, got %d", tc.code, code)
			}
			if msg != tc.message {
				t.Errorf("message: want %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "Server Error" {
		t.Fatalf("internal detail must not leak, got %q", msg)
	}
}

func TestErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized"))
	if code != http.StatusUnauthorized || msg != "Unauthorized" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}
