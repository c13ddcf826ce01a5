package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/garagely/garage-api/internal/api/middleware"
	"github.com/garagely/garage-api/internal/core/domain"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, id, email string) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateEmail(ctx context.Context, id, email string) (*domain.User, error) {
	return s.updateFn(ctx, id, email)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// asAuthenticated marks the context the way the Auth middleware would.
func asAuthenticated(c echo.Context) {
	c.Set(middleware.UserIDKey, "caller_1")
}

func TestUserHandler_List_OmitsSecrets(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "u1", Email: "a@example.com", PasswordHash: "$2a$10$secret"},
				{ID: "u2", Email: "b@example.com", PasswordHash: "$2a$10$secret"},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/users", "")
	asAuthenticated(c)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
	for _, u := range resp {
		if _, leaked := u["password"]; leaked {
			t.Fatalf("password leaked in list response")
		}
	}
}

func TestUserHandler_List_RequiresIdentity(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			t.Fatalf("service must not be reached without identity")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/users", "")

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/users/u404", "")
	c.SetParamNames("id")
	c.SetParamValues("u404")
	asAuthenticated(c)

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Update_Success(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id, email string) (*domain.User, error) {
			if id != "u1" || email != "new@example.com" {
				t.Fatalf("unexpected args: %s %s", id, email)
			}
			return &domain.User{ID: id, Email: email}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/users/u1", `{"email":"new@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")
	asAuthenticated(c)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_InvalidEmail(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id, email string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/users/u1", `{"email":"not-an-email"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")
	asAuthenticated(c)

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	asAuthenticated(c)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "u1" {
		t.Fatalf("expected delete of u1, got %q", deleted)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "User deleted successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestUserHandler_Delete_RequiresIdentity(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error {
			t.Fatalf("store mutation must not occur without identity")
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/api/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
