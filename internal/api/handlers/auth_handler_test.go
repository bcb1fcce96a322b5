package handlers

import (
	"context"
	"net/http"
	"testing"

	"billetera-ia/internal/dto"
	"billetera-ia/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type mockAuthService struct {
	RegisterFunc     func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc        func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.LoginFunc(ctx, req)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	return m.RefreshTokenFunc(ctx, refreshToken)
}

func authApp(svc AuthService) *fiber.App {
	h := NewAuthHandler(svc, zap.NewNop())
	app := fiber.New()
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/refresh", h.RefreshToken)
	return app
}

func TestLoginHandler(t *testing.T) {
	svc := &mockAuthService{
		LoginFunc: func(_ context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
			switch req.Phone {
			case "3000000000":
				return nil, service.ErrUserNotFound
			case "3111111111":
				if req.Password != "secreta123" {
					return nil, service.ErrInvalidCredentials
				}
			}
			return &dto.AuthResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         dto.UserResponse{ID: "u1", Name: "Ana", Phone: req.Phone},
			}, nil
		},
	}
	app := authApp(svc)

	tests := []struct {
		name            string
		body            string
		wantStatus      int
		wantStatusField string
	}{
		{"success", `{"phone":"3111111111","password":"secreta123"}`, http.StatusOK, "success"},
		{"unknown phone", `{"phone":"3000000000","password":"secreta123"}`, http.StatusNotFound, "error"},
		{"wrong password", `{"phone":"3111111111","password":"equivocada"}`, http.StatusUnauthorized, "error"},
		{"short password", `{"phone":"3111111111","password":"corta"}`, http.StatusUnprocessableEntity, "error"},
		{"phone too long", `{"phone":"3111111111111111","password":"secreta123"}`, http.StatusUnprocessableEntity, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/login", tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", status, tt.wantStatus, body)
			}
			if body["status"] != tt.wantStatusField {
				t.Errorf("status field = %v, want %q", body["status"], tt.wantStatusField)
			}
		})
	}

	_, body := doJSON(t, app, http.MethodPost, "/login", `{"phone":"3111111111","password":"secreta123"}`)
	data, _ := body["data"].(map[string]any)
	if data["token"] != "access" || data["refresh_token"] != "refresh" {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestRegisterHandler(t *testing.T) {
	svc := &mockAuthService{
		RegisterFunc: func(_ context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
			if req.Phone == "3001234567" {
				return nil, service.ErrUserExists
			}
			return &dto.AuthResponse{AccessToken: "a", User: dto.UserResponse{Name: req.Name, Phone: req.Phone}}, nil
		},
	}
	app := authApp(svc)

	if status, _ := doJSON(t, app, http.MethodPost, "/register", `{"name":"Ana","phone":"3119876543","password":"secreta123"}`); status != http.StatusCreated {
		t.Errorf("register: status = %d, want 201", status)
	}
	if status, _ := doJSON(t, app, http.MethodPost, "/register", `{"name":"Ana","phone":"3001234567","password":"secreta123"}`); status != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", status)
	}
	status, body := doJSON(t, app, http.MethodPost, "/register", `{"phone":"3001234567"}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("invalid: status = %d, want 422", status)
	}
	messages, _ := body["messages"].(map[string]any)
	for _, field := range []string{"name", "password"} {
		if _, ok := messages[field]; !ok {
			t.Errorf("expected %s in messages, got %v", field, messages)
		}
	}
}

func TestRefreshHandler(t *testing.T) {
	svc := &mockAuthService{
		RefreshTokenFunc: func(_ context.Context, token string) (*dto.AuthResponse, error) {
			if token != "good" {
				return nil, service.ErrInvalidCredentials
			}
			return &dto.AuthResponse{AccessToken: "new"}, nil
		},
	}
	app := authApp(svc)

	if status, body := doJSON(t, app, http.MethodPost, "/refresh", `{"refresh_token":"good"}`); status != http.StatusOK || body["access_token"] != "new" {
		t.Errorf("got %d %v", status, body)
	}
	if status, _ := doJSON(t, app, http.MethodPost, "/refresh", `{"refresh_token":"bad"}`); status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}
