package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"billetera-ia/internal/api/handlers"
	"billetera-ia/internal/dto"
	"billetera-ia/internal/service"
	"billetera-ia/pkg/auth"
	"billetera-ia/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubAuth struct{}

func (stubAuth) Register(context.Context, *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{}, nil
}

func (stubAuth) Login(context.Context, *dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, service.ErrInvalidCredentials
}

func (stubAuth) RefreshToken(context.Context, string) (*dto.AuthResponse, error) {
	return nil, service.ErrInvalidCredentials
}

type stubTags struct{}

func (stubTags) Create(context.Context, uuid.UUID, *dto.CreateTagRequest) (*dto.TagResponse, error) {
	return &dto.TagResponse{}, nil
}

func (stubTags) List(context.Context, uuid.UUID) ([]dto.TagResponse, error) {
	return []dto.TagResponse{}, nil
}

func (stubTags) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubMovements struct{}

func (stubMovements) Create(context.Context, uuid.UUID, *dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	return &dto.MovementResponse{}, nil
}

func (stubMovements) List(context.Context, uuid.UUID, int) (*dto.MovementPage, error) {
	return &dto.MovementPage{}, nil
}

func (stubMovements) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubSuggestions struct{}

func (stubSuggestions) SuggestMovement(context.Context, uuid.UUID, string) (*dto.MovementSuggestion, error) {
	return &dto.MovementSuggestion{Amount: "1", Type: "expense", SuggestedTag: "Otros"}, nil
}

func (stubSuggestions) SuggestTag(context.Context, uuid.UUID, string, float64) (string, error) {
	return "Otros", nil
}

func setup(loginPerMinute, suggestPerMinute int) (*auth.JWTManager, func(req *http.Request) (*http.Response, error)) {
	logger := zap.NewNop()
	jwtManager := auth.NewJWTManager("router-secret", time.Hour, 24*time.Hour)
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{
			LoginPerMinute:   loginPerMinute,
			SuggestPerMinute: suggestPerMinute,
		},
	}

	app := SetupRouter(Handlers{
		Auth:       handlers.NewAuthHandler(stubAuth{}, logger),
		Movement:   handlers.NewMovementHandler(stubMovements{}, logger),
		Tag:        handlers.NewTagHandler(stubTags{}, logger),
		Suggestion: handlers.NewSuggestionHandler(stubSuggestions{}, logger),
	}, jwtManager, cfg, logger)

	return jwtManager, func(req *http.Request) (*http.Response, error) {
		return app.Test(req, -1)
	}
}

func TestHealth(t *testing.T) {
	_, do := setup(5, 10)

	resp, err := do(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, do := setup(5, 10)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/movements"},
		{http.MethodPost, "/api/v1/movements"},
		{http.MethodPost, "/api/v1/movements/suggest"},
		{http.MethodGet, "/api/v1/tags"},
		{http.MethodPost, "/api/v1/tags/suggest"},
		{http.MethodDelete, "/api/v1/tags/" + uuid.NewString()},
	}

	for _, r := range routes {
		resp, err := do(httptest.NewRequest(r.method, r.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", r.method, r.path, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", r.method, r.path, resp.StatusCode)
		}
	}
}

func TestSuggestWithToken(t *testing.T) {
	jwtManager, do := setup(5, 10)
	token, err := jwtManager.GenerateToken(uuid.NewString(), "Ana", "3001234567")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movements/suggest", strings.NewReader(`{"transcription":"pagué 20000 por el bus"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLoginRateLimit(t *testing.T) {
	_, do := setup(2, 10)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"phone":"3001234567","password":"secreta123"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		statuses = append(statuses, resp.StatusCode)
	}

	if statuses[0] != http.StatusUnauthorized || statuses[1] != http.StatusUnauthorized {
		t.Errorf("first attempts should reach the handler, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third attempt status = %d, want 429", statuses[2])
	}
}
