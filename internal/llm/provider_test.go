package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "llama3-70b-8192" {
			t.Errorf("model = %q", req.Model)
		}
		if req.Temperature != 0.2 {
			t.Errorf("temperature = %v, want 0.2", req.Temperature)
		}
		if req.MaxTokens != 300 {
			t.Errorf("max_tokens = %d, want 300", req.MaxTokens)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hola" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Transporte"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL+"/", "test-key", "llama3-70b-8192", Params{Temperature: 0.2, MaxTokens: 300}, time.Second)
	got, err := p.Complete(context.Background(), "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Transporte" {
		t.Errorf("got %q, want Transporte", got)
	}
	if p.Name() != "llama3-70b-8192" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestOpenAIProvider_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"model decommissioned"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "k", "m", Params{}, time.Second)
	_, err := p.Complete(context.Background(), "hola")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", statusErr.StatusCode)
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "k", "m", Params{}, time.Second)
	if _, err := p.Complete(context.Background(), "hola"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIProvider_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p := NewOpenAIProvider(url, "k", "m", Params{}, time.Second)
	if _, err := p.Complete(context.Background(), "hola"); err == nil {
		t.Fatal("expected transport error")
	}
}
