package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/resume-evaluator/internal/llm"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func makeTestServer(t *testing.T, statusCode int, body any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	client, err := New(Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "test-model",
		Temperature: 0.2,
		HTTPClient:  srv.Client(),
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return client
}

func TestCompleteSuccess(t *testing.T) {
	t.Parallel()

	srv := makeTestServer(t, http.StatusOK, completionBody(`{"title":"Engineer"}`))
	client := newTestClient(t, srv)

	got, err := client.Complete(context.Background(), llm.Request{System: "extract", User: "some text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"title":"Engineer"}` {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestCompleteDemandsJSONResponse(t *testing.T) {
	t.Parallel()

	var gotRequest chatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(completionBody(`{}`)); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv)
	if _, err := client.Complete(context.Background(), llm.Request{System: "sys", User: "user"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotRequest.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected a JSON object response format, got %q", gotRequest.ResponseFormat.Type)
	}
	if gotRequest.Temperature != 0.2 {
		t.Fatalf("unexpected temperature: %v", gotRequest.Temperature)
	}
	if len(gotRequest.Messages) != 2 || gotRequest.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", gotRequest.Messages)
	}
}

func TestCompleteProviderError(t *testing.T) {
	t.Parallel()

	srv := makeTestServer(t, http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error"},
	})
	client := newTestClient(t, srv)

	_, err := client.Complete(context.Background(), llm.Request{User: "text"})

	var provider *llm.ProviderError
	if !errors.As(err, &provider) {
		t.Fatalf("expected a provider error, got %v", err)
	}
	if provider.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", provider.Status)
	}
	if provider.Temporary() {
		t.Fatal("auth failures must not be classified as temporary")
	}
	if provider.Message != "invalid api key" {
		t.Fatalf("unexpected message: %q", provider.Message)
	}
}

func TestCompleteRateLimited(t *testing.T) {
	t.Parallel()

	srv := makeTestServer(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "rate limited"},
	})
	client := newTestClient(t, srv)

	_, err := client.Complete(context.Background(), llm.Request{User: "text"})

	var provider *llm.ProviderError
	if !errors.As(err, &provider) {
		t.Fatalf("expected a provider error, got %v", err)
	}
	if !provider.Temporary() {
		t.Fatal("rate limiting must be classified as temporary")
	}
}

func TestCompleteTransportError(t *testing.T) {
	t.Parallel()

	srv := makeTestServer(t, http.StatusOK, completionBody(`{}`))
	client := newTestClient(t, srv)
	srv.Close()

	_, err := client.Complete(context.Background(), llm.Request{User: "text"})

	var transport *llm.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	t.Parallel()

	srv := makeTestServer(t, http.StatusOK, map[string]any{"choices": []any{}})
	client := newTestClient(t, srv)

	_, err := client.Complete(context.Background(), llm.Request{User: "text"})
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected the empty response sentinel, got %v", err)
	}
}
