package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRouteTTLSelection(t *testing.T) {
	rules := idempotencyRules(72 * time.Hour)

	tests := []struct {
		name    string
		method  string
		pattern string
		want    time.Duration
		ok      bool
	}{
		{"quote creation", http.MethodPost, "/api/v1/quote", 72 * time.Hour, true},
		{"configuration creation", http.MethodPost, "/api/v1/configurations", defaultIdempotencyTTL, true},
		{"pricing is not idempotent", http.MethodPost, "/api/v1/price", 0, false},
		{"quote read", http.MethodGet, "/api/v1/quote", 0, false},
	}

	for _, tt := range tests {
		ttl, ok := routeTTL(rules, tt.method, tt.pattern)
		if ok != tt.ok {
			t.Fatalf("%s: expected ok=%v got %v", tt.name, tt.ok, ok)
		}
		if ok && ttl != tt.want {
			t.Fatalf("%s: expected ttl=%v got %v", tt.name, tt.want, ttl)
		}
	}
}

func TestRouteTTLSelection_defaultsQuoteTTL(t *testing.T) {
	rules := idempotencyRules(0)
	ttl, ok := routeTTL(rules, http.MethodPost, "/api/v1/quote")
	if !ok || ttl != defaultIdempotencyTTL {
		t.Fatalf("expected default ttl, got ttl=%v ok=%v", ttl, ok)
	}
}

func TestIdempotencyMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil, 0)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	req := requestWithPattern(http.MethodPost, "/api/v1/quote", "/api/v1/quote", strings.NewReader(`{"foo":"bar"}`))
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected nothing stored without a key, got %d entries", len(store.data))
	}
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil, 0)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"number":"KB-20260901-a1b2c3"}}`))
	})

	body := `{"configuration":{"width_cm":32}}`
	req := requestWithPattern(http.MethodPost, "/api/v1/quote", "/api/v1/quote", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected first response 201 got %d", resp.Code)
	}

	replay := requestWithPattern(http.MethodPost, "/api/v1/quote", "/api/v1/quote", strings.NewReader(body))
	replay.Header.Set("Idempotency-Key", "abc")
	replayResp := httptest.NewRecorder()
	mw(handler).ServeHTTP(replayResp, replay)

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if replayResp.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201 got %d", replayResp.Code)
	}
	if replayResp.Body.String() != resp.Body.String() {
		t.Fatalf("expected replayed body %q got %q", resp.Body.String(), replayResp.Body.String())
	}
	if ct := replayResp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected replayed content type, got %q", ct)
	}
}

func TestIdempotencyMiddlewareRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil, 0)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	first := requestWithPattern(http.MethodPost, "/api/v1/quote", "/api/v1/quote", strings.NewReader(`{"a":1}`))
	first.Header.Set("Idempotency-Key", "abc")
	mw(handler).ServeHTTP(httptest.NewRecorder(), first)

	second := requestWithPattern(http.MethodPost, "/api/v1/quote", "/api/v1/quote", strings.NewReader(`{"a":2}`))
	second.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, second)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on body mismatch got %d", resp.Code)
	}
}

func TestIdempotencyMiddlewareIgnoresUnlistedRoutes(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil, 0)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	req := requestWithPattern(http.MethodPost, "/api/v1/price", "/api/v1/price", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	if calls != 1 {
		t.Fatalf("expected handler to run, ran %d times", calls)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected nothing stored for unlisted route, got %d entries", len(store.data))
	}
}
