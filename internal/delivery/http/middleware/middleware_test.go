package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"doctor-directory/config"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/jwt"

	"github.com/sirupsen/logrus"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate(t *testing.T) {
	svc := jwt.NewJWTService(config.AdminAuthConfig{Secret: "secret", Expiry: time.Hour})
	token, err := svc.GenerateAdminToken("ops", 0)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	var actor string
	protected := NewAuthMiddleware(svc).Authenticate(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ = GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/doctors", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
	if actor != "ops" {
		t.Fatalf("actor = %q, want ops", actor)
	}
}

func TestRequireScopeRejectsOtherScopes(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ScopeKey, "reader"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without scope = %d, want 401", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	h := NewCORSMiddleware([]string{"https://a.example/"}).Handle(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://a.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://a.example" {
		t.Fatalf("allowed origin header = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unexpected allow origin for unknown origin")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, false)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Handle(http.HandlerFunc(okHandler))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/x-1/reviews", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, code)
		}
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("over budget status = %d, want 429", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other client status = %d", code)
	}

	now = now.Add(time.Second)
	if code := do("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("after refill status = %d", code)
	}

	now = now.Add(limiterIdleTTL + time.Second)
	rl.sweep()
	if len(rl.clients) != 0 {
		t.Fatalf("%d clients left after sweep", len(rl.clients))
	}
}

func TestRateLimiterForwardedFor(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		forwarded  []string
		want       []int
	}{
		{
			name:      "rotating header is ignored without a trusted proxy",
			forwarded: []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"},
			want:      []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests},
		},
		{
			name:       "trusted proxy keys on the appended address",
			trustProxy: true,
			forwarded:  []string{"198.51.100.1", "198.51.100.2", "198.51.100.2"},
			want:       []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests},
		},
		{
			name:       "trusted proxy ignores client supplied entries",
			trustProxy: true,
			forwarded:  []string{"1.1.1.1, 198.51.100.7", "2.2.2.2, 198.51.100.7"},
			want:       []int{http.StatusOK, http.StatusTooManyRequests},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(0.001, 1, tt.trustProxy)
			h := rl.Handle(http.HandlerFunc(okHandler))
			for i, fwd := range tt.forwarded {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/x-1/reviews", nil)
				req.RemoteAddr = "203.0.113.9:4000"
				req.Header.Set("X-Forwarded-For", fwd)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				if rec.Code != tt.want[i] {
					t.Fatalf("request %d (%s) status = %d, want %d", i, fwd, rec.Code, tt.want[i])
				}
			}
		})
	}
}

type countingCache struct {
	invalidated int32
}

func (c *countingCache) GetOrLoad(ctx context.Context, load service.HomeLoader) (*dto.HomeView, error) {
	return load(ctx)
}

func (c *countingCache) Invalidate(context.Context) error {
	atomic.AddInt32(&c.invalidated, 1)
	return nil
}

func TestInvalidateHomeCache(t *testing.T) {
	tests := []struct {
		method string
		status int
		want   int32
	}{
		{http.MethodGet, http.StatusOK, 0},
		{http.MethodPost, http.StatusCreated, 1},
		{http.MethodPut, http.StatusBadRequest, 0},
		{http.MethodDelete, http.StatusOK, 1},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			cache := &countingCache{}
			h := InvalidateHomeCache(cache)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, "/", nil))
			if cache.invalidated != tt.want {
				t.Fatalf("invalidated %d times, want %d", cache.invalidated, tt.want)
			}
		})
	}
}

func TestLoggingSetsRequestID(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	var seen string
	h := NewLoggingMiddleware(log).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestIDFromContext(r.Context())
		w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("request id = %q, header = %q", seen, rec.Header().Get(RequestIDHeader))
	}
}

func TestRecoverAnswers500(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := NewLoggingMiddleware(log)

	h := m.Handle(m.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
