package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPLimiterIsPerAddress(t *testing.T) {
	l := newIPLimiter(2)
	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatal("burst should allow two attempts")
	}
	if l.allow("10.0.0.1") {
		t.Fatal("third attempt should be limited")
	}
	if !l.allow("10.0.0.2") {
		t.Fatal("other address must have its own bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	a := &API{loginLimiter: newIPLimiter(1)}
	h := a.rateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("attempt %d: status %d, want %d", i+1, rec.Code, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	if got := clientIP(req); got != "198.51.100.7" {
		t.Fatalf("clientIP = %q", got)
	}
	req.RemoteAddr = "not-an-addr"
	if got := clientIP(req); got != "not-an-addr" {
		t.Fatalf("clientIP = %q", got)
	}
}
