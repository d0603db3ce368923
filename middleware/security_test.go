package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeoutMiddleware_InvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("REQ_TIMEOUT_SEC", "not-a-number")

	var deadline time.Time
	var hasDeadline bool
	h := TimeoutMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
	}))

	req := httptest.NewRequest("GET", "http://example.local/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !hasDeadline {
		t.Fatal("request context should carry a deadline")
	}
	if remaining := time.Until(deadline); remaining < 5*time.Second {
		t.Fatalf("deadline should be roughly 10s out, got %v", remaining)
	}
}

func TestIntenv(t *testing.T) {
	t.Setenv("INTENV_TEST", "")
	if got := intenv("INTENV_TEST", 7); got != 7 {
		t.Fatalf("unset: expected 7, got %d", got)
	}
	t.Setenv("INTENV_TEST", "abc")
	if got := intenv("INTENV_TEST", 7); got != 7 {
		t.Fatalf("malformed: expected 7, got %d", got)
	}
	t.Setenv("INTENV_TEST", "-3")
	if got := intenv("INTENV_TEST", 7); got != 7 {
		t.Fatalf("non-positive: expected 7, got %d", got)
	}
	t.Setenv("INTENV_TEST", "42")
	if got := intenv("INTENV_TEST", 7); got != 42 {
		t.Fatalf("valid: expected 42, got %d", got)
	}
}
