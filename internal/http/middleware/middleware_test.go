package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	w = do(r, req)
	if got := w.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Fatalf("got %q, want client-supplied id echoed back", got)
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := do(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected JSON error body")
	}
}

func TestLoggerFrom_FallbackNeverNil(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatalf("expected fallback logger")
	}
}

func TestRateLimiter_DeniesOverBurst(t *testing.T) {
	rl := NewRateLimiter(0, 2, KeyByUserOrIP()) // no refill: burst only

	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := do(r, httptest.NewRequest(http.MethodGet, "/", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimiter_KeysByUserHeader(t *testing.T) {
	rl := NewRateLimiter(0, 1, KeyByUserOrIP())

	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.Header.Set("X-User-ID", "alice")
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.Header.Set("X-User-ID", "bob")

	if w := do(r, reqA); w.Code != http.StatusOK {
		t.Fatalf("alice first: %d", w.Code)
	}
	// Different identity has its own bucket.
	if w := do(r, reqB); w.Code != http.StatusOK {
		t.Fatalf("bob first: %d", w.Code)
	}
	// Alice's bucket is exhausted.
	reqA2 := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA2.Header.Set("X-User-ID", "alice")
	if w := do(r, reqA2); w.Code != http.StatusTooManyRequests {
		t.Fatalf("alice second: %d, want 429", w.Code)
	}
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByUserOrIP())
	rl.ttl = time.Millisecond

	rl.getVisitor("user:stale")
	time.Sleep(5 * time.Millisecond)

	// Force the cleanup pass.
	rl.mu.Lock()
	rl.cleanupN = 4999
	rl.mu.Unlock()
	rl.getVisitor("user:fresh")

	rl.mu.Lock()
	_, stale := rl.visitors["user:stale"]
	_, fresh := rl.visitors["user:fresh"]
	rl.mu.Unlock()
	if stale {
		t.Fatalf("idle visitor should have been evicted")
	}
	if !fresh {
		t.Fatalf("fresh visitor should remain")
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), SecurityHeaders(SecurityOptions{
		EnableHSTS:   true,
		NoStore:      true,
		EnablePolicy: true,
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	for hdr, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
		"Cache-Control":          "no-store",
	} {
		if got := w.Header().Get(hdr); got != want {
			t.Errorf("%s = %q, want %q", hdr, got, want)
		}
	}
	if w.Header().Get("Permissions-Policy") == "" {
		t.Errorf("expected Permissions-Policy")
	}
	// Plain HTTP never gets HSTS.
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS on plain HTTP: %q", got)
	}

	// Forwarded HTTPS does.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = do(r, req)
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Errorf("expected HSTS for forwarded HTTPS")
	}
}

func TestMaskHeader(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"ab":               "***",
		"Bearer abcd1234":  "Bea***",
		"sk-verysecretkey": "sk-***",
	}
	for in, want := range cases {
		if got := maskHeader(in); got != want {
			t.Errorf("maskHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
