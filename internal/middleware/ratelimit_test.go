package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.POST("/login", rl.Middleware("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func postFrom(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", nil)
	req.RemoteAddr = ip + ":12345"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AllowsNormalRequests(t *testing.T) {
	router := newLimitedRouter(NewRateLimiter(10, 10))

	if w := postFrom(router, "192.168.1.1"); w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRateLimit_BlocksExcessiveRequests(t *testing.T) {
	router := newLimitedRouter(NewRateLimiter(1, 2))

	var last *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		last = postFrom(router, "10.0.0.1")
	}

	if last.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d after burst exceeded, got %d", http.StatusSeeOther, last.Code)
	}
	if loc := last.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, expected /login", loc)
	}
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	router := newLimitedRouter(NewRateLimiter(1, 1))

	if w := postFrom(router, "10.0.0.1"); w.Code != http.StatusOK {
		t.Errorf("IP1 first request: expected %d, got %d", http.StatusOK, w.Code)
	}
	if w := postFrom(router, "10.0.0.2"); w.Code != http.StatusOK {
		t.Errorf("IP2 first request: expected %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRateLimit_PrunesIdleIPs(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	start := time.Now()
	rl.now = func() time.Time { return start }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if rl.tracked() != 2 {
		t.Fatalf("tracked = %d, expected 2", rl.tracked())
	}

	rl.now = func() time.Time { return start.Add(10 * time.Minute) }
	rl.Allow("10.0.0.3")

	if rl.tracked() != 1 {
		t.Errorf("tracked = %d, expected idle IPs to be pruned", rl.tracked())
	}
}
