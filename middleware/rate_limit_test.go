package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("Expected 4th request to be rejected")
	}

	// Other clients are counted separately
	if !limiter.Allow("5.6.7.8") {
		t.Error("Expected a different client to be allowed")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Millisecond)

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("Expected first request allowed")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("Expected second request rejected")
	}

	time.Sleep(20 * time.Millisecond)

	if !limiter.Allow("1.2.3.4") {
		t.Error("Expected request allowed after window reset")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(2, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200 on request %d, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
}
