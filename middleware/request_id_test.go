package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlickbitTechnologies/ContractFlow/pkg/logger"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGenerated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var gotID string
	var gotCtxID string
	router.GET("/test", func(c *gin.Context) {
		gotID = GetRequestID(c)
		if v, ok := c.Request.Context().Value(logger.RequestIDKey).(string); ok {
			gotCtxID = v
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if gotID == "" {
		t.Error("Expected request ID to be generated")
	}
	if w.Header().Get("X-Request-ID") != gotID {
		t.Error("Expected request ID in response header")
	}
	if gotCtxID != gotID {
		t.Error("Expected request ID propagated to request context")
	}
}

func TestRequestIDReused(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") != "caller-supplied-id" {
		t.Errorf("Expected caller-supplied id, got %s", w.Header().Get("X-Request-ID"))
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetRequestID(c) != "" {
		t.Error("Expected empty request ID without middleware")
	}
}
