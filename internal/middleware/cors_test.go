package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCORSAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := CORS([]string{"https://app.example.com"})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	c.Request.Header.Set("Origin", "https://app.example.com")
	handler(c)
	require.Equal(t, "https://app.example.com", c.Writer.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", c.Writer.Header().Get("Vary"))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	c.Request.Header.Set("Origin", "https://evil.example.com")
	handler(c)
	require.Empty(t, c.Writer.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSOpenWhenUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := CORS(nil)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	handler(c)
	require.Equal(t, "*", c.Writer.Header().Get("Access-Control-Allow-Origin"))

	recorder := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodOptions, "/api/v1/documents", nil)
	handler(c)
	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusNoContent, recorder.Code)
}
