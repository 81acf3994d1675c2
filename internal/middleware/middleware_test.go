package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := serve(r, "")
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	given := uuid.NewString()
	assert.Equal(t, given, serve(r, given).Header().Get(RequestIDHeader))

	assert.NotEqual(t, "not-a-uuid", serve(r, "not-a-uuid").Header().Get(RequestIDHeader))
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(5 * time.Millisecond))
	r.GET("/test", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, "").Code)

	r = gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/test", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, serve(r, "").Code)
}
