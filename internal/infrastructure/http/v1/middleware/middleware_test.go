package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumbertrace/internal/core/apperror"
	appctx "lumbertrace/internal/core/context"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticValidator struct {
	token string
}

func (v staticValidator) ValidateToken(token string) (*appctx.Operator, error) {
	if token != v.token {
		return nil, errors.New("bad token")
	}
	return &appctx.Operator{Username: "operator"}, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(), Recovery())
	r.Use(mw...)
	return r
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRecovery(t *testing.T) {
	r := newEngine()
	r.GET("/boom", func(c *gin.Context) { panic("saw blade jammed") })

	rec := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeInternal)
	assert.NotContains(t, rec.Body.String(), "saw blade")
}

func TestErrorHandler(t *testing.T) {
	r := newEngine()
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("material", "MAT-1"))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("disk full"))
	})
	r.GET("/bare", func(c *gin.Context) {
		_ = c.Error(&apperror.AppError{Code: apperror.CodeConflict, Message: "clash"})
	})

	rec := serve(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeNotFound)

	rec = serve(r, http.MethodGet, "/plain", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk full")

	rec = serve(r, http.MethodGet, "/bare", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeConflict)
}

func TestRequireAuthForWrites(t *testing.T) {
	r := newEngine(RequireAuthForWrites(staticValidator{token: "good"}))
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, appctx.GetOperatorName(c.Request.Context()))
	}
	r.GET("/materials", handler)
	r.POST("/materials", handler)

	tests := []struct {
		name   string
		method string
		auth   string
		status int
	}{
		{name: "read without token", method: http.MethodGet, status: http.StatusOK},
		{name: "write without token", method: http.MethodPost, status: http.StatusUnauthorized},
		{name: "write with wrong scheme", method: http.MethodPost, auth: "Basic good", status: http.StatusUnauthorized},
		{name: "write with bad token", method: http.MethodPost, auth: "Bearer bad", status: http.StatusUnauthorized},
		{name: "write with token", method: http.MethodPost, auth: "Bearer good", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.auth != "" {
				header.Set("Authorization", tt.auth)
			}
			rec := serve(r, tt.method, "/materials", header)
			require.Equal(t, tt.status, rec.Code)
			if tt.auth == "Bearer good" {
				assert.Equal(t, "operator", rec.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	r := newEngine(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)

	rec := serve(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestTrace(t *testing.T) {
	r := newEngine(Trace())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, appctx.GetRequestID(c.Request.Context()))
	})

	header := http.Header{}
	header.Set(HeaderRequestID, "req-7")
	rec := serve(r, http.MethodGet, "/ping", header)
	assert.Equal(t, "req-7", rec.Body.String())
	assert.Equal(t, "req-7", rec.Header().Get(HeaderTraceID))
}
