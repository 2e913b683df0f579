package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/maska/internal/config"
	"github.com/deppfellow/maska/internal/errs"
	"github.com/deppfellow/maska/internal/server"
	"github.com/deppfellow/maska/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func serveError(t *testing.T, handlerErr error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler
	e.GET("/members", func(c echo.Context) error { return handlerErr })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members", nil))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandler_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "members",
		ConstraintName: "members_cin_key",
	}

	rec, body := serveError(t, fmt.Errorf("failed to insert into members: %w", pgErr))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MEMBER_ALREADY_EXISTS", body.Code)
	assert.Equal(t, "A member with this Cin already exists", body.Message)
	assert.True(t, body.Override)
}

func TestGlobalErrorHandler_NotFound(t *testing.T) {
	rec, body := serveError(t, fmt.Errorf("%smembers: id 4: %w", sqlerr.TablePrefix, pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Member not found", body.Message)
}

func TestGlobalErrorHandler_Unknown(t *testing.T) {
	rec, body := serveError(t, fmt.Errorf("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGlobalErrorHandler_HTTPErrorPassthrough(t *testing.T) {
	rec, body := serveError(t, errs.NewForbiddenError("Members are read-only", true))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Members are read-only", body.Message)
}

func TestGlobalErrorHandler_UnknownRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	const upstream = "0b6c8c5e-4c7a-4f5e-9a3b-2f1d6e7c8a90"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, upstream)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, upstream, rec.Body.String())
	assert.Equal(t, upstream, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "forged\nline")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEqual(t, "forged\nline", rec.Body.String())
	assert.Len(t, rec.Body.String(), 36)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.GET("/api/v1/members", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit(1, 1))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestContextEnhancer(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(newTestServer()).EnhanceContext())
	e.GET("/", func(c echo.Context) error {
		assert.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	bare := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(bare))
}
