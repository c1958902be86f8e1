package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

type searchReq struct {
	Query string `query:"query" validate:"required,max=5"`
	Limit int    `query:"limit" default:"10" validate:"gte=1,lte=50"`
}

type echoHandler struct{}

func (echoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/echo", func(c echo.Context) error {
		var req searchReq
		if errs := ReadAndValidateRequest(c, &req); errs != nil {
			return BadRequestResponse(c, errs)
		}
		return SuccessResponse(c, req)
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return AppErrorResponse(c, BadGatewayError("upstream down"))
	})
}

func TestServerHealthAndValidation(t *testing.T) {
	s := NewServer(Handlers{echoHandler{}}, nil, WithMetrics(false, "", 0), WithEnvironment("test"))
	e := s.Echo()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"environment":"test"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/echo?query=aapl", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var ok struct {
		Data searchReq `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.Equal(t, 10, ok.Data.Limit)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/echo?query=toolong", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var bad APIResponse400Err
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bad))
	require.Len(t, bad.Data, 1)
	assert.Equal(t, "ERR_MAX", bad.Data[0].Code)
	assert.Equal(t, "query", bad.Data[0].Field)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), CodeProvider))
}

func TestServerRateLimitSkipsHealth(t *testing.T) {
	s := NewServer(Handlers{echoHandler{}}, nil, WithMetrics(false, "", 0), WithRateLimiter(denyAll{}))
	e := s.Echo()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/echo?query=a", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
