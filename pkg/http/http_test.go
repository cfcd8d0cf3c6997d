package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageRequest struct {
	Name  string `query:"name" validate:"required,max=8"`
	Limit int    `query:"limit" default:"10" validate:"gte=1,lte=50"`
}

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReadAndValidateRequest(t *testing.T) {
	c, _ := newContext("/?name=abc")
	var ok pageRequest
	assert.Nil(t, ReadAndValidateRequest(c, &ok))
	assert.Equal(t, 10, ok.Limit, "default applied")

	c, _ = newContext("/?limit=99")
	var bad pageRequest
	errs, isList := ReadAndValidateRequest(c, &bad).([]ValidationError)
	require.True(t, isList)
	require.Len(t, errs, 2)
	assert.Equal(t, "ERR_REQUIRED", errs[0].Code)
	assert.Equal(t, "ERR_LTE", errs[1].Code)
	assert.Equal(t, "50", errs[1].Params["max"])
}

type dayRequest struct {
	Sign   string `param:"sign" json:"sign" validate:"required"`
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Format string `query:"format" default:"json" validate:"oneof=json text"`
}

func TestValidationErrorsUseRequestNames(t *testing.T) {
	c, _ := newContext("/?date=10-03-2025&format=xml")
	var req dayRequest
	errs, isList := ReadAndValidateRequest(c, &req).([]ValidationError)
	require.True(t, isList)
	require.Len(t, errs, 3)

	assert.Equal(t, "sign", errs[0].Field)
	assert.Nil(t, errs[0].Params)

	assert.Equal(t, "ERR_DATETIME", errs[1].Code)
	assert.Equal(t, "date", errs[1].Field)
	assert.Equal(t, "date must be formatted as YYYY-MM-DD", errs[1].Message)
	assert.Equal(t, "YYYY-MM-DD", errs[1].Params["layout"])

	assert.Equal(t, "format", errs[2].Field)
	assert.Equal(t, "format must be one of: json, text", errs[2].Message)
}

func TestAppErrorResponse(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ServiceUnavailableError("loading"), http.StatusServiceUnavailable},
		{TooManyRequestsError("slow down"), http.StatusTooManyRequests},
		{fmt.Errorf("wrapped: %w", BadRequestError("bad sign")), http.StatusBadRequest},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		c, rec := newContext("/")
		require.NoError(t, AppErrorResponse(c, tt.err))
		assert.Equal(t, tt.status, rec.Code)

		var body APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.status, body.Status)
	}
}

func TestSuccessBodyReplay(t *testing.T) {
	b, err := SuccessBody(map[string]int{"n": 1})
	require.NoError(t, err)

	c, rec := newContext("/")
	require.NoError(t, RawJSONResponse(c, b))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"message":"OK","data":{"n":1}}`, rec.Body.String())
}

func TestServerRoutesAndMetricsPath(t *testing.T) {
	s := NewServer(nil, WithMetricsPath("/internal/metrics"), WithCORS(false))
	s.Echo().GET("/ping/:id", func(c echo.Context) error { return TextResponse(c, "pong") })

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/7", nil))
	assert.Equal(t, "pong", rec.Body.String())

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "astrotrade_http_requests_total")
}
