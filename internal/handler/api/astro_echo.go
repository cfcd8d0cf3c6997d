package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"AstroTrade/internal/domain/models"
	"AstroTrade/internal/report"
	icache "AstroTrade/internal/service/cache"
	"AstroTrade/internal/service/metrics"
	"AstroTrade/internal/service/ratelimit"
	"AstroTrade/internal/usecase"
	"AstroTrade/pkg/cache"
	xhttp "AstroTrade/pkg/http"
	applogger "AstroTrade/pkg/logger"

	"github.com/labstack/echo/v4"
)

const formatText = "text"

// AstroEchoHandler exposes the astro engines over HTTP.
type AstroEchoHandler struct {
	analyzer   *usecase.Analyzer
	reloader   *usecase.Reloader
	cache      icache.BytesCache
	ttl        time.Duration
	rl         *ratelimit.Limiter
	adminToken string
	l          *applogger.Logger
}

func NewAstroEchoHandler(analyzer *usecase.Analyzer, reloader *usecase.Reloader, rl *ratelimit.Limiter) *AstroEchoHandler {
	metrics.Register()
	return &AstroEchoHandler{analyzer: analyzer, reloader: reloader, rl: rl, ttl: 30 * time.Second}
}

// SetCache enables response caching for ttl.
func (h *AstroEchoHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.ttl = ttl
	}
}

// SetAdminToken protects the admin routes with a bearer token.
func (h *AstroEchoHandler) SetAdminToken(token string) { h.adminToken = token }

// SetLogger injects a structured logger.
func (h *AstroEchoHandler) SetLogger(l *applogger.Logger) { h.l = l }

func (h *AstroEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api", h.rateLimit)
	g.GET("/stocks", h.Stocks)
	g.GET("/stocks/aspects", h.StockAspects)
	g.GET("/transits", h.Transits)
	g.GET("/moon", h.Moon)
	g.GET("/sectors/:sign", h.Sector)
	g.POST("/admin/reload", h.Reload)
}

func (h *AstroEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.rl != nil && !h.rl.Allow(c.RealIP()+":"+c.Path()) {
			h.l.Warn("api rate_limited", applogger.String("remote", c.RealIP()), applogger.String("route", c.Path()))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
		}
		return next(c)
	}
}

func (h *AstroEchoHandler) Health(c echo.Context) error {
	v := h.analyzer.Version()
	if v == 0 {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("reference data not loaded"))
	}
	return xhttp.SuccessResponse(c, map[string]any{"status": "ok", "snapshot_version": v})
}

func (h *AstroEchoHandler) Stocks(c echo.Context) error {
	format := c.QueryParam("format")
	return serve(h, c, "stocks", format, nil,
		func(ctx context.Context) ([]string, error) { return h.analyzer.Stocks(ctx) },
		func(names []string) string { return strings.Join(names, "\n") })
}

func (h *AstroEchoHandler) StockAspects(c echo.Context) error {
	req := &models.StockAspectsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	day, err := xhttp.ParseDay(req.Date, h.analyzer.Location())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	return serve(h, c, "stock_aspects", req.Format, []any{req.Stock, day.Format("2006-01-02")},
		func(ctx context.Context) (*models.StockReport, error) {
			return h.analyzer.StockReport(ctx, req.Stock, day)
		},
		report.StockText)
}

func (h *AstroEchoHandler) Transits(c echo.Context) error {
	req := &models.TransitsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	at, err := xhttp.ParseDateTime(req.At, h.analyzer.Location())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	at = at.Truncate(time.Minute)
	return serve(h, c, "transits", req.Format, []any{at.Unix(), req.Limit},
		func(ctx context.Context) (*models.TransitReport, error) {
			return h.analyzer.Transits(ctx, at, req.Limit)
		},
		report.TransitText)
}

func (h *AstroEchoHandler) Moon(c echo.Context) error {
	req := &models.MoonScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	day, err := xhttp.ParseDay(req.Date, h.analyzer.Location())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	return serve(h, c, "moon", req.Format, []any{day.Format("2006-01-02"), req.Stock},
		func(ctx context.Context) (*models.MoonScan, error) {
			return h.analyzer.MoonDay(ctx, day, req.Stock)
		},
		report.MoonText)
}

func (h *AstroEchoHandler) Sector(c echo.Context) error {
	req := &models.SectorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	day, err := xhttp.ParseDay(req.Date, h.analyzer.Location())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}
	return serve(h, c, "sector", req.Format, []any{req.Sign, day.Format("2006-01-02"), req.Top},
		func(ctx context.Context) (*models.SectorReport, error) {
			return h.analyzer.Sector(ctx, req.Sign, day, req.Top)
		},
		report.SectorText)
}

func (h *AstroEchoHandler) Reload(c echo.Context) error {
	if h.adminToken != "" && c.Request().Header.Get(echo.HeaderAuthorization) != "Bearer "+h.adminToken {
		h.l.Warn("api admin unauthorized", applogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("invalid admin token"))
	}
	res, err := h.reloader.Reload(c.Request().Context())
	if err != nil {
		metrics.APIErrors.WithLabelValues("reload").Inc()
		return xhttp.AppErrorResponse(c, xhttp.InternalError("reload failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// serve answers from the response cache or builds, renders and caches the
// result. Keys carry the snapshot version so a reload invalidates them.
func serve[T any](h *AstroEchoHandler, c echo.Context, endpoint, format string, params []any, build func(context.Context) (T, error), text func(T) string) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	asText := format == formatText
	if !asText {
		format = "json"
	}
	key := cache.GenerateKeyWithParams("resp:"+endpoint, append([]any{h.analyzer.Version(), format}, params...)...)
	ctx := c.Request().Context()

	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(ctx, key); err != nil {
			h.l.Warn("api cache_get_error", applogger.String("endpoint", endpoint), applogger.Error(err))
		} else if ok {
			metrics.APIResponseCache.WithLabelValues("hit").Inc()
			return write(c, asText, b)
		}
		metrics.APIResponseCache.WithLabelValues("miss").Inc()
	}

	res, err := build(ctx)
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	var b []byte
	if asText {
		b = []byte(text(res))
	} else if b, err = xhttp.SuccessBody(res); err != nil {
		h.l.Error("api marshal_error", applogger.String("endpoint", endpoint), applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	if h.cache != nil {
		if err := h.cache.SetBytes(ctx, key, b, h.ttl); err != nil {
			h.l.Warn("api cache_set_error", applogger.String("endpoint", endpoint), applogger.Error(err))
		}
	}
	return write(c, asText, b)
}

func write(c echo.Context, asText bool, b []byte) error {
	if asText {
		return xhttp.TextResponse(c, string(b))
	}
	return xhttp.RawJSONResponse(c, b)
}

func (h *AstroEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	metrics.APIErrors.WithLabelValues(endpoint).Inc()
	switch {
	case errors.Is(err, usecase.ErrNoSnapshot):
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("reference data not loaded"))
	case errors.Is(err, usecase.ErrUnknownSign):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	default:
		h.l.Error("api usecase error", applogger.String("endpoint", endpoint), applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("internal error").WithError(err))
	}
}
