package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// DefaultCORSConfig opens the read API and the admin reload to any origin.
// Authorization is allowed so browsers can send the admin bearer token.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
		MaxAge: 10 * time.Minute,
	}
}

func (cfg CORSConfig) allowOrigin(origin string) (string, bool) {
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			if origin == "" {
				return "*", true
			}
			return origin, true
		}
		if o == origin {
			return origin, true
		}
	}
	return "", false
}

func (cfg CORSConfig) allowMethod(m string) bool {
	for _, am := range cfg.AllowMethods {
		if strings.EqualFold(am, m) {
			return true
		}
	}
	return false
}

// CORS returns CORS middleware. Preflights for methods outside AllowMethods
// are rejected with 405.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req, h := c.Request(), c.Response().Header()
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			allowed, ok := cfg.allowOrigin(req.Header.Get(echo.HeaderOrigin))
			if !ok {
				return next(c)
			}
			h.Set(echo.HeaderAccessControlAllowOrigin, allowed)

			want := req.Header.Get(echo.HeaderAccessControlRequestMethod)
			if req.Method != http.MethodOptions || want == "" {
				return next(c)
			}

			if !cfg.allowMethod(want) {
				return c.NoContent(http.StatusMethodNotAllowed)
			}
			h.Set(echo.HeaderAccessControlAllowMethods, methods)
			h.Set(echo.HeaderAccessControlAllowHeaders, headers)
			if cfg.MaxAge > 0 {
				h.Set(echo.HeaderAccessControlMaxAge, maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
