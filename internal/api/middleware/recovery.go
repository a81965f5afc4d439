package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"github.com/labstack/echo/v4"
)

const internalErrorPage = `<!doctype html><html><head><title>Server error</title></head>` +
	`<body><h1>Something went wrong</h1><p><a href="/">Back to posts</a></p></body></html>`

// Recovery returns Echo middleware that recovers from panics, logs the stack
// trace, and answers 500. API callers get JSON; browsers get a page.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)

				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", c.Get(requestIDKey),
					"stack", string(buf[:n]),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				if WantsJSON(c) {
					err = c.JSON(http.StatusInternalServerError, map[string]string{
						"error": "internal server error",
					})
					return
				}
				err = c.HTML(http.StatusInternalServerError, internalErrorPage)
			}()
			return next(c)
		}
	}
}

// WantsJSON reports whether the request targets the JSON API or asks for
// JSON explicitly.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.HasPrefix(req.URL.Path, "/api/") {
		return true
	}
	accept := req.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
