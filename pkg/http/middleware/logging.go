package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs HTTP requests. Paths in skip are not logged; the
// metrics endpoint would otherwise dominate the log at scrape intervals.
func RequestLogging(skip ...string) echo.MiddlewareFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			if _, ok := skipped[req.URL.Path]; ok {
				return err
			}

			log.Printf("[%s] %s %s - %d %dB (%s)",
				req.Method,
				req.RequestURI,
				req.RemoteAddr,
				res.Status,
				res.Size,
				time.Since(start),
			)

			return err
		}
	}
}
