package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Trace IDs tie together the log lines and error responses produced by one
// request. Clients may supply their own through the header; otherwise one is
// minted per request.
const (
	TraceIDHeader     = "X-Trace-ID"
	TraceIDContextKey = "trace_id"
)

// RequestID attaches a trace ID to the request context and echoes it back
// in the response header
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the trace ID stored on the context, or an empty string
// when the middleware has not run
func GetTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}
