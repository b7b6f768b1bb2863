// Package middleware provides HTTP middleware components.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/pkg/logger"
)

// Recovery turns a panic in a handler into a 500 INTERNAL_ERROR response and
// marks the request span as failed. The stack goes to the log only.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			ctx := c.Request.Context()
			err := fmt.Errorf("panic in %s %s: %v", c.Request.Method, c.FullPath(), rec)

			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")

			logger.Error(ctx, "panic recovered",
				"error", err,
				"stack", string(debug.Stack()),
			)

			_ = c.Error(apperror.NewInternal(err).WithDetail("request_id", c.GetString("request_id")))
			c.Abort()
		}()
		c.Next()
	}
}
