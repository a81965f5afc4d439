package handlers

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
)

// internalError logs err and returns a 500 whose body carries only msg, so
// driver and SQL details stay out of API responses.
func internalError(ctx context.Context, msg string, err error) error {
	slog.Default().ErrorContext(ctx, msg, "error", err)
	return huma.Error500InternalServerError(msg)
}
