package services

import (
	"context"
	"time"
)

const defaultTimeout = 5 * time.Second

// bounded applies the statement timeout to one service call.
func bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(ctx, d)
}
