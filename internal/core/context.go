package core

import (
	"context"
	"time"

	"devicecore/pkg/domain"
)

type todayKey struct{}

func withToday(ctx context.Context, today domain.Date) context.Context {
	return context.WithValue(ctx, todayKey{}, today)
}

// todayFrom returns the day a transaction runs on, falling back to the UTC wall clock.
func todayFrom(ctx context.Context) domain.Date {
	if d, ok := ctx.Value(todayKey{}).(domain.Date); ok && !d.IsZero() {
		return d
	}
	return domain.DateOf(time.Now().UTC())
}
