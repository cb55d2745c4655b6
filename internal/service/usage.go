package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/repository"
)

// AdminCall identifies one invocation of a usage-accounted admin operation.
type AdminCall struct {
	Actor domain.AuthUser
	Path  string
}

// UsageRecorder measures privileged admin operations and accumulates the
// elapsed time per acting user.
type UsageRecorder struct {
	useTimes repository.ApiUseTimeRepository
	now      func() time.Time
	logger   *slog.Logger
}

func NewUsageRecorder(useTimes repository.ApiUseTimeRepository, now func() time.Time, logger *slog.Logger) *UsageRecorder {
	if now == nil {
		now = time.Now
	}
	return &UsageRecorder{useTimes: useTimes, now: now, logger: defaultLogger(logger)}
}

// Record runs op and, whether it succeeds, fails or panics, logs the elapsed
// time and adds it to the actor's cumulative usage. The result of op is
// returned unchanged; a failure to record usage is only logged.
func (u *UsageRecorder) Record(ctx context.Context, call AdminCall, op func(ctx context.Context) error) error {
	start := u.now()
	defer func() {
		elapsed := u.now().Sub(start)
		u.logger.InfoContext(ctx, "admin api use time",
			"user_id", call.Actor.ID,
			"elapsed_ms", elapsed.Milliseconds(),
			"path", call.Path,
			"requested_at", start.Format(time.RFC3339Nano),
		)
		if err := u.useTimes.AddUseTime(context.WithoutCancel(ctx), call.Actor.ID, elapsed.Milliseconds()); err != nil {
			u.logger.ErrorContext(ctx, "failed to record api use time", "user_id", call.Actor.ID, "error", err)
		}
	}()
	return op(ctx)
}
