package usecase

import (
	"context"
	"time"

	"property-booking/internal/data/repository"

	"go.uber.org/zap"
)

// RunSessionJanitor purges long-expired sessions every interval until ctx
// is done.
func RunSessionJanitor(ctx context.Context, sessions repository.SessionRepository, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	log = log.With(zap.String("worker", "session_janitor"))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				log.Warn("Failed to clean sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("Expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
