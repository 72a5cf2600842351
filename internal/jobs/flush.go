package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultFlushInterval = 30 * time.Second

type Saver interface {
	Save(ctx context.Context)
}

// RunFlush saves on every tick until ctx is done. Ticks and request-driven
// saves go through the same saver, which orders them.
func RunFlush(ctx context.Context, interval time.Duration, saver Saver, logger *zap.Logger) error {
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("flush job started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("flush job stopped")
			return nil
		case <-ticker.C:
			saver.Save(ctx)
			logger.Debug("periodic flush done")
		}
	}
}
