package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"agrirent/internal/pkg/config"
	"agrirent/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the hold-expiry sweep on a fixed interval for the life
// of the application. A failed sweep is logged and retried next tick;
// expired holds stay invisible to availability either way, so the sweep is
// cleanup rather than correctness.
func StartSweeper(lc fx.Lifecycle, cfg config.Config, sweeper commands.SweeperCommands, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			interval := cfg.Booking.SweepInterval
			if interval <= 0 {
				interval = time.Minute
			}
			logger.Info("hold sweeper started", "interval", interval.String())

			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						released, err := sweeper.SweepExpiredHolds(ctx)
						if err != nil {
							logger.Error("hold sweep failed", "error", err.Error())
							continue
						}
						if released > 0 {
							logger.Info("released expired payment holds", "count", released)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			logger.Info("hold sweeper stopped")
			return nil
		},
	})
}
