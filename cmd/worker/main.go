package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
	"learnd/internal/infra"
	"learnd/internal/sqlinline"
)

// retentionWorker prunes lessons past their tier's retention window and
// drafts abandoned for 30 days.
type retentionWorker struct {
	runner *infra.SQLRunner
	logger infra.Logger
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	worker := &retentionWorker{
		runner: infra.NewSQLRunner(pool, logger),
		logger: logger,
	}

	if err := worker.Run(ctx, cfg.RetentionInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *retentionWorker) Run(ctx context.Context, interval time.Duration) error {
	w.logger.Info().Dur("interval", interval).Msg("worker: started")

	// One pass on startup, then on the ticker.
	w.prune(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *retentionWorker) prune(ctx context.Context) {
	for _, tier := range []domain.SubscriptionTier{
		domain.TierFree, domain.TierTeam, domain.TierBusiness, domain.TierEnterprise,
	} {
		limits, err := entitlement.LimitsFor(tier)
		if err != nil {
			w.logger.Error().Err(err).Str("tier", string(tier)).Msg("worker: missing tier limits")
			continue
		}
		if limits.DataRetentionDays == entitlement.Unlimited {
			continue
		}
		tag, err := w.runner.Exec(ctx, sqlinline.QDeleteExpiredLessons, string(tier), limits.DataRetentionDays)
		if err != nil {
			w.logger.Error().Err(err).Str("tier", string(tier)).Msg("worker: retention prune failed")
			continue
		}
		if rows := tag.RowsAffected(); rows > 0 {
			w.logger.Info().Str("tier", string(tier)).Int64("pruned", rows).Msg("worker: expired lessons removed")
		}
	}

	tag, err := w.runner.Exec(ctx, sqlinline.QDeleteStaleDrafts)
	if err != nil {
		w.logger.Error().Err(err).Msg("worker: stale draft prune failed")
		return
	}
	if rows := tag.RowsAffected(); rows > 0 {
		w.logger.Info().Int64("pruned", rows).Msg("worker: stale drafts removed")
	}
}
