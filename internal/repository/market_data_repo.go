package repository

import (
	"context"
	"fmt"

	"pullback-trading/config"
	"pullback-trading/internal/dto"
	"pullback-trading/pkg/cache"
	"pullback-trading/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// MarketDataRepository is the read-through bar cache the engine consumes.
// Series come back ascending and deduplicated; the engine does not
// re-validate beyond NaN-guarding its indicator math.
type MarketDataRepository interface {
	GetBars(ctx context.Context, symbol string, tf config.Timeframe) ([]dto.Bar, error)
	Refresh(ctx context.Context, symbols []string, tf config.Timeframe) error
}

type marketDataRepository struct {
	cfg           *config.Config
	log           *logger.Logger
	yahooRepo     YahooFinanceRepository
	inmemoryCache cache.Cache
}

func NewMarketDataRepository(cfg *config.Config, log *logger.Logger, yahooRepo YahooFinanceRepository, inmemoryCache cache.Cache) MarketDataRepository {
	return &marketDataRepository{
		cfg:           cfg,
		log:           log,
		yahooRepo:     yahooRepo,
		inmemoryCache: inmemoryCache,
	}
}

func barsCacheKey(symbol string, tf config.Timeframe) string {
	return fmt.Sprintf("bars:%s:%s", symbol, tf.Name)
}

func (r *marketDataRepository) GetBars(ctx context.Context, symbol string, tf config.Timeframe) ([]dto.Bar, error) {
	key := barsCacheKey(symbol, tf)
	if cached, found := r.inmemoryCache.Get(key); found {
		if bars, ok := cached.([]dto.Bar); ok {
			return bars, nil
		}
	}

	bars, err := r.yahooRepo.GetBars(ctx, dto.GetBarsParam{
		Symbol:    symbol,
		Timeframe: tf.Name,
		Range:     tf.Range,
		Interval:  tf.Interval,
	})
	if err != nil {
		return nil, err
	}

	r.inmemoryCache.Set(key, bars, r.cfg.Cache.DefaultExpiration)
	return bars, nil
}

// Refresh warms the cache for the given symbols. Failures are logged per
// symbol and do not abort the batch.
func (r *marketDataRepository) Refresh(ctx context.Context, symbols []string, tf config.Timeframe) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Scheduler.MaxConcurrency)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			bars, err := r.yahooRepo.GetBars(gCtx, dto.GetBarsParam{
				Symbol:    symbol,
				Timeframe: tf.Name,
				Range:     tf.Range,
				Interval:  tf.Interval,
			})
			if err != nil {
				r.log.WarnContext(gCtx, "Failed to refresh bars",
					logger.StringField("symbol", symbol),
					logger.StringField("timeframe", tf.Name),
					logger.ErrorField(err))
				return nil
			}
			r.inmemoryCache.Set(barsCacheKey(symbol, tf), bars, r.cfg.Cache.DefaultExpiration)
			return nil
		})
	}

	return g.Wait()
}
