package repository

import (
	"pullback-trading/config"
	"pullback-trading/pkg/cache"
	"pullback-trading/pkg/logger"
)

type Repository struct {
	UniverseRepo   UniverseRepository
	YahooRepo      YahooFinanceRepository
	MarketDataRepo MarketDataRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	yahooRepo := NewYahooFinanceRepository(cfg, log)
	return &Repository{
		UniverseRepo:   NewUniverseRepository(cfg.Universe.File),
		YahooRepo:      yahooRepo,
		MarketDataRepo: NewMarketDataRepository(cfg, log, yahooRepo, inmemoryCache),
	}
}
