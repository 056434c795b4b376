package service

import (
	"context"
	"fmt"

	"pullback-trading/config"
	"pullback-trading/internal/repository"
	"pullback-trading/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RefreshService periodically warms the bar cache for the configured
// universe so interactive requests rarely pay the fetch cost.
type RefreshService interface {
	Start(ctx context.Context) error
	Stop()
	RefreshUniverse(ctx context.Context) error
}

type refreshService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo *repository.Repository
	cron *cron.Cron
}

func NewRefreshService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) RefreshService {
	return &refreshService{
		cfg:  cfg,
		log:  log,
		repo: repo,
		cron: cron.New(),
	}
}

func (s *refreshService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.RefreshCron, func() {
		if err := s.RefreshUniverse(ctx); err != nil {
			s.log.ErrorContext(ctx, "Scheduled universe refresh failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh cron %q: %w", s.cfg.Scheduler.RefreshCron, err)
	}

	s.cron.Start()
	s.log.Info("Refresh scheduler started", logger.StringField("cron", s.cfg.Scheduler.RefreshCron))

	if s.cfg.Scheduler.RefreshOnStart {
		go func() {
			if err := s.RefreshUniverse(ctx); err != nil {
				s.log.ErrorContext(ctx, "Initial universe refresh failed", logger.ErrorField(err))
			}
		}()
	}
	return nil
}

func (s *refreshService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Refresh scheduler stopped")
}

func (s *refreshService) RefreshUniverse(ctx context.Context) error {
	tf, ok := s.cfg.TimeframeByName(s.cfg.Scheduler.DefaultTimeframe)
	if !ok {
		return fmt.Errorf("default timeframe %q is not configured", s.cfg.Scheduler.DefaultTimeframe)
	}

	tickers, err := s.repo.UniverseRepo.Load()
	if err != nil {
		return err
	}
	symbols := make([]string, 0, len(tickers))
	for _, t := range tickers {
		symbols = append(symbols, t.Symbol)
	}

	s.log.InfoContext(ctx, "Refreshing universe bars",
		logger.IntField("symbols", len(symbols)),
		logger.StringField("timeframe", tf.Name))
	return s.repo.MarketDataRepo.Refresh(ctx, symbols, tf)
}
