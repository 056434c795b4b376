package service

import (
	"context"

	"pullback-trading/config"
	"pullback-trading/internal/dto"
	"pullback-trading/internal/repository"
	"pullback-trading/internal/strategy"
	"pullback-trading/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ScreenerService answers "which tickers fired the low-volume pullback in
// the last recentBars bars".
type ScreenerService interface {
	Screen(ctx context.Context, req dto.ScreenRequest) (*dto.ScreenResponse, error)
}

type screenerService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo *repository.Repository
}

func NewScreenerService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) ScreenerService {
	return &screenerService{cfg: cfg, log: log, repo: repo}
}

func (s *screenerService) Screen(ctx context.Context, req dto.ScreenRequest) (*dto.ScreenResponse, error) {
	tf, apiErr := resolveTimeframe(s.cfg, req.Timeframe)
	if apiErr != nil {
		return nil, apiErr
	}

	paramsModel, apiErr := resolveParams(s.cfg.Strategy, req.Params)
	if apiErr != nil {
		return nil, apiErr
	}
	params := strategy.ParamsFrom(paramsModel)

	recentBars := s.cfg.Screener.RecentBars
	if req.RecentBars != nil {
		recentBars = *req.RecentBars
	}
	onlyTriggered := s.cfg.Screener.OnlyTriggered
	if req.OnlyTriggered != nil {
		onlyTriggered = *req.OnlyTriggered
	}

	symbols, nameMap, apiErr := resolveUniverse(s.repo.UniverseRepo, req.Tickers)
	if apiErr != nil {
		return nil, apiErr
	}

	// Each ticker is independent; workers fill their own slot so the
	// result order matches the universe order.
	results := make([]dto.ScreenResult, len(symbols))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			results[i] = s.screenOne(gCtx, symbol, tf, params, recentBars)
			results[i].Name = nameMap[symbol]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if onlyTriggered {
		filtered := make([]dto.ScreenResult, 0, len(results))
		for _, r := range results {
			if r.Triggered {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	return &dto.ScreenResponse{
		Timeframe: tf.Name,
		Params:    paramsModel,
		Results:   results,
	}, nil
}

func (s *screenerService) screenOne(ctx context.Context, symbol string, tf config.Timeframe, params strategy.Params, recentBars int) dto.ScreenResult {
	result := dto.ScreenResult{Symbol: symbol, Hits: []dto.Hit{}}

	bars, err := s.repo.MarketDataRepo.GetBars(ctx, symbol, tf)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to get bars for screening",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		result.Error = dto.ErrCodeDataUnavailable
		return result
	}
	if len(bars) == 0 {
		result.Error = dto.ErrCodeNoBars
		return result
	}

	hs := strategy.ComputeHitSeries(bars, params)
	endIdx := len(bars) - 1
	if endIdx+1 < hs.Required {
		result.Error = dto.ErrCodeInsufficientBars
		return result
	}

	hitIdxs := strategy.ScanRecentHits(hs, endIdx, recentBars)
	for _, idx := range hitIdxs {
		result.Hits = append(result.Hits, dto.Hit{
			BarIndex: idx,
			AsOf:     bars[idx].Timestamp,
			VolRatio: floatPtr(hs.VolRatio[idx]),
			BodyPct:  floatPtr(hs.BodyPct[idx]),
		})
	}

	if len(hitIdxs) == 0 {
		return result
	}

	latest := hitIdxs[len(hitIdxs)-1]
	latestIdx := latest
	latestTs := bars[latest].Timestamp
	result.Triggered = true
	result.BarIndex = &latestIdx
	result.AsOf = &latestTs
	result.VolRatio = floatPtr(hs.VolRatio[latest])
	result.BodyPct = floatPtr(hs.BodyPct[latest])
	return result
}
