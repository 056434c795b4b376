package service

import (
	"context"

	"pullback-trading/config"
	"pullback-trading/internal/dto"
	"pullback-trading/internal/repository"
	"pullback-trading/internal/strategy"
	"pullback-trading/pkg/logger"
	"pullback-trading/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// RangeBacktestService treats every bar inside [startDate, endDate] as an
// independent as-of point for every universe ticker and aggregates
// win-rate and return-bucket distributions per forward day.
type RangeBacktestService interface {
	Run(ctx context.Context, req dto.RangeBacktestRequest) (*dto.RangeBacktestResponse, error)
}

type rangeBacktestService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo *repository.Repository
}

func NewRangeBacktestService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) RangeBacktestService {
	return &rangeBacktestService{cfg: cfg, log: log, repo: repo}
}

func (s *rangeBacktestService) Run(ctx context.Context, req dto.RangeBacktestRequest) (*dto.RangeBacktestResponse, error) {
	tf, apiErr := resolveTimeframe(s.cfg, req.Timeframe)
	if apiErr != nil {
		return nil, apiErr
	}

	startTs, err := utils.ParseDateStartUnix(req.StartDate)
	if err != nil {
		return nil, dto.InvalidRequest("Invalid startDate format. Expected YYYY-MM-DD.", map[string]string{"startDate": req.StartDate})
	}
	endTs, err := utils.ParseDateEndUnix(req.EndDate)
	if err != nil {
		return nil, dto.InvalidRequest("Invalid endDate format. Expected YYYY-MM-DD.", map[string]string{"endDate": req.EndDate})
	}
	if startTs > endTs {
		return nil, dto.InvalidRequest("startDate must be <= endDate.", map[string]string{"startDate": req.StartDate, "endDate": req.EndDate})
	}

	paramsModel, apiErr := resolveParams(s.cfg.Strategy, req.Params)
	if apiErr != nil {
		return nil, apiErr
	}
	params := strategy.ParamsFrom(paramsModel)

	horizonBars := s.cfg.RangeBT.HorizonBars
	if req.HorizonBars != nil {
		horizonBars = *req.HorizonBars
	}
	entry := strategy.EntryExecution(s.cfg.RangeBT.EntryExecution)
	if req.EntryExecution != "" {
		entry = strategy.EntryExecution(req.EntryExecution)
	}
	if !entry.Valid() {
		return nil, dto.InvalidRequest("entryExecution must be close or next_open.", map[string]string{"entryExecution": string(entry)})
	}
	bucketThreshold := s.cfg.RangeBT.BucketThresholdPct

	symbols, _, apiErr := resolveUniverse(s.repo.UniverseRepo, req.Tickers)
	if apiErr != nil {
		return nil, apiErr
	}

	// Reduction pattern: each worker produces local counters, the merge
	// below is single-threaded.
	locals := make([]strategy.RangeCounts, len(symbols))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			bars, err := s.repo.MarketDataRepo.GetBars(gCtx, symbol, tf)
			if err != nil {
				s.log.WarnContext(gCtx, "Failed to get bars for range backtest",
					logger.StringField("symbol", symbol),
					logger.ErrorField(err))
				locals[i] = strategy.NewRangeCounts(horizonBars)
				return nil
			}
			locals[i] = strategy.RunRangeBacktest(bars, params, startTs, endTs, horizonBars, entry, bucketThreshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := strategy.NewRangeCounts(horizonBars)
	for _, local := range locals {
		total.Merge(local)
	}

	if total.EvaluatedBars == 0 {
		return nil, dto.InvalidRequest(
			"No bars found in the requested date range (or insufficient bars for indicators).",
			map[string]string{"timeframe": tf.Name, "startDate": req.StartDate, "endDate": req.EndDate},
		)
	}

	sampleCountByDay := make(map[int]int, horizonBars)
	winRateByDay := make(map[int]float64)
	bucketRateByDay := make(map[int]dto.BucketRate)
	for day := 1; day <= horizonBars; day++ {
		denom := total.Samples[day-1]
		sampleCountByDay[day] = denom
		if denom <= 0 {
			// Days past the data edge have no samples; surfaced as a
			// zero count, never divided.
			continue
		}
		winRateByDay[day] = float64(total.Wins[day-1]) / float64(denom)
		buckets := total.Buckets[day-1]
		bucketRateByDay[day] = dto.BucketRate{
			DownGt5:  float64(buckets.DownGt5) / float64(denom),
			Down0To5: float64(buckets.Down0To5) / float64(denom),
			Up0To5:   float64(buckets.Up0To5) / float64(denom),
			UpGt5:    float64(buckets.UpGt5) / float64(denom),
		}
	}

	return &dto.RangeBacktestResponse{
		Timeframe:      tf.Name,
		StartTs:        startTs,
		EndTs:          endTs,
		HorizonBars:    horizonBars,
		EntryExecution: string(entry),
		Params:         paramsModel,
		Summary: dto.RangeBacktestSummary{
			UniverseSize:     len(symbols),
			EvaluatedBars:    total.EvaluatedBars,
			TriggeredEvents:  total.TriggeredEvents,
			SampleCountByDay: sampleCountByDay,
			WinRateByDay:     winRateByDay,
			BucketRateByDay:  bucketRateByDay,
		},
	}, nil
}
