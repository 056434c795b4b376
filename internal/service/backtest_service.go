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

// BacktestService runs the single-point ("as-of") backtest across the
// universe and aggregates per-day win rates and average returns.
type BacktestService interface {
	Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error)
}

type backtestService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo *repository.Repository
}

func NewBacktestService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) BacktestService {
	return &backtestService{cfg: cfg, log: log, repo: repo}
}

// tickerBacktest pairs a per-ticker engine result with its data status.
type tickerBacktest struct {
	result  strategy.PointResult
	dataErr string
}

func (s *backtestService) Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	tf, apiErr := resolveTimeframe(s.cfg, req.Timeframe)
	if apiErr != nil {
		return nil, apiErr
	}

	asOfTs, apiErr := resolveAsOf(req)
	if apiErr != nil {
		return nil, apiErr
	}

	paramsModel, apiErr := resolveParams(s.cfg.Strategy, req.Params)
	if apiErr != nil {
		return nil, apiErr
	}
	params := strategy.ParamsFrom(paramsModel)

	recentBars := s.cfg.Backtest.RecentBars
	if req.RecentBars != nil {
		recentBars = *req.RecentBars
	}
	horizonBars := s.cfg.Backtest.HorizonBars
	if req.HorizonBars != nil {
		horizonBars = *req.HorizonBars
	}
	entry := strategy.EntryExecution(s.cfg.Backtest.EntryExecution)
	if req.EntryExecution != "" {
		entry = strategy.EntryExecution(req.EntryExecution)
	}
	if !entry.Valid() {
		return nil, dto.InvalidRequest("entryExecution must be close or next_open.", map[string]string{"entryExecution": string(entry)})
	}
	onlyTriggered := s.cfg.Backtest.OnlyTriggered
	if req.OnlyTriggered != nil {
		onlyTriggered = *req.OnlyTriggered
	}

	symbols, nameMap, apiErr := resolveUniverse(s.repo.UniverseRepo, req.Tickers)
	if apiErr != nil {
		return nil, apiErr
	}

	outcomes := make([]tickerBacktest, len(symbols))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			bars, err := s.repo.MarketDataRepo.GetBars(gCtx, symbol, tf)
			if err != nil {
				s.log.WarnContext(gCtx, "Failed to get bars for backtest",
					logger.StringField("symbol", symbol),
					logger.ErrorField(err))
				outcomes[i] = tickerBacktest{dataErr: dto.ErrCodeDataUnavailable}
				return nil
			}
			outcomes[i] = tickerBacktest{
				result: strategy.RunPointBacktest(bars, params, asOfTs, recentBars, horizonBars, entry),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Single-threaded merge: per-day sums and win counts, denominators
	// counted per day so a ticker missing day k contributes only to
	// days it has.
	sumByDay := make(map[int]float64)
	winByDay := make(map[int]int)
	countByDay := make(map[int]int)
	results := make([]dto.BacktestResult, 0, len(symbols))

	evaluatedCount := 0
	triggeredCount := 0
	var resolvedAsOfTs *int64

	for i, symbol := range symbols {
		outcome := outcomes[i]
		if outcome.dataErr != "" {
			if !onlyTriggered {
				results = append(results, dto.BacktestResult{
					Symbol:    symbol,
					Name:      nameMap[symbol],
					Triggered: false,
					Error:     outcome.dataErr,
				})
			}
			continue
		}

		bt := outcome.result
		evaluatedCount++
		if resolvedAsOfTs == nil && bt.EndIdx >= 0 {
			ts := bt.EndTs
			resolvedAsOfTs = &ts
		}

		if !bt.Triggered {
			if !onlyTriggered {
				results = append(results, dto.BacktestResult{
					Symbol:    symbol,
					Name:      nameMap[symbol],
					Triggered: false,
					Error:     bt.ErrCode,
				})
			}
			continue
		}

		triggeredCount++
		forward := make([]dto.ForwardPoint, 0, len(bt.Forward))
		for _, fp := range bt.Forward {
			forward = append(forward, dto.ForwardPoint{
				Day:    fp.Day,
				Ts:     fp.Ts,
				Close:  fp.Close,
				Return: fp.Return,
			})
			sumByDay[fp.Day] += fp.Return
			countByDay[fp.Day]++
			if fp.Return > 0 {
				winByDay[fp.Day]++
			}
		}

		results = append(results, dto.BacktestResult{
			Symbol:    symbol,
			Name:      nameMap[symbol],
			Triggered: true,
			Signal: &dto.SignalEvent{
				BarIndex:   bt.SignalIdx,
				AsOfTs:     bt.SignalTs,
				EntryPrice: bt.EntryPrice,
				VolRatio:   floatPtr(bt.VolRatio),
				BodyPct:    floatPtr(bt.BodyPct),
			},
			Forward: forward,
			Error:   bt.ErrCode,
		})
	}

	if resolvedAsOfTs == nil {
		return nil, dto.InvalidRequest("asOf is earlier than available bars.", nil)
	}

	avgByDay := make(map[int]float64, len(countByDay))
	winRateByDay := make(map[int]float64, len(countByDay))
	for day, count := range countByDay {
		avgByDay[day] = sumByDay[day] / float64(count)
		winRateByDay[day] = float64(winByDay[day]) / float64(count)
	}

	return &dto.BacktestResponse{
		Timeframe:      tf.Name,
		AsOfTs:         *resolvedAsOfTs,
		HorizonBars:    horizonBars,
		EntryExecution: string(entry),
		Params:         paramsModel,
		Summary: dto.BacktestSummary{
			UniverseSize:   len(symbols),
			EvaluatedCount: evaluatedCount,
			TriggeredCount: triggeredCount,
			AvgReturnByDay: avgByDay,
			WinRateByDay:   winRateByDay,
		},
		Results: results,
	}, nil
}

// resolveAsOf maps the request cutoff to unix seconds. Exactly one of
// asOfDate (end of that day, UTC) or asOfTs must be supplied.
func resolveAsOf(req dto.BacktestRequest) (int64, *dto.ApiError) {
	if req.AsOfTs != nil && req.AsOfDate != "" {
		return 0, dto.InvalidRequest("Provide exactly one of asOfDate or asOfTs.", nil)
	}
	if req.AsOfTs != nil {
		return *req.AsOfTs, nil
	}
	if req.AsOfDate != "" {
		ts, err := utils.ParseDateEndUnix(req.AsOfDate)
		if err != nil {
			return 0, dto.InvalidRequest("Invalid asOfDate format. Expected YYYY-MM-DD.", map[string]string{"asOfDate": req.AsOfDate})
		}
		return ts, nil
	}
	return 0, dto.InvalidRequest("Provide exactly one of asOfDate or asOfTs.", nil)
}
