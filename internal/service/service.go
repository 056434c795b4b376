package service

import (
	"math"

	"pullback-trading/config"
	"pullback-trading/internal/dto"
	"pullback-trading/internal/repository"
	"pullback-trading/pkg/logger"
	"pullback-trading/pkg/utils"
)

type Service struct {
	ScreenerService      ScreenerService
	BacktestService      BacktestService
	RangeBacktestService RangeBacktestService
	RefreshService       RefreshService
}

func NewService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) *Service {
	return &Service{
		ScreenerService:      NewScreenerService(cfg, log, repo),
		BacktestService:      NewBacktestService(cfg, log, repo),
		RangeBacktestService: NewRangeBacktestService(cfg, log, repo),
		RefreshService:       NewRefreshService(cfg, log, repo),
	}
}

// resolveTimeframe maps a request timeframe name (or the configured
// default when empty) to its range/interval pair.
func resolveTimeframe(cfg *config.Config, name string) (config.Timeframe, *dto.ApiError) {
	if name == "" {
		name = cfg.Scheduler.DefaultTimeframe
	}
	tf, ok := cfg.TimeframeByName(name)
	if !ok {
		return config.Timeframe{}, dto.NotFound("Timeframe not supported.", map[string]string{"timeframe": name})
	}
	return tf, nil
}

// resolveUniverse unions the configured universe with request tickers,
// preserving order and dropping duplicates.
func resolveUniverse(repo repository.UniverseRepository, extra []string) ([]string, map[string]string, *dto.ApiError) {
	defaults, err := repo.Load()
	if err != nil {
		return nil, nil, dto.NewApiError(500, dto.ErrCodeInternal, "Failed to load universe file.", err.Error())
	}

	nameMap := make(map[string]string, len(defaults))
	symbols := make([]string, 0, len(defaults)+len(extra))
	for _, t := range defaults {
		nameMap[t.Symbol] = t.Name
		symbols = append(symbols, t.Symbol)
	}
	symbols = append(symbols, extra...)
	symbols = utils.UniqueSymbols(symbols)

	if len(symbols) == 0 {
		return nil, nil, dto.InvalidRequest("tickers is required (default list empty).", nil)
	}
	return symbols, nameMap, nil
}

// resolveParams merges request overrides into configured defaults and
// validates before any computation starts.
func resolveParams(cfg config.Strategy, patch *dto.StrategyParamsPatch) (dto.StrategyParamsModel, *dto.ApiError) {
	model := dto.ParamsFromConfig(cfg).Apply(patch)
	if apiErr := model.Validate(); apiErr != nil {
		return dto.StrategyParamsModel{}, apiErr
	}
	return model, nil
}

// floatPtr maps NaN to nil for JSON output.
func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
