package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pullback-trading/config"
	"pullback-trading/internal/dto"
	"pullback-trading/internal/repository"
	"pullback-trading/pkg/logger"
)

const daySeconds = int64(86400)

// 2020-09-13T12:26:40Z; daily fixture bars land on consecutive dates.
const baseTs = int64(1_600_000_000)

var errUpstream = errors.New("upstream unavailable")

type stubUniverseRepo struct {
	tickers []dto.TickerInfo
	err     error
}

func (s *stubUniverseRepo) Load() ([]dto.TickerInfo, error) {
	return s.tickers, s.err
}

type stubMarketDataRepo struct {
	bars map[string][]dto.Bar
	errs map[string]error
}

func (s *stubMarketDataRepo) GetBars(_ context.Context, symbol string, _ config.Timeframe) ([]dto.Bar, error) {
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	return s.bars[symbol], nil
}

func (s *stubMarketDataRepo) Refresh(context.Context, []string, config.Timeframe) error {
	return nil
}

func testRepo(universe []dto.TickerInfo, bars map[string][]dto.Bar, errs map[string]error) *repository.Repository {
	return &repository.Repository{
		UniverseRepo:   &stubUniverseRepo{tickers: universe},
		MarketDataRepo: &stubMarketDataRepo{bars: bars, errs: errs},
	}
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// testConfig shrinks the detector windows so six bars of history are
// enough for a hit.
func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.Scheduler{
			MaxConcurrency:   4,
			DefaultTimeframe: "6M_1d",
		},
		Timeframes: []config.Timeframe{
			{Name: "6M_1d", Range: "6m", Interval: "1d"},
		},
		Strategy: config.Strategy{
			FastMA:            2,
			SlowMA:            3,
			LongMA:            5,
			LongMASlopeWindow: 1,
			VolAvgWindow:      2,
			VolRatioMax:       0.5,
			MinBodyPct:        0.002,
			Eps:               1e-12,
		},
		Screener: config.Screener{RecentBars: 3},
		Backtest: config.Backtest{
			RecentBars:     3,
			HorizonBars:    5,
			EntryExecution: "close",
			OnlyTriggered:  false,
		},
		RangeBT: config.RangeBacktest{
			HorizonBars:        5,
			EntryExecution:     "close",
			BucketThresholdPct: 0.05,
		},
	}
}

func fixtureBar(i int, open, close, volume float64) dto.Bar {
	high := open
	if close > high {
		high = close
	}
	low := open
	if close < low {
		low = close
	}
	return dto.Bar{
		Timestamp: baseTs + int64(i)*daySeconds,
		Open:      open,
		High:      high + 0.5,
		Low:       low - 0.5,
		Close:     close,
		Volume:    volume,
	}
}

func uptrendBars(n int) []dto.Bar {
	bars := make([]dto.Bar, 0, n)
	for i := 0; i < n; i++ {
		close := 100.0 + float64(i)
		bars = append(bars, fixtureBar(i, close-0.5, close, 1000))
	}
	return bars
}

// pullbackBars places a hit at index 5 (bearish 1% body, 40% volume) and
// appends the given forward closes.
func pullbackBars(forwardCloses ...float64) []dto.Bar {
	bars := uptrendBars(5)
	bars = append(bars, fixtureBar(5, 106.5, 106.5*0.99, 400))
	for j, close := range forwardCloses {
		bars = append(bars, fixtureBar(6+j, close, close, 1000))
	}
	return bars
}
