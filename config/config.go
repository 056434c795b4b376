package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger        `mapstructure:"logger"`
	API          API           `mapstructure:"api"`
	Cache        Cache         `mapstructure:"cache"`
	Scheduler    Scheduler     `mapstructure:"scheduler"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	Universe     Universe      `mapstructure:"universe"`
	Strategy     Strategy      `mapstructure:"strategy"`
	Timeframes   []Timeframe   `mapstructure:"timeframes"`
	Screener     Screener      `mapstructure:"screener"`
	Backtest     Backtest      `mapstructure:"backtest"`
	RangeBT      RangeBacktest `mapstructure:"range_backtest"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Scheduler struct {
	RefreshCron      string `mapstructure:"refresh_cron"`
	MaxConcurrency   int    `mapstructure:"max_concurrency"`
	RefreshOnStart   bool   `mapstructure:"refresh_on_start"`
	DefaultTimeframe string `mapstructure:"default_timeframe"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Universe struct {
	File string `mapstructure:"file"`
}

// Strategy holds the low-volume pullback parameter defaults. Requests may
// override any of them per call.
type Strategy struct {
	FastMA            int     `mapstructure:"fast_ma"`
	SlowMA            int     `mapstructure:"slow_ma"`
	LongMA            int     `mapstructure:"long_ma"`
	LongMASlopeWindow int     `mapstructure:"long_ma_slope_window"`
	LongMASlopeMinPct float64 `mapstructure:"long_ma_slope_min_pct"`
	VolAvgWindow      int     `mapstructure:"vol_avg_window"`
	VolRatioMax       float64 `mapstructure:"vol_ratio_max"`
	MinBodyPct        float64 `mapstructure:"min_body_pct"`
	MinRangePct       float64 `mapstructure:"min_range_pct"`
	Eps               float64 `mapstructure:"eps"`
}

// Timeframe pairs a public name with the Yahoo Finance range/interval it
// resolves to, e.g. 6M_1d -> (6m, 1d).
type Timeframe struct {
	Name     string `mapstructure:"name"`
	Range    string `mapstructure:"range"`
	Interval string `mapstructure:"interval"`
}

type Screener struct {
	RecentBars    int  `mapstructure:"recent_bars"`
	OnlyTriggered bool `mapstructure:"only_triggered"`
	AutoRefresh   bool `mapstructure:"auto_refresh_if_missing"`
}

type Backtest struct {
	RecentBars     int    `mapstructure:"recent_bars"`
	HorizonBars    int    `mapstructure:"horizon_bars"`
	EntryExecution string `mapstructure:"entry_execution"`
	OnlyTriggered  bool   `mapstructure:"only_triggered"`
}

type RangeBacktest struct {
	HorizonBars        int     `mapstructure:"horizon_bars"`
	EntryExecution     string  `mapstructure:"entry_execution"`
	BucketThresholdPct float64 `mapstructure:"bucket_threshold_pct"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("cache.default_expiration", "30m")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("scheduler.refresh_cron", "0 * * * *")
	viper.SetDefault("scheduler.max_concurrency", 5)
	viper.SetDefault("scheduler.refresh_on_start", false)
	viper.SetDefault("scheduler.default_timeframe", "6M_1d")
	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", "10s")
	viper.SetDefault("yahoo_finance.max_request_per_minute", 60)
	viper.SetDefault("universe.file", "universe.yml")

	viper.SetDefault("strategy.fast_ma", 5)
	viper.SetDefault("strategy.slow_ma", 10)
	viper.SetDefault("strategy.long_ma", 60)
	viper.SetDefault("strategy.long_ma_slope_window", 3)
	viper.SetDefault("strategy.long_ma_slope_min_pct", 0.0)
	viper.SetDefault("strategy.vol_avg_window", 5)
	viper.SetDefault("strategy.vol_ratio_max", 0.5)
	viper.SetDefault("strategy.min_body_pct", 0.002)
	viper.SetDefault("strategy.min_range_pct", 0.0)
	viper.SetDefault("strategy.eps", 1e-12)

	viper.SetDefault("screener.recent_bars", 3)
	viper.SetDefault("screener.only_triggered", false)
	viper.SetDefault("screener.auto_refresh_if_missing", true)
	viper.SetDefault("backtest.recent_bars", 3)
	viper.SetDefault("backtest.horizon_bars", 5)
	viper.SetDefault("backtest.entry_execution", "close")
	viper.SetDefault("backtest.only_triggered", true)
	viper.SetDefault("range_backtest.horizon_bars", 5)
	viper.SetDefault("range_backtest.entry_execution", "close")
	viper.SetDefault("range_backtest.bucket_threshold_pct", 0.05)
}

func defaultTimeframes() []Timeframe {
	return []Timeframe{
		{Name: "1M_1d", Range: "1m", Interval: "1d"},
		{Name: "3M_1d", Range: "3m", Interval: "1d"},
		{Name: "6M_1d", Range: "6m", Interval: "1d"},
		{Name: "1Y_1d", Range: "1y", Interval: "1d"},
	}
}

func Load() (*Config, error) {
	// .env is optional; viper picks the variables up afterwards.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Timeframes) == 0 {
		cfg.Timeframes = defaultTimeframes()
	}

	return &cfg, nil
}

// TimeframeByName resolves a timeframe name such as 6M_1d. The boolean is
// false when the name is not configured.
func (c *Config) TimeframeByName(name string) (Timeframe, bool) {
	for _, tf := range c.Timeframes {
		if tf.Name == name {
			return tf, true
		}
	}
	return Timeframe{}, false
}
