package dto

// ScreenRequest asks which universe tickers fired the low-volume pullback
// pattern within the last recentBars bars.
type ScreenRequest struct {
	Timeframe     string               `json:"timeframe"`
	Tickers       []string             `json:"tickers"`
	OnlyTriggered *bool                `json:"onlyTriggered"`
	RecentBars    *int                 `json:"recentBars" validate:"omitempty,min=1"`
	Params        *StrategyParamsPatch `json:"params"`
}

// Hit is one detected signal bar inside the scan window.
type Hit struct {
	BarIndex int      `json:"barIndex"`
	AsOf     int64    `json:"asOf"`
	VolRatio *float64 `json:"volRatio"`
	BodyPct  *float64 `json:"bodyPct"`
}

// ScreenResult is the per-ticker screener outcome. Error carries one of
// the per-ticker codes; a false Triggered with no error means no signal.
type ScreenResult struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name,omitempty"`
	Triggered bool     `json:"triggered"`
	AsOf      *int64   `json:"asOf,omitempty"`
	BarIndex  *int     `json:"barIndex,omitempty"`
	VolRatio  *float64 `json:"volRatio,omitempty"`
	BodyPct   *float64 `json:"bodyPct,omitempty"`
	Hits      []Hit    `json:"hits"`
	Error     string   `json:"error,omitempty"`
}

type ScreenResponse struct {
	Timeframe string              `json:"timeframe"`
	Params    StrategyParamsModel `json:"params"`
	Results   []ScreenResult      `json:"results"`
}

// BacktestRequest runs a single-point backtest: exactly one of AsOfDate
// (YYYY-MM-DD) or AsOfTs must be provided.
type BacktestRequest struct {
	Timeframe      string               `json:"timeframe"`
	Tickers        []string             `json:"tickers"`
	AsOfDate       string               `json:"asOfDate"`
	AsOfTs         *int64               `json:"asOfTs"`
	RecentBars     *int                 `json:"recentBars" validate:"omitempty,min=1"`
	HorizonBars    *int                 `json:"horizonBars" validate:"omitempty,min=1"`
	EntryExecution string               `json:"entryExecution" validate:"omitempty,oneof=close next_open"`
	OnlyTriggered  *bool                `json:"onlyTriggered"`
	Params         *StrategyParamsPatch `json:"params"`
}

// SignalEvent describes the hit selected as backtest entry.
type SignalEvent struct {
	BarIndex   int      `json:"barIndex"`
	AsOfTs     int64    `json:"asOfTs"`
	EntryPrice float64  `json:"entryPrice"`
	VolRatio   *float64 `json:"volRatio"`
	BodyPct    *float64 `json:"bodyPct"`
}

// ForwardPoint is one step of the forward return path.
type ForwardPoint struct {
	Day    int     `json:"day"`
	Ts     int64   `json:"ts"`
	Close  float64 `json:"close"`
	Return float64 `json:"return"`
}

type BacktestResult struct {
	Symbol    string         `json:"symbol"`
	Name      string         `json:"name,omitempty"`
	Triggered bool           `json:"triggered"`
	Signal    *SignalEvent   `json:"signal,omitempty"`
	Forward   []ForwardPoint `json:"forward,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type BacktestSummary struct {
	UniverseSize   int             `json:"universeSize"`
	EvaluatedCount int             `json:"evaluatedCount"`
	TriggeredCount int             `json:"triggeredCount"`
	AvgReturnByDay map[int]float64 `json:"avgReturnByDay"`
	WinRateByDay   map[int]float64 `json:"winRateByDay"`
}

type BacktestResponse struct {
	Timeframe      string              `json:"timeframe"`
	AsOfTs         int64               `json:"asOfTs"`
	HorizonBars    int                 `json:"horizonBars"`
	EntryExecution string              `json:"entryExecution"`
	Params         StrategyParamsModel `json:"params"`
	Summary        BacktestSummary     `json:"summary"`
	Results        []BacktestResult    `json:"results"`
}

// RangeBacktestRequest treats every bar in [startDate, endDate] as an
// independent as-of point across the universe.
type RangeBacktestRequest struct {
	Timeframe      string               `json:"timeframe"`
	Tickers        []string             `json:"tickers"`
	StartDate      string               `json:"startDate" validate:"required"`
	EndDate        string               `json:"endDate" validate:"required"`
	HorizonBars    *int                 `json:"horizonBars" validate:"omitempty,min=1"`
	EntryExecution string               `json:"entryExecution" validate:"omitempty,oneof=close next_open"`
	Params         *StrategyParamsPatch `json:"params"`
}

// BucketRate is the per-day distribution of forward returns over the four
// fixed magnitude buckets. Rates sum to 1 for days with samples.
type BucketRate struct {
	DownGt5  float64 `json:"down_gt_5"`
	Down0To5 float64 `json:"down_0_5"`
	Up0To5   float64 `json:"up_0_5"`
	UpGt5    float64 `json:"up_gt_5"`
}

type RangeBacktestSummary struct {
	UniverseSize     int                `json:"universeSize"`
	EvaluatedBars    int                `json:"evaluatedBars"`
	TriggeredEvents  int                `json:"triggeredEvents"`
	SampleCountByDay map[int]int        `json:"sampleCountByDay"`
	WinRateByDay     map[int]float64    `json:"winRateByDay"`
	BucketRateByDay  map[int]BucketRate `json:"bucketRateByDay"`
}

type RangeBacktestResponse struct {
	Timeframe      string               `json:"timeframe"`
	StartTs        int64                `json:"startTs"`
	EndTs          int64                `json:"endTs"`
	HorizonBars    int                  `json:"horizonBars"`
	EntryExecution string               `json:"entryExecution"`
	Params         StrategyParamsModel  `json:"params"`
	Summary        RangeBacktestSummary `json:"summary"`
}
