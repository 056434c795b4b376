package dto

import "pullback-trading/config"

// StrategyParamsModel is the wire shape of the low-volume pullback
// parameters. Field names follow the public API (camelCase).
type StrategyParamsModel struct {
	FastMA            int     `json:"fastMA"`
	SlowMA            int     `json:"slowMA"`
	LongMA            int     `json:"longMA"`
	LongMASlopeWindow int     `json:"longMaSlopeWindow"`
	LongMASlopeMinPct float64 `json:"longMaSlopeMinPct"`
	VolAvgWindow      int     `json:"volAvgWindow"`
	VolRatioMax       float64 `json:"volRatioMax"`
	MinBodyPct        float64 `json:"minBodyPct"`
	MinRangePct       float64 `json:"minRangePct"`
	Eps               float64 `json:"eps"`
}

// StrategyParamsPatch carries per-request overrides; nil fields keep the
// configured default.
type StrategyParamsPatch struct {
	FastMA            *int     `json:"fastMA,omitempty"`
	SlowMA            *int     `json:"slowMA,omitempty"`
	LongMA            *int     `json:"longMA,omitempty"`
	LongMASlopeWindow *int     `json:"longMaSlopeWindow,omitempty"`
	LongMASlopeMinPct *float64 `json:"longMaSlopeMinPct,omitempty"`
	VolAvgWindow      *int     `json:"volAvgWindow,omitempty"`
	VolRatioMax       *float64 `json:"volRatioMax,omitempty"`
	MinBodyPct        *float64 `json:"minBodyPct,omitempty"`
	MinRangePct       *float64 `json:"minRangePct,omitempty"`
	Eps               *float64 `json:"eps,omitempty"`
}

// ParamsFromConfig builds the wire model from configured defaults.
func ParamsFromConfig(cfg config.Strategy) StrategyParamsModel {
	return StrategyParamsModel{
		FastMA:            cfg.FastMA,
		SlowMA:            cfg.SlowMA,
		LongMA:            cfg.LongMA,
		LongMASlopeWindow: cfg.LongMASlopeWindow,
		LongMASlopeMinPct: cfg.LongMASlopeMinPct,
		VolAvgWindow:      cfg.VolAvgWindow,
		VolRatioMax:       cfg.VolRatioMax,
		MinBodyPct:        cfg.MinBodyPct,
		MinRangePct:       cfg.MinRangePct,
		Eps:               cfg.Eps,
	}
}

// Apply merges non-nil overrides into the model.
func (m StrategyParamsModel) Apply(patch *StrategyParamsPatch) StrategyParamsModel {
	if patch == nil {
		return m
	}
	if patch.FastMA != nil {
		m.FastMA = *patch.FastMA
	}
	if patch.SlowMA != nil {
		m.SlowMA = *patch.SlowMA
	}
	if patch.LongMA != nil {
		m.LongMA = *patch.LongMA
	}
	if patch.LongMASlopeWindow != nil {
		m.LongMASlopeWindow = *patch.LongMASlopeWindow
	}
	if patch.LongMASlopeMinPct != nil {
		m.LongMASlopeMinPct = *patch.LongMASlopeMinPct
	}
	if patch.VolAvgWindow != nil {
		m.VolAvgWindow = *patch.VolAvgWindow
	}
	if patch.VolRatioMax != nil {
		m.VolRatioMax = *patch.VolRatioMax
	}
	if patch.MinBodyPct != nil {
		m.MinBodyPct = *patch.MinBodyPct
	}
	if patch.MinRangePct != nil {
		m.MinRangePct = *patch.MinRangePct
	}
	if patch.Eps != nil {
		m.Eps = *patch.Eps
	}
	return m
}

// Validate rejects parameter combinations before any computation starts.
func (m StrategyParamsModel) Validate() *ApiError {
	if m.FastMA < 1 || m.SlowMA < 1 || m.LongMA < 1 {
		return InvalidRequest("MA windows must be positive", m)
	}
	if m.SlowMA <= m.FastMA {
		return InvalidRequest("slowMA must be greater than fastMA", m)
	}
	if m.LongMASlopeWindow < 1 {
		return InvalidRequest("longMaSlopeWindow must be positive", m)
	}
	if m.VolAvgWindow < 1 {
		return InvalidRequest("volAvgWindow must be positive", m)
	}
	if m.VolRatioMax <= 0 {
		return InvalidRequest("volRatioMax must be positive", m)
	}
	if m.MinBodyPct < 0 || m.MinRangePct < 0 {
		return InvalidRequest("minBodyPct and minRangePct must not be negative", m)
	}
	if m.Eps <= 0 {
		return InvalidRequest("eps must be positive", m)
	}
	return nil
}
