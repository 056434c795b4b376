package strategy

import "pullback-trading/internal/dto"

// EntryExecution selects the backtest entry price: the signal bar's close
// or the following bar's open.
type EntryExecution string

const (
	EntryClose    EntryExecution = "close"
	EntryNextOpen EntryExecution = "next_open"
)

func (e EntryExecution) Valid() bool {
	return e == EntryClose || e == EntryNextOpen
}

// Params configures the low-volume pullback detector. It is passed by
// value into every engine call; there is no ambient state.
type Params struct {
	FastMA            int
	SlowMA            int
	LongMA            int
	LongMASlopeWindow int
	LongMASlopeMinPct float64
	VolAvgWindow      int
	VolRatioMax       float64
	MinBodyPct        float64
	MinRangePct       float64
	Eps               float64
}

// ParamsFrom converts the wire model into engine params.
func ParamsFrom(m dto.StrategyParamsModel) Params {
	return Params{
		FastMA:            m.FastMA,
		SlowMA:            m.SlowMA,
		LongMA:            m.LongMA,
		LongMASlopeWindow: m.LongMASlopeWindow,
		LongMASlopeMinPct: m.LongMASlopeMinPct,
		VolAvgWindow:      m.VolAvgWindow,
		VolRatioMax:       m.VolRatioMax,
		MinBodyPct:        m.MinBodyPct,
		MinRangePct:       m.MinRangePct,
		Eps:               m.Eps,
	}
}

// RequiredBars is the minimum history before any bar can be a hit: the
// volume baseline needs one bar beyond its window, and the long-MA slope
// reaches back slopeWindow bars behind a full long-MA window.
func (p Params) RequiredBars() int {
	required := p.VolAvgWindow + 1
	if v := p.LongMA + p.LongMASlopeWindow; v > required {
		required = v
	}
	if p.SlowMA > required {
		required = p.SlowMA
	}
	if p.FastMA > required {
		required = p.FastMA
	}
	return required
}
