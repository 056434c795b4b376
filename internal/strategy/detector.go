package strategy

import (
	"math"

	"pullback-trading/internal/dto"
)

// HitSeries is the per-bar detector output, aligned to bar index.
// VolRatio and BodyPct are diagnostics; NaN marks "unavailable".
type HitSeries struct {
	Hit      []bool
	VolRatio []float64
	BodyPct  []float64
	// Required is the warm-up length; bars before index Required-1 are
	// always non-hits.
	Required int
}

// ComputeHitSeries evaluates the low-volume pullback predicate for every
// bar in one pass. All three consumers (screener, point backtest, range
// backtest) call it identically; none recompute indicators per as-of
// date.
//
// A bar is a hit when all of the following hold:
//  1. uptrend: close above fast and slow MA, fast above slow, and the
//     long MA above its value slopeWindow bars ago by at least
//     slopeMinPct;
//  2. bearish candle: close below open with body >= minBodyPct (and
//     range >= minRangePct when configured);
//  3. volume contraction: volume at or below volRatioMax of the
//     baseline average of the previous volAvgWindow bars.
//
// Any unavailable indicator fails its condition.
func ComputeHitSeries(bars []dto.Bar, p Params) HitSeries {
	n := len(bars)
	hs := HitSeries{
		Hit:      make([]bool, n),
		VolRatio: make([]float64, n),
		BodyPct:  make([]float64, n),
		Required: p.RequiredBars(),
	}

	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	fastMA := SMA(closes, p.FastMA)
	slowMA := SMA(closes, p.SlowMA)
	longMA := SMA(closes, p.LongMA)
	volAvg := VolumeAvg(volumes, p.VolAvgWindow)

	for t, bar := range bars {
		hs.BodyPct[t] = BodyPct(bar.Open, bar.Close, p.Eps)

		hs.VolRatio[t] = math.NaN()
		if !math.IsNaN(volAvg[t]) && volAvg[t] > p.Eps && bar.Volume > 0 {
			hs.VolRatio[t] = bar.Volume / volAvg[t]
		}

		// Warm-up bars are explicitly non-hits.
		if t < hs.Required-1 {
			continue
		}

		slopeIdx := t - p.LongMASlopeWindow
		if slopeIdx < 0 {
			continue
		}
		if math.IsNaN(fastMA[t]) || math.IsNaN(slowMA[t]) || math.IsNaN(longMA[t]) || math.IsNaN(longMA[slopeIdx]) {
			continue
		}

		trendOK := bar.Close > fastMA[t] &&
			bar.Close > slowMA[t] &&
			fastMA[t] > slowMA[t] &&
			longMA[t] > longMA[slopeIdx]*(1+p.LongMASlopeMinPct)
		if !trendOK {
			continue
		}

		bearishOK := bar.Close < bar.Open && hs.BodyPct[t] >= p.MinBodyPct
		if bearishOK && p.MinRangePct > 0 {
			bearishOK = RangePct(bar.High, bar.Low, bar.Open, p.Eps) >= p.MinRangePct
		}
		if !bearishOK {
			continue
		}

		if math.IsNaN(hs.VolRatio[t]) || hs.VolRatio[t] > p.VolRatioMax {
			continue
		}

		hs.Hit[t] = true
	}

	return hs
}
