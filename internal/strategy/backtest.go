package strategy

import (
	"math"

	"pullback-trading/internal/dto"
)

// ForwardPoint is one step of the forward return path after an entry.
type ForwardPoint struct {
	Day    int
	Ts     int64
	Close  float64
	Return float64
}

// PointResult is the per-ticker outcome of a single-point backtest.
// ErrCode carries a per-ticker code; Triggered=false with an empty
// ErrCode means no signal in the window, which is a normal outcome.
type PointResult struct {
	Triggered  bool
	ErrCode    string
	EndIdx     int
	EndTs      int64
	SignalIdx  int
	SignalTs   int64
	EntryPrice float64
	VolRatio   float64
	BodyPct    float64
	Forward    []ForwardPoint
}

// RunPointBacktest locates the most recent hit at or before asOfTs within
// recentBars bars and walks forward up to horizonBars bars. The forward
// path truncates at series end; a partial path is valid and reported as
// is.
func RunPointBacktest(bars []dto.Bar, p Params, asOfTs int64, recentBars, horizonBars int, entry EntryExecution) PointResult {
	res := PointResult{
		EndIdx:     -1,
		SignalIdx:  -1,
		EntryPrice: math.NaN(),
		VolRatio:   math.NaN(),
		BodyPct:    math.NaN(),
	}

	if len(bars) == 0 {
		res.ErrCode = dto.ErrCodeNoBars
		return res
	}

	endIdx := LocateAsOf(bars, asOfTs)
	if endIdx < 0 {
		res.ErrCode = dto.ErrCodeAsOfOutOfRange
		return res
	}
	res.EndIdx = endIdx
	res.EndTs = bars[endIdx].Timestamp

	hs := ComputeHitSeries(bars, p)
	if endIdx+1 < hs.Required {
		res.ErrCode = dto.ErrCodeInsufficientBars
		return res
	}

	hits := ScanRecentHits(hs, endIdx, recentBars)
	if len(hits) == 0 {
		return res
	}

	signalIdx := hits[len(hits)-1]
	res.Triggered = true
	res.SignalIdx = signalIdx
	res.SignalTs = bars[signalIdx].Timestamp
	res.VolRatio = hs.VolRatio[signalIdx]
	res.BodyPct = hs.BodyPct[signalIdx]

	switch entry {
	case EntryClose:
		res.EntryPrice = bars[signalIdx].Close
	case EntryNextOpen:
		if signalIdx+1 >= len(bars) {
			// Entry located but nothing to enter on; still a
			// triggered signal, zero-length forward path.
			res.ErrCode = dto.ErrCodeNoForwardBars
			return res
		}
		res.EntryPrice = bars[signalIdx+1].Open
	default:
		res.Triggered = false
		res.ErrCode = dto.ErrCodeInvalidAsOf
		return res
	}

	for day := 1; day <= horizonBars; day++ {
		idx := signalIdx + day
		if idx >= len(bars) {
			break
		}
		ret := 0.0
		if res.EntryPrice != 0 {
			ret = bars[idx].Close/res.EntryPrice - 1
		}
		res.Forward = append(res.Forward, ForwardPoint{
			Day:    day,
			Ts:     bars[idx].Timestamp,
			Close:  bars[idx].Close,
			Return: ret,
		})
	}

	return res
}
