package strategy

import (
	"math"

	"pullback-trading/internal/dto"
)

// BucketCounts tallies forward returns into the four fixed magnitude
// buckets.
type BucketCounts struct {
	DownGt5  int
	Down0To5 int
	Up0To5   int
	UpGt5    int
}

// RangeCounts accumulates one ticker's range backtest. Per-day slices are
// indexed day-1. Workers each build their own RangeCounts and the service
// merges them single-threaded, so no locking is needed.
type RangeCounts struct {
	EvaluatedBars   int
	TriggeredEvents int
	Samples         []int
	Wins            []int
	Buckets         []BucketCounts
}

func NewRangeCounts(horizonBars int) RangeCounts {
	return RangeCounts{
		Samples: make([]int, horizonBars),
		Wins:    make([]int, horizonBars),
		Buckets: make([]BucketCounts, horizonBars),
	}
}

// Merge adds other into c. Both must share the same horizon.
func (c *RangeCounts) Merge(other RangeCounts) {
	c.EvaluatedBars += other.EvaluatedBars
	c.TriggeredEvents += other.TriggeredEvents
	for i := range c.Samples {
		c.Samples[i] += other.Samples[i]
		c.Wins[i] += other.Wins[i]
		c.Buckets[i].DownGt5 += other.Buckets[i].DownGt5
		c.Buckets[i].Down0To5 += other.Buckets[i].Down0To5
		c.Buckets[i].Up0To5 += other.Buckets[i].Up0To5
		c.Buckets[i].UpGt5 += other.Buckets[i].UpGt5
	}
}

// RunRangeBacktest treats every hit bar inside [startTs, endTs] as an
// independent event (no cooldown, no deduplication across consecutive hit
// days) and accumulates per-day sample, win, and bucket counters.
//
// The hit series is computed once for the whole history and then scanned,
// so the cost is linear in total bars rather than (days in range x bars).
func RunRangeBacktest(bars []dto.Bar, p Params, startTs, endTs int64, horizonBars int, entry EntryExecution, bucketThreshold float64) RangeCounts {
	counts := NewRangeCounts(horizonBars)
	if len(bars) == 0 || horizonBars < 1 {
		return counts
	}

	startIdx := LocateRangeStart(bars, startTs)
	endIdx := LocateAsOf(bars, endTs)
	if endIdx < 0 || startIdx >= len(bars) || endIdx < startIdx {
		return counts
	}

	hs := ComputeHitSeries(bars, p)

	evalStart := startIdx
	if warmup := hs.Required - 1; evalStart < warmup {
		evalStart = warmup
	}
	if evalStart > endIdx {
		return counts
	}

	// Bucket boundaries are inclusive per the documented rule; the
	// tolerance keeps boundary returns (exactly -5%, 0%, +5%) in their
	// specified bucket despite float noise.
	tol := math.Max(p.Eps, 1e-12)

	for asOfIdx := evalStart; asOfIdx <= endIdx; asOfIdx++ {
		counts.EvaluatedBars++
		if !hs.Hit[asOfIdx] {
			continue
		}
		counts.TriggeredEvents++

		var entryPrice float64
		switch entry {
		case EntryClose:
			entryPrice = bars[asOfIdx].Close
		case EntryNextOpen:
			if asOfIdx+1 >= len(bars) {
				// Triggered but nothing to enter on; the event
				// contributes no samples.
				continue
			}
			entryPrice = bars[asOfIdx+1].Open
		default:
			continue
		}
		if math.IsNaN(entryPrice) || entryPrice <= 0 {
			continue
		}

		for day := 1; day <= horizonBars; day++ {
			fwdIdx := asOfIdx + day
			if fwdIdx >= len(bars) {
				break
			}
			ret := bars[fwdIdx].Close/entryPrice - 1

			counts.Samples[day-1]++
			if ret > 0 {
				counts.Wins[day-1]++
			}

			switch {
			case ret <= -bucketThreshold+tol:
				counts.Buckets[day-1].DownGt5++
			case ret < -tol:
				counts.Buckets[day-1].Down0To5++
			case ret <= bucketThreshold+tol:
				counts.Buckets[day-1].Up0To5++
			default:
				counts.Buckets[day-1].UpGt5++
			}
		}
	}

	return counts
}
