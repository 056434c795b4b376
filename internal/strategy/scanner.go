package strategy

import (
	"sort"

	"pullback-trading/internal/dto"
)

// ScanRecentHits returns the ascending indices of hit bars within the
// window [endIdx-recentBars+1, endIdx], clipped to the warm-up boundary.
// Degenerate inputs yield an empty result, not an error.
func ScanRecentHits(hs HitSeries, endIdx, recentBars int) []int {
	if recentBars <= 0 || endIdx < 0 || endIdx >= len(hs.Hit) {
		return nil
	}

	start := endIdx - recentBars + 1
	if warmup := hs.Required - 1; start < warmup {
		start = warmup
	}
	if start < 0 {
		start = 0
	}

	var hits []int
	for i := start; i <= endIdx; i++ {
		if hs.Hit[i] {
			hits = append(hits, i)
		}
	}
	return hits
}

// LocateAsOf returns the index of the last bar with Timestamp <= ts, or
// -1 when ts precedes the first bar.
func LocateAsOf(bars []dto.Bar, ts int64) int {
	return sort.Search(len(bars), func(i int) bool {
		return bars[i].Timestamp > ts
	}) - 1
}

// LocateRangeStart returns the index of the first bar with Timestamp >=
// ts, which may be len(bars) when every bar precedes ts.
func LocateRangeStart(bars []dto.Bar, ts int64) int {
	return sort.Search(len(bars), func(i int) bool {
		return bars[i].Timestamp >= ts
	})
}
