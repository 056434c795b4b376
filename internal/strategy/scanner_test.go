package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pullback-trading/internal/dto"
)

func TestScanRecentHits(t *testing.T) {
	bars := pullbackAt(5, 107, 108)
	hs := ComputeHitSeries(bars, smallParams())

	assert.Equal(t, []int{5}, ScanRecentHits(hs, 7, 3))
	assert.Equal(t, []int{5}, ScanRecentHits(hs, 5, 1))
	assert.Empty(t, ScanRecentHits(hs, 7, 2), "window [6,7] excludes the hit")
}

func TestScanRecentHitsClipsToWarmup(t *testing.T) {
	bars := pullbackAt(5, 107)
	hs := ComputeHitSeries(bars, smallParams())

	// A window reaching far before the warm-up boundary starts there.
	assert.Equal(t, []int{5}, ScanRecentHits(hs, 6, 100))
}

func TestScanRecentHitsDegenerateInputs(t *testing.T) {
	hs := ComputeHitSeries(pullbackAt(5), smallParams())

	assert.Empty(t, ScanRecentHits(hs, 5, 0))
	assert.Empty(t, ScanRecentHits(hs, -1, 3))
	assert.Empty(t, ScanRecentHits(hs, len(hs.Hit), 3))
}

func TestLocateAsOf(t *testing.T) {
	bars := []dto.Bar{
		{Timestamp: baseTs},
		{Timestamp: baseTs + daySeconds},
		{Timestamp: baseTs + 2*daySeconds},
	}

	assert.Equal(t, -1, LocateAsOf(bars, baseTs-1))
	assert.Equal(t, 0, LocateAsOf(bars, baseTs))
	assert.Equal(t, 0, LocateAsOf(bars, baseTs+daySeconds-1))
	assert.Equal(t, 1, LocateAsOf(bars, baseTs+daySeconds))
	assert.Equal(t, 2, LocateAsOf(bars, baseTs+10*daySeconds))
}

func TestLocateRangeStart(t *testing.T) {
	bars := []dto.Bar{
		{Timestamp: baseTs},
		{Timestamp: baseTs + daySeconds},
	}

	assert.Equal(t, 0, LocateRangeStart(bars, baseTs-1))
	assert.Equal(t, 0, LocateRangeStart(bars, baseTs))
	assert.Equal(t, 1, LocateRangeStart(bars, baseTs+1))
	assert.Equal(t, 2, LocateRangeStart(bars, baseTs+daySeconds+1))
}
