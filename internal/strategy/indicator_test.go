package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4}, 2)
	require.Len(t, out, 4)
	assert.True(t, math.IsNaN(out[0]))
	assert.InDelta(t, 1.5, out[1], 1e-9)
	assert.InDelta(t, 2.5, out[2], 1e-9)
	assert.InDelta(t, 3.5, out[3], 1e-9)
}

func TestSMAShortInput(t *testing.T) {
	for _, v := range SMA([]float64{1, 2}, 3) {
		assert.True(t, math.IsNaN(v))
	}
	for _, v := range SMA([]float64{1, 2, 3}, 0) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestVolumeAvgExcludesCurrentBar(t *testing.T) {
	out := VolumeAvg([]float64{10, 10, 10, 10, 1000}, 2)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 10, out[2], 1e-9)
	assert.InDelta(t, 10, out[3], 1e-9)
	// The outlier at index 4 must not contaminate its own baseline.
	assert.InDelta(t, 10, out[4], 1e-9)
}

func TestVolumeAvgShortInput(t *testing.T) {
	for _, v := range VolumeAvg([]float64{10, 20}, 2) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestBodyPct(t *testing.T) {
	assert.InDelta(t, 0.01, BodyPct(100, 99, 1e-12), 1e-9)
	assert.InDelta(t, 0.01, BodyPct(100, 101, 1e-9), 1e-9)
}

func TestRangePct(t *testing.T) {
	assert.InDelta(t, 0.03, RangePct(102, 99, 100, 1e-12), 1e-9)
}

func TestCloseNearHighRatio(t *testing.T) {
	r := CandleRange(102, 98, 1e-12)
	assert.InDelta(t, 0.0, CloseNearHighRatio(102, 102, r), 1e-9)
	assert.InDelta(t, 1.0, CloseNearHighRatio(102, 98, r), 1e-9)
	assert.InDelta(t, 0.5, CloseNearHighRatio(102, 100, r), 1e-9)
}
