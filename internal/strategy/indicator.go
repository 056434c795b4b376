package strategy

import "math"

// Indicator helpers are pure functions over slices. Under-windowed indices
// are NaN, never an error; callers must treat NaN as "indicator
// unavailable" and fail the condition that needs it.

// SMA returns the n-period simple moving average. values[t] contributes to
// SMA[t]; indices before n-1 are NaN.
func SMA(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if n < 1 || len(values) < n {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= n {
			sum -= values[i-n]
		}
		if i >= n-1 {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// VolumeAvg returns the mean of volumes[t-window .. t-1]. The current bar
// is excluded so an outlier volume cannot contaminate its own baseline.
// Indices before window are NaN.
func VolumeAvg(volumes []float64, window int) []float64 {
	out := make([]float64, len(volumes))
	for i := range out {
		out[i] = math.NaN()
	}
	if window < 1 || len(volumes) <= window {
		return out
	}

	var sum float64
	for i := 0; i < window; i++ {
		sum += volumes[i]
	}
	for t := window; t < len(volumes); t++ {
		out[t] = sum / float64(window)
		sum += volumes[t] - volumes[t-window]
	}
	return out
}

// BodyPct is the candle body relative to its open.
func BodyPct(open, close, eps float64) float64 {
	return math.Abs(close-open) / math.Max(open, eps)
}

// RangePct is the high-low span relative to the open.
func RangePct(high, low, open, eps float64) float64 {
	return (high - low) / math.Max(open, eps)
}

// CandleRange is the high-low span with an eps floor.
func CandleRange(high, low, eps float64) float64 {
	return math.Max(high-low, eps)
}

// CloseNearHighRatio is 0 when the close sits on the high and approaches 1
// as the close sinks to the low.
func CloseNearHighRatio(high, close, candleRange float64) float64 {
	return (high - close) / candleRange
}
