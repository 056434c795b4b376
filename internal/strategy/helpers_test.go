package strategy

import "pullback-trading/internal/dto"

const daySeconds = int64(86400)

// Fixtures use a fixed epoch so timestamps are deterministic.
const baseTs = int64(1_600_000_000)

func bar(i int, open, close, volume float64) dto.Bar {
	high := open
	if close > high {
		high = close
	}
	low := open
	if close < low {
		low = close
	}
	return dto.Bar{
		Timestamp: baseTs + int64(i)*daySeconds,
		Open:      open,
		High:      high + 0.5,
		Low:       low - 0.5,
		Close:     close,
		Volume:    volume,
	}
}

// testParams keeps the documented defaults but shortens the slope window
// to 1 so a 61-bar series is enough history for a hit at index 60.
func testParams() Params {
	return Params{
		FastMA:            5,
		SlowMA:            10,
		LongMA:            60,
		LongMASlopeWindow: 1,
		LongMASlopeMinPct: 0,
		VolAvgWindow:      5,
		VolRatioMax:       0.5,
		MinBodyPct:        0.002,
		Eps:               1e-12,
	}
}

// smallParams shrinks every window so compact fixtures stay readable.
// Required history is 6 bars, so index 5 is the first bar that can hit.
func smallParams() Params {
	return Params{
		FastMA:            2,
		SlowMA:            3,
		LongMA:            5,
		LongMASlopeWindow: 1,
		LongMASlopeMinPct: 0,
		VolAvgWindow:      2,
		VolRatioMax:       0.5,
		MinBodyPct:        0.002,
		Eps:               1e-12,
	}
}

// uptrendBars builds n bars with closes rising one point per bar from 100
// and constant volume 1000.
func uptrendBars(n int) []dto.Bar {
	bars := make([]dto.Bar, 0, n)
	for i := 0; i < n; i++ {
		close := 100.0 + float64(i)
		bars = append(bars, bar(i, close-0.5, close, 1000))
	}
	return bars
}

// pullbackAt appends a bearish low-volume bar (1% body, 40% of baseline
// volume) after k uptrend bars, then appends forward bars with the given
// closes. With smallParams the pullback bar is a hit when k >= 5.
func pullbackAt(k int, forwardCloses ...float64) []dto.Bar {
	bars := uptrendBars(k)
	open := 100.0 + float64(k) + 1.5
	bars = append(bars, bar(k, open, open*0.99, 400))
	for j, close := range forwardCloses {
		bars = append(bars, bar(k+1+j, close, close, 1000))
	}
	return bars
}
