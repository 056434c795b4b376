package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pullback-trading/internal/dto"
)

func TestRangeBacktestRun(t *testing.T) {
	entry := 106.5 * 0.99
	universe := []dto.TickerInfo{{Symbol: "AAA"}, {Symbol: "BBB"}}
	repo := testRepo(universe, map[string][]dto.Bar{
		// One hit; day 1 dips a little, day 2 recovers a little.
		"AAA": pullbackBars(entry*0.98, entry*1.03),
		"BBB": uptrendBars(10),
	}, nil)
	svc := NewRangeBacktestService(testConfig(), testLogger(), repo)

	horizon := 2
	resp, err := svc.Run(context.Background(), dto.RangeBacktestRequest{
		StartDate:   "2020-09-01",
		EndDate:     "2020-10-01",
		HorizonBars: &horizon,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Summary.UniverseSize)
	// AAA evaluates bars 5..7, BBB bars 5..9.
	assert.Equal(t, 8, resp.Summary.EvaluatedBars)
	assert.Equal(t, 1, resp.Summary.TriggeredEvents)
	assert.Equal(t, map[int]int{1: 1, 2: 1}, resp.Summary.SampleCountByDay)

	assert.InDelta(t, 0.0, resp.Summary.WinRateByDay[1], 1e-9)
	assert.InDelta(t, 1.0, resp.Summary.WinRateByDay[2], 1e-9)

	day1 := resp.Summary.BucketRateByDay[1]
	assert.InDelta(t, 1.0, day1.Down0To5, 1e-9)
	day2 := resp.Summary.BucketRateByDay[2]
	assert.InDelta(t, 1.0, day2.Up0To5, 1e-9)
}

func TestRangeBacktestEmptyWindow(t *testing.T) {
	universe := []dto.TickerInfo{{Symbol: "AAA"}}
	repo := testRepo(universe, map[string][]dto.Bar{"AAA": uptrendBars(10)}, nil)
	svc := NewRangeBacktestService(testConfig(), testLogger(), repo)

	_, err := svc.Run(context.Background(), dto.RangeBacktestRequest{
		StartDate: "2019-01-01",
		EndDate:   "2019-02-01",
	})
	var apiErr *dto.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, dto.ErrCodeInvalidRequest, apiErr.Code)
}

func TestRangeBacktestDateValidation(t *testing.T) {
	repo := testRepo([]dto.TickerInfo{{Symbol: "AAA"}}, nil, nil)
	svc := NewRangeBacktestService(testConfig(), testLogger(), repo)

	var apiErr *dto.ApiError

	_, err := svc.Run(context.Background(), dto.RangeBacktestRequest{
		StartDate: "2020/09/01",
		EndDate:   "2020-10-01",
	})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)

	_, err = svc.Run(context.Background(), dto.RangeBacktestRequest{
		StartDate: "2020-10-01",
		EndDate:   "2020-09-01",
	})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestRangeBacktestDataErrorContributesNothing(t *testing.T) {
	universe := []dto.TickerInfo{{Symbol: "AAA"}, {Symbol: "BBB"}}
	repo := testRepo(universe,
		map[string][]dto.Bar{"AAA": uptrendBars(10)},
		map[string]error{"BBB": errUpstream},
	)
	svc := NewRangeBacktestService(testConfig(), testLogger(), repo)

	resp, err := svc.Run(context.Background(), dto.RangeBacktestRequest{
		StartDate: "2020-09-01",
		EndDate:   "2020-10-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Summary.EvaluatedBars)
	assert.Equal(t, 0, resp.Summary.TriggeredEvents)
}
