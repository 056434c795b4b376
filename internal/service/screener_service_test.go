package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pullback-trading/internal/dto"
)

func TestScreenMixedUniverse(t *testing.T) {
	universe := []dto.TickerInfo{
		{Symbol: "AAA", Name: "Alpha Corp"},
		{Symbol: "BBB", Name: "Beta Corp"},
		{Symbol: "CCC", Name: "Gamma Corp"},
	}
	repo := testRepo(universe,
		map[string][]dto.Bar{
			"AAA": pullbackBars(107),
			"CCC": uptrendBars(10),
		},
		map[string]error{"BBB": errUpstream},
	)
	svc := NewScreenerService(testConfig(), testLogger(), repo)

	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{})
	require.NoError(t, err)
	assert.Equal(t, "6M_1d", resp.Timeframe)
	require.Len(t, resp.Results, 3)

	// One failing ticker degrades to a result error, never the batch.
	aaa, bbb, ccc := resp.Results[0], resp.Results[1], resp.Results[2]

	assert.Equal(t, "AAA", aaa.Symbol)
	assert.Equal(t, "Alpha Corp", aaa.Name)
	assert.True(t, aaa.Triggered)
	assert.Empty(t, aaa.Error)
	require.NotNil(t, aaa.BarIndex)
	assert.Equal(t, 5, *aaa.BarIndex)
	require.NotNil(t, aaa.AsOf)
	assert.Equal(t, baseTs+5*daySeconds, *aaa.AsOf)
	require.Len(t, aaa.Hits, 1)
	require.NotNil(t, aaa.VolRatio)
	assert.InDelta(t, 0.4, *aaa.VolRatio, 1e-9)

	assert.Equal(t, "BBB", bbb.Symbol)
	assert.False(t, bbb.Triggered)
	assert.Equal(t, dto.ErrCodeDataUnavailable, bbb.Error)

	assert.Equal(t, "CCC", ccc.Symbol)
	assert.False(t, ccc.Triggered)
	assert.Empty(t, ccc.Error)
	assert.Empty(t, ccc.Hits)
}

func TestScreenOnlyTriggered(t *testing.T) {
	universe := []dto.TickerInfo{
		{Symbol: "AAA", Name: "Alpha Corp"},
		{Symbol: "CCC", Name: "Gamma Corp"},
	}
	repo := testRepo(universe, map[string][]dto.Bar{
		"AAA": pullbackBars(107),
		"CCC": uptrendBars(10),
	}, nil)
	svc := NewScreenerService(testConfig(), testLogger(), repo)

	only := true
	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{OnlyTriggered: &only})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "AAA", resp.Results[0].Symbol)
}

func TestScreenExtraTickersDeduplicated(t *testing.T) {
	universe := []dto.TickerInfo{{Symbol: "AAA", Name: "Alpha Corp"}}
	repo := testRepo(universe, map[string][]dto.Bar{
		"AAA": uptrendBars(10),
		"DDD": uptrendBars(10),
	}, nil)
	svc := NewScreenerService(testConfig(), testLogger(), repo)

	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{
		Tickers: []string{"AAA", "DDD", " DDD "},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "AAA", resp.Results[0].Symbol)
	assert.Equal(t, "DDD", resp.Results[1].Symbol)
	assert.Empty(t, resp.Results[1].Name, "request-only tickers carry no universe name")
}

func TestScreenInsufficientHistory(t *testing.T) {
	universe := []dto.TickerInfo{{Symbol: "AAA"}}
	repo := testRepo(universe, map[string][]dto.Bar{"AAA": uptrendBars(3)}, nil)
	svc := NewScreenerService(testConfig(), testLogger(), repo)

	resp, err := svc.Screen(context.Background(), dto.ScreenRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, dto.ErrCodeInsufficientBars, resp.Results[0].Error)
}

func TestScreenUnknownTimeframe(t *testing.T) {
	repo := testRepo([]dto.TickerInfo{{Symbol: "AAA"}}, nil, nil)
	svc := NewScreenerService(testConfig(), testLogger(), repo)

	_, err := svc.Screen(context.Background(), dto.ScreenRequest{Timeframe: "2Y_1w"})
	var apiErr *dto.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
}

func TestScreenInvalidParams(t *testing.T) {
	repo := testRepo([]dto.TickerInfo{{Symbol: "AAA"}}, nil, nil)
	svc := NewScreenerService(testConfig(), testLogger(), repo)

	fast := 10
	_, err := svc.Screen(context.Background(), dto.ScreenRequest{
		Params: &dto.StrategyParamsPatch{FastMA: &fast}, // >= slowMA
	})
	var apiErr *dto.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}
