package http

import (
	"net/http"

	"pullback-trading/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStrategy(base *echo.Group) {
	group := base.Group("/strategy/pullback")
	group.POST("", h.screen)
	group.POST("/backtest", h.runBacktest)
	group.POST("/backtest-range", h.runRangeBacktest)
}

func (h *HttpAPIHandler) screen(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.ScreenRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": dto.ErrCodeInvalidRequest})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": dto.ErrCodeInvalidRequest, "message": err.Error()})
	}

	result, err := h.service.ScreenerService.Screen(ctx, *req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": dto.ErrCodeInvalidRequest})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": dto.ErrCodeInvalidRequest, "message": err.Error()})
	}

	result, err := h.service.BacktestService.Run(ctx, *req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) runRangeBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.RangeBacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": dto.ErrCodeInvalidRequest})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": dto.ErrCodeInvalidRequest, "message": err.Error()})
	}

	result, err := h.service.RangeBacktestService.Run(ctx, *req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
