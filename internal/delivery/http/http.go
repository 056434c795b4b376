package http

import (
	"context"
	"errors"
	"net/http"

	"pullback-trading/internal/dto"
	"pullback-trading/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupStrategy(base)
}

// writeError maps service errors onto HTTP statuses: ApiError carries its
// own status, everything else is a 500.
func writeError(c echo.Context, err error) error {
	var apiErr *dto.ApiError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.Status, apiErr)
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": dto.ErrCodeInternal})
}
