package api

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// StocksHandler exposes the stock analysis endpoints over Echo.
type StocksHandler struct {
	logger    *xlogger.Logger
	analysis  *usecase.AnalysisUseCase
	forecasts *usecase.ForecastUseCase
	ticks     *usecase.TicksUseCase
	storage   HealthChecker
}

func NewStocksHandler(logger *xlogger.Logger, analysis *usecase.AnalysisUseCase, forecasts *usecase.ForecastUseCase) *StocksHandler {
	return &StocksHandler{logger: logger, analysis: analysis, forecasts: forecasts}
}

// SetStorageHealth attaches an optional storage health probe.
func (h *StocksHandler) SetStorageHealth(hc HealthChecker) { h.storage = hc }

// SetTicks enables the tick archive endpoint when storage is configured.
func (h *StocksHandler) SetTicks(uc *usecase.TicksUseCase) { h.ticks = uc }

func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/history", h.History)
	g.GET("/quote", h.Quote)
	g.GET("/profile", h.Profile)
	g.GET("/indicators", h.Indicators)
	g.GET("/forecast", h.Forecast)
	g.GET("/ticks", h.Ticks)
	g.GET("/health", h.Health)
}

func (h *StocksHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.GetHistory(c.Request().Context(), req.Symbol, req.Range)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Quote(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.GetQuote(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("quote usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Profile(c echo.Context) error {
	req := &models.ProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.GetProfile(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("profile usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analysis.GetIndicators(c.Request().Context(), req.Symbol, req.Range)
	if err != nil {
		h.logger.Error("indicators usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Forecast always answers 200 for a well-formed request; a series the
// model cannot predict comes back with available=false and a reason.
func (h *StocksHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecasts.GetForecast(c.Request().Context(), req.Symbol, req.Range)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Ticks(c echo.Context) error {
	if h.ticks == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("tick archive is not enabled"))
	}

	req := &models.TicksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	now := time.Now()
	to := xhttp.ParseTimeDefault(req.To, now)
	res, err := h.ticks.GetTicks(c.Request().Context(), usecase.GetTicksParams{
		Symbol: req.Symbol,
		From:   xhttp.ParseTimeDefault(req.From, to.Add(-24*time.Hour)),
		To:     to,
		Limit:  xhttp.ParseIntDefault(req.Limit, 1000),
	})
	if err != nil {
		h.logger.Error("ticks usecase error", xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksHandler) Health(c echo.Context) error {
	status := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
		} else {
			status["storage"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}

var _ xhttp.Handler = (*StocksHandler)(nil)
