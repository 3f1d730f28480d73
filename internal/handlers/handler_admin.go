package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/dto"
	"github.com/SscSPs/mma_fx/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes the synchronous triggers of the background jobs.
type adminHandler struct {
	updater portssvc.ExchangeRateUpdaterSvc
	routing portssvc.RoutingSvc
}

func registerAdminRoutes(protected *gin.RouterGroup, updater portssvc.ExchangeRateUpdaterSvc, routing portssvc.RoutingSvc) {
	h := &adminHandler{updater: updater, routing: routing}

	admin := protected.Group("/admin")
	{
		admin.POST("/exchange-rates/refresh", h.refreshExchangeRates)
		admin.POST("/routing/rebuild", h.rebuildRouting)
	}
}

// refreshExchangeRates godoc
// @Summary Fetch new prices now
// @Description Runs the price refresh for every quoted pair and returns when it completes
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.RefreshExchangeRatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to refresh exchange rates"
// @Security BearerAuth
// @Router /admin/exchange-rates/refresh [post]
func (h *adminHandler) refreshExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, _ := middleware.GetUserIDFromContext(c)
	logger.Info("Exchange rate refresh requested", slog.String("user_id", userID))

	summary, err := h.updater.RefreshAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "refresh exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRefreshExchangeRatesResponse(summary))
}

// rebuildRouting godoc
// @Summary Rebuild the currency routing table now
// @Description Recomputes conversion routes from the configured currencies and quoted pairs
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.RoutingTableResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to rebuild routing table"
// @Security BearerAuth
// @Router /admin/routing/rebuild [post]
func (h *adminHandler) rebuildRouting(c *gin.Context) {
	if err := h.routing.Rebuild(c.Request.Context()); err != nil {
		respondError(c, err, "rebuild routing table")
		return
	}

	currencies, skipped, builtAt, _ := h.routing.Snapshot()
	res := dto.RoutingTableResponse{Currencies: currencies, BuiltAt: builtAt}
	for _, p := range skipped {
		res.SkippedPairs = append(res.SkippedPairs, p.String())
	}
	c.JSON(http.StatusOK, res)
}
