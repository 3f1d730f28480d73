package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/core/services"
	"github.com/SscSPs/mma_fx/internal/dto"
	"github.com/SscSPs/mma_fx/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to quoted pairs and their prices.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers read routes on public and write routes on protected.
func registerExchangeRateRoutes(public, protected *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	public.GET("/exchange-rates", h.listExchangeRates)
	public.GET("/exchange-rates/:base/:quote", h.getExchangeRate)
	public.GET("/exchange-rates/:base/:quote/prices", h.listPrices)

	protected.POST("/exchange-rates", h.createExchangeRate)
	protected.POST("/exchange-rates/:base/:quote/prices", h.recordPrice)
}

// createExchangeRate godoc
// @Summary Configure a new quoted pair
// @Description Adds a currency pair whose prices are tracked. A pair can only be quoted in one direction.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Quoted pair"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Pair already quoted in either direction"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateExchangeRate request")
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create exchange rate",
		slog.String("base", req.BaseCurrencyCode),
		slog.String("quote", req.QuoteCurrencyCode))

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// recordPrice godoc
// @Summary Record a price of a quoted pair
// @Description Inserts or replaces the price of base/quote on the given date
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   base path string true "Base currency code"
// @Param   quote path string true "Quote currency code"
// @Param   price body dto.CreateExchangeRatePriceRequest true "Dated price"
// @Success 201 {object} dto.ExchangeRatePriceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Pair not quoted as base/quote"
// @Failure 500 {object} map[string]string "Failed to record price"
// @Security BearerAuth
// @Router /exchange-rates/{base}/{quote}/prices [post]
func (h *exchangeRateHandler) recordPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RecordPrice request")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	price, err := h.exchangeRateService.RecordPrice(c.Request.Context(), c.Param("base"), c.Param("quote"), req, userID)
	if err != nil {
		respondError(c, err, "record price")
		return
	}

	logger.Info("Exchange rate price recorded",
		slog.String("exchange_rate_id", price.ExchangeRateID),
		slog.String("date", req.Date))
	c.JSON(http.StatusCreated, dto.ToExchangeRatePriceResponse(price))
}

// getExchangeRate godoc
// @Summary Get a quoted pair
// @Description Retrieves the pair quoted as base/quote with its latest price date and, optionally, its price history
// @Tags exchange rates
// @Produce  json
// @Param   base path string true "Base currency code"
// @Param   quote path string true "Quote currency code"
// @Param   includePrices query bool false "Attach the price history"
// @Param   from query string false "First date of the history (YYYY-MM-DD)"
// @Param   to query string false "Last date of the history (YYYY-MM-DD)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Pair not quoted as base/quote"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchange-rates/{base}/{quote} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	var params dto.GetExchangeRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "GetExchangeRate query")
		return
	}

	filter, err := services.PriceFilterFromParams(params.From, params.To)
	if err != nil {
		respondError(c, err, "retrieve exchange rate")
		return
	}

	details, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), c.Param("base"), c.Param("quote"), params.IncludePrices, filter)
	if err != nil {
		respondError(c, err, "retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateDetailsResponse(details))
}

// listExchangeRates godoc
// @Summary List quoted pairs
// @Description Retrieves all quoted pairs with their latest price date
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// listPrices godoc
// @Summary List the price history of a quoted pair
// @Description Returns prices in ascending date order, one page at a time
// @Tags exchange rates
// @Produce  json
// @Param   base path string true "Base currency code"
// @Param   quote path string true "Quote currency code"
// @Param   from query string false "First date (YYYY-MM-DD)"
// @Param   to query string false "Last date (YYYY-MM-DD)"
// @Param   pageSize query int false "Page size (default 100, max 1000)"
// @Param   pageToken query string false "Token of the page to return"
// @Success 200 {object} dto.ListExchangeRatePricesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Pair not quoted as base/quote"
// @Failure 500 {object} map[string]string "Failed to list prices"
// @Router /exchange-rates/{base}/{quote}/prices [get]
func (h *exchangeRateHandler) listPrices(c *gin.Context) {
	var params dto.ListExchangeRatePricesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListPrices query")
		return
	}

	prices, next, err := h.exchangeRateService.ListPrices(c.Request.Context(), c.Param("base"), c.Param("quote"), params)
	if err != nil {
		respondError(c, err, "list prices")
		return
	}

	c.JSON(http.StatusOK, dto.ListExchangeRatePricesResponse{
		Prices:        dto.ToListExchangeRatePriceResponse(prices),
		NextPageToken: next,
	})
}
