package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/core/services"
	"github.com/SscSPs/mma_fx/internal/dto"
	"github.com/SscSPs/mma_fx/internal/middleware"
	"github.com/SscSPs/mma_fx/internal/utils"
	"github.com/gin-gonic/gin"
)

// conversionHandler serves currency amount conversions.
type conversionHandler struct {
	converter       portssvc.CurrencyConverterSvc
	currencyService portssvc.CurrencyReaderSvc
	now             func() time.Time
}

func newConversionHandler(converter portssvc.CurrencyConverterSvc, currencyService portssvc.CurrencyReaderSvc) *conversionHandler {
	return &conversionHandler{converter: converter, currencyService: currencyService, now: time.Now}
}

func registerConversionRoutes(public *gin.RouterGroup, converter portssvc.CurrencyConverterSvc, currencyService portssvc.CurrencyReaderSvc) {
	h := newConversionHandler(converter, currencyService)
	public.POST("/conversions", h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts along the shortest chain of quoted pairs using the latest prices not after the given date (today when omitted)
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertCurrencyRequest true "Amount and currencies"
// @Success 200 {object} dto.ConvertCurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input, no route or no price"
// @Failure 503 {object} map[string]string "Routing table not built yet"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ConvertCurrency request")
		return
	}

	source := strings.ToUpper(req.SourceCurrencyCode)
	target := strings.ToUpper(req.TargetCurrencyCode)

	date := domain.StartOfDayUTC(h.now())
	if req.Date != "" {
		parsed, err := time.Parse(dto.DateLayout, req.Date)
		if err != nil {
			bindError(c, err, "conversion date")
			return
		}
		date = domain.StartOfDayUTC(parsed)
	}

	amount, route, err := h.converter.ConvertWithRoute(c.Request.Context(), *req.Amount, source, target, &date)
	if err != nil {
		respondError(c, err, "convert amount")
		return
	}

	precision := services.DefaultCurrencyPrecision
	if currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), target); err == nil {
		precision = currency.Precision
	} else {
		logger.Warn("Could not load target currency precision, using default",
			slog.String("currency_code", target), slog.String("error", err.Error()))
	}

	logger.Debug("Amount converted",
		slog.String("source", source),
		slog.String("target", target),
		slog.Int("hops", len(route)-1))

	c.JSON(http.StatusOK, dto.ConvertCurrencyResponse{
		Amount:             amount,
		FormattedAmount:    utils.FormatWithPrecision(amount, precision),
		SourceAmount:       *req.Amount,
		SourceCurrencyCode: source,
		TargetCurrencyCode: target,
		Date:               date.Format(dto.DateLayout),
		Route:              route,
	})
}
