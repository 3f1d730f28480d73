package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "MMA FX API v1"})
}

// readiness godoc
// @Summary Report whether conversions can be served
// @Description Ready once the first routing table has been built.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func readiness(routing portssvc.RoutingSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		currencies, _, builtAt, ok := routing.Snapshot()
		if !ok {
			c.Header("Retry-After", retryAfterSeconds)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "currencies": len(currencies), "routingBuiltAt": builtAt})
	}
}
