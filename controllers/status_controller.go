// Package controllers controllers/status_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/services"
)

// Health is a liveness endpoint for deployment health checks.
// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetQRCode renders a share link as a PNG QR code. target selects the judge
// login or the public scoreboard link for the competition.
// GET /qrcode?target=judge&competitionId=...&size=256
func GetQRCode(c *gin.Context) {
	competitionID := c.Query("competitionId")
	if competitionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competitionId is required"})
		return
	}

	var url string
	switch c.DefaultQuery("target", "scoreboard") {
	case "judge":
		url = services.JudgeLoginURL(applicationURL, competitionID)
	case "scoreboard":
		url = services.ScoreboardURL(applicationURL, competitionID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "target must be judge or scoreboard"})
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	png, err := services.GenerateQRCode(url, size)
	if err != nil {
		logger.Error.Printf("[GetQRCode] failed to generate QR code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
