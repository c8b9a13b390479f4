// Package controllers controllers/scoreboard_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/models"
	"go-hb-scoreboard/services"
	"go-hb-scoreboard/store"
)

// ScoreboardController serves the public scoreboard and results views and
// the operator's control over what the scoreboard shows.
type ScoreboardController struct {
	store   *store.Store
	display *services.DisplayService
}

// NewScoreboardController returns a scoreboard controller.
func NewScoreboardController(s *store.Store, display *services.DisplayService) *ScoreboardController {
	return &ScoreboardController{store: s, display: display}
}

// GetDisplay returns the stored display preference (auto when none is set).
// GET /api/competitions/:competitionId/display
func (sb *ScoreboardController) GetDisplay(c *gin.Context) {
	c.JSON(http.StatusOK, sb.display.Get(c.Param("competitionId")))
}

// SetDisplay overwrites the display preference.
// PUT /api/competitions/:competitionId/display {"mode": "ranking"}
func (sb *ScoreboardController) SetDisplay(c *gin.Context) {
	var req struct {
		Mode          models.ScoreboardMode `json:"mode" binding:"required"`
		PerformanceID string                `json:"performanceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
		return
	}
	if err := sb.display.Set(c.Param("competitionId"), req.Mode, req.PerformanceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sb.display.Get(c.Param("competitionId")))
}

// GetScoreboard returns the polled scoreboard payload: the competition, the
// server-side resolution of what to show, and the raw snapshot so a view with
// a local override can derive its own.
// GET /api/competitions/:competitionId/scoreboard
func (sb *ScoreboardController) GetScoreboard(c *gin.Context) {
	competitionID := c.Param("competitionId")
	comp, err := sb.store.GetCompetition(competitionID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}

	details := sb.store.GetPerformancesWithDetails(competitionID)
	if details == nil {
		details = []models.PerformanceWithDetails{}
	}
	c.JSON(http.StatusOK, gin.H{
		"competition":  comp,
		"resolved":     sb.display.Resolve(competitionID),
		"performances": details,
	})
}

// GetResults returns the polled results payload: all performances with
// details in start order. Ranking order is a client-side sort over the rank
// column.
// GET /api/competitions/:competitionId/results
func (sb *ScoreboardController) GetResults(c *gin.Context) {
	competitionID := c.Param("competitionId")
	comp, err := sb.store.GetCompetition(competitionID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}

	details := sb.store.GetPerformancesWithDetails(competitionID)
	if details == nil {
		details = []models.PerformanceWithDetails{}
	}
	c.JSON(http.StatusOK, gin.H{
		"competition":  comp,
		"performances": details,
	})
}
