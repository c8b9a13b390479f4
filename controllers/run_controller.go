// Package controllers controllers/run_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/scoring"
	"go-hb-scoreboard/services"
	"go-hb-scoreboard/store"
)

// RunController drives the competition from the operator's run view: starting
// performers, confirming scores, and previewing the final score while the
// form is being filled in.
type RunController struct {
	store     *store.Store
	lifecycle services.LifecycleServiceInterface
}

// NewRunController returns a run controller.
func NewRunController(s *store.Store, lifecycle services.LifecycleServiceInterface) *RunController {
	return &RunController{store: s, lifecycle: lifecycle}
}

// GetRun returns the full run-view snapshot: the competition, every
// performance joined with athlete and judge scores, and the display
// preference. Missing performance records are initialized first, so the
// snapshot is always complete for the current roster.
// GET /api/competitions/:competitionId/run
func (rc *RunController) GetRun(c *gin.Context) {
	competitionID := c.Param("competitionId")

	comp, err := rc.store.GetCompetition(competitionID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}
	if err := rc.lifecycle.InitializePerformances(competitionID); err != nil {
		logger.Error.Printf("[RunController.GetRun] initialize failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize performances"})
		return
	}

	details := rc.store.GetPerformancesWithDetails(competitionID)
	if details == nil {
		details = []models.PerformanceWithDetails{}
	}
	c.JSON(http.StatusOK, gin.H{
		"competition":  comp,
		"performances": details,
		"display":      rc.store.GetScoreboardDisplay(competitionID),
	})
}

// SetCurrent starts a performer.
// POST /api/competitions/:competitionId/current {"performanceId": "..."}
func (rc *RunController) SetCurrent(c *gin.Context) {
	var req struct {
		PerformanceID string `json:"performanceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "performanceId is required"})
		return
	}
	err := rc.lifecycle.SetCurrentPerformance(c.Param("competitionId"), req.PerformanceID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "performance not found"})
	case err != nil:
		logger.Error.Printf("[RunController.SetCurrent] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start performance"})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ClearCurrent takes the current performer off the floor without starting
// another.
// DELETE /api/competitions/:competitionId/current
func (rc *RunController) ClearCurrent(c *gin.Context) {
	if err := rc.lifecycle.ClearCurrentPerformance(c.Param("competitionId")); err != nil {
		logger.Error.Printf("[RunController.ClearCurrent] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear current performance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// confirmRequest carries the operator's score form. D and E are required;
// ND and bonus default to 0.
type confirmRequest struct {
	DScore  *float64 `json:"dScore" binding:"required"`
	EScore  *float64 `json:"eScore" binding:"required"`
	NDScore *float64 `json:"ndScore"`
	Bonus   *float64 `json:"bonus"`
}

// Confirm commits a performance's score. The final score is computed here
// with the scoring engine and handed to the lifecycle service; ranks are
// recomputed as part of the confirm. Re-posting to an already confirmed
// performance re-edits it.
// POST /api/performances/:performanceId/confirm
func (rc *RunController) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dScore and eScore are required"})
		return
	}

	final := scoring.ComputeFinalScore(req.DScore, req.EScore, req.NDScore, req.Bonus)
	if final == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot score without difficulty and execution"})
		return
	}
	nd := 0.0
	if req.NDScore != nil {
		nd = *req.NDScore
	}

	err := rc.lifecycle.ConfirmPerformance(c.Param("performanceId"), *req.DScore, *req.EScore, nd, *final, req.Bonus)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "performance not found"})
	case err != nil:
		logger.Error.Printf("[RunController.Confirm] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm performance"})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "finalScore": *final})
	}
}

// Preview computes the final score for in-progress form values without
// committing anything.
// POST /api/scoring/preview
func (rc *RunController) Preview(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dScore and eScore are required"})
		return
	}
	final := scoring.ComputeFinalScore(req.DScore, req.EScore, req.NDScore, req.Bonus)
	if final == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot score without difficulty and execution"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"finalScore": *final})
}
