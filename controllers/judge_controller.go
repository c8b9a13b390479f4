// Package controllers controllers/judge_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
)

// JudgeController handles the judge panel configuration for a competition.
type JudgeController struct {
	store *store.Store
}

// NewJudgeController returns a judge panel controller.
func NewJudgeController(s *store.Store) *JudgeController {
	return &JudgeController{store: s}
}

// ListPanels returns the stored panel seats for a competition, including
// placeholder entries with no judge assigned.
// GET /api/competitions/:competitionId/panels
func (jc *JudgeController) ListPanels(c *gin.Context) {
	panels := jc.store.ListJudgePanels(c.Param("competitionId"))
	if panels == nil {
		panels = []models.JudgePanel{}
	}
	c.JSON(http.StatusOK, panels)
}

// ReplacePanels swaps the full panel configuration in one write, the way the
// judges admin form saves. Roles must be valid; D1 is marked chief.
// PUT /api/competitions/:competitionId/panels [{"role": "D1", "judgeName": "..."}]
func (jc *JudgeController) ReplacePanels(c *gin.Context) {
	competitionID := c.Param("competitionId")

	var req []struct {
		Role      models.JudgeRole `json:"role"`
		JudgeName string           `json:"judgeName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	panels := make([]models.JudgePanel, 0, len(req))
	for _, entry := range req {
		if !entry.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown judge role: " + string(entry.Role)})
			return
		}
		panels = append(panels, models.JudgePanel{
			Role:      entry.Role,
			JudgeName: entry.JudgeName,
			IsChief:   entry.Role == models.RoleD1,
		})
	}

	if err := jc.store.ReplaceJudgePanels(competitionID, panels); err != nil {
		logger.Error.Printf("[JudgeController.ReplacePanels] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save judge panels"})
		return
	}
	c.JSON(http.StatusOK, jc.store.ListJudgePanels(competitionID))
}
