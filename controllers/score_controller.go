// Package controllers controllers/score_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/services"
	"go-hb-scoreboard/store"
	"go-hb-scoreboard/telemetry"
)

// ScoreController serves the judge scoring view: the polled current-performer
// snapshot, raw score submission, and the live panel progress.
type ScoreController struct {
	store      *store.Store
	aggregator *services.AggregatorService
	presence   *services.PresenceService
}

// NewScoreController returns a score controller.
func NewScoreController(s *store.Store, agg *services.AggregatorService, presence *services.PresenceService) *ScoreController {
	return &ScoreController{store: s, aggregator: agg, presence: presence}
}

// judgeSession pulls the role and competition out of the session. The judge
// middleware guarantees both are present.
func judgeSession(c *gin.Context) (models.JudgeRole, string) {
	session := sessions.Default(c)
	role, _ := session.Get(SessionJudgeRole).(string)
	competitionID, _ := session.Get(SessionJudgeCompetition).(string)
	return models.JudgeRole(role), competitionID
}

// JudgeView returns what the logged-in judge's polled screen needs: the
// competition, the current performance if any, and that judge's own submitted
// value for it. Each poll doubles as a liveness heartbeat for the seat.
// GET /api/judge/view
func (sc *ScoreController) JudgeView(c *gin.Context) {
	role, competitionID := judgeSession(c)
	sc.presence.Heartbeat(competitionID, role)

	comp, err := sc.store.GetCompetition(competitionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}

	resp := gin.H{"competition": comp, "role": role, "current": nil, "submitted": nil}
	for _, d := range sc.store.GetPerformancesWithDetails(competitionID) {
		if !d.IsCurrent {
			continue
		}
		resp["current"] = d
		for _, js := range d.JudgeScores {
			if js.Role == role && js.ScoreValue != nil {
				resp["submitted"] = js
			}
		}
		break
	}
	c.JSON(http.StatusOK, resp)
}

// Submit records the logged-in judge's raw value for the current performance.
// Range checks are a view concern; this records whatever the judge sent for
// their own seat.
// POST /api/judge/scores {"performanceId": "...", "value": 8.5}
func (sc *ScoreController) Submit(c *gin.Context) {
	role, competitionID := judgeSession(c)

	var req struct {
		PerformanceID string   `json:"performanceId" binding:"required"`
		Value         *float64 `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "performanceId and value are required"})
		return
	}

	var panel *models.JudgePanel
	for _, p := range sc.store.ListJudgePanels(competitionID) {
		if p.Role == role && p.InUse() {
			panel = &p
			break
		}
	}
	if panel == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no configured panel seat for this role"})
		return
	}

	js, err := sc.aggregator.SubmitJudgeScore(req.PerformanceID, panel.ID, role, *req.Value)
	if err != nil {
		logger.Error.Printf("[ScoreController.Submit] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record score"})
		return
	}
	c.JSON(http.StatusOK, js)
}

// Scores returns a performance's collected judge scores together with the
// panel progress ("3 of 6 E-judges submitted") and the live component
// derivation.
// GET /api/competitions/:competitionId/performances/:performanceId/scores
func (sc *ScoreController) Scores(c *gin.Context) {
	competitionID := c.Param("competitionId")
	performanceID := c.Param("performanceId")

	scores := sc.store.ListJudgeScores(performanceID)
	if scores == nil {
		scores = []models.JudgeScore{}
	}
	c.JSON(http.StatusOK, gin.H{
		"scores":   scores,
		"progress": sc.aggregator.PanelProgress(competitionID, performanceID),
	})
}

// ActiveJudges lists the seats whose judge view has polled recently.
// GET /api/competitions/:competitionId/active-judges
func (sc *ScoreController) ActiveJudges(c *gin.Context) {
	active := sc.presence.ActiveRoles(c.Param("competitionId"))
	if active == nil {
		active = []models.JudgeRole{}
	}
	telemetry.PublishActiveJudges(len(active), c.Param("competitionId"))
	c.JSON(http.StatusOK, gin.H{"active": active})
}
