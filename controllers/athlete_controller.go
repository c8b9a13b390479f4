// Package controllers controllers/athlete_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/services"
	"go-hb-scoreboard/store"
)

// AthleteController handles the start-list: registration, editing, manual
// reordering, and shuffling.
type AthleteController struct {
	store  *store.Store
	roster *services.RosterService
}

// NewAthleteController returns an athlete controller.
func NewAthleteController(s *store.Store, roster *services.RosterService) *AthleteController {
	return &AthleteController{store: s, roster: roster}
}

// List returns a competition's athletes in start order.
// GET /api/competitions/:competitionId/athletes
func (ac *AthleteController) List(c *gin.Context) {
	athletes := ac.store.ListAthletes(c.Param("competitionId"))
	if athletes == nil {
		athletes = []models.Athlete{}
	}
	c.JSON(http.StatusOK, athletes)
}

// Add registers an athlete at the end of the start list.
// POST /api/competitions/:competitionId/athletes
func (ac *AthleteController) Add(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Affiliation string `json:"affiliation"`
		Grade       string `json:"grade"`
		Bio         string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "athlete name is required"})
		return
	}
	athlete, err := ac.roster.AddAthlete(c.Param("competitionId"), models.Athlete{
		Name:        req.Name,
		Affiliation: req.Affiliation,
		Grade:       req.Grade,
		Bio:         req.Bio,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, athlete)
}

// Update edits an athlete's descriptive fields.
// PUT /api/athletes/:athleteId
func (ac *AthleteController) Update(c *gin.Context) {
	athlete, err := ac.store.GetAthlete(c.Param("athleteId"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "athlete not found"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Affiliation *string `json:"affiliation"`
		Grade       *string `json:"grade"`
		Bio         *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name != nil {
		athlete.Name = *req.Name
	}
	if req.Affiliation != nil {
		athlete.Affiliation = *req.Affiliation
	}
	if req.Grade != nil {
		athlete.Grade = *req.Grade
	}
	if req.Bio != nil {
		athlete.Bio = *req.Bio
	}
	if err := ac.roster.UpdateAthlete(athlete); err != nil {
		logger.Error.Printf("[AthleteController.Update] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update athlete"})
		return
	}
	c.JSON(http.StatusOK, athlete)
}

// Remove deletes an athlete, cascading their performance and judge scores,
// and closes the start-order gap.
// DELETE /api/athletes/:athleteId
func (ac *AthleteController) Remove(c *gin.Context) {
	err := ac.roster.RemoveAthlete(c.Param("athleteId"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "athlete not found"})
		return
	}
	if err != nil {
		logger.Error.Printf("[AthleteController.Remove] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove athlete"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Move shifts an athlete one slot in the start list.
// POST /api/competitions/:competitionId/athletes/:athleteId/move {"direction": -1}
func (ac *AthleteController) Move(c *gin.Context) {
	var req struct {
		Direction int `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction is required"})
		return
	}
	err := ac.roster.Move(c.Param("competitionId"), c.Param("athleteId"), req.Direction)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "athlete not found"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, ac.store.ListAthletes(c.Param("competitionId")))
	}
}

// Shuffle randomizes the start order.
// POST /api/competitions/:competitionId/athletes/shuffle
func (ac *AthleteController) Shuffle(c *gin.Context) {
	competitionID := c.Param("competitionId")
	if err := ac.roster.Shuffle(competitionID); err != nil {
		logger.Error.Printf("[AthleteController.Shuffle] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to shuffle start order"})
		return
	}
	c.JSON(http.StatusOK, ac.store.ListAthletes(competitionID))
}
