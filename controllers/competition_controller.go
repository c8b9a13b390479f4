// Package controllers controllers/competition_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
)

// CompetitionController handles competition CRUD.
type CompetitionController struct {
	store *store.Store
}

// NewCompetitionController returns a competition controller over the store.
func NewCompetitionController(s *store.Store) *CompetitionController {
	return &CompetitionController{store: s}
}

// List returns every competition.
// GET /api/competitions
func (cc *CompetitionController) List(c *gin.Context) {
	comps := cc.store.ListCompetitions()
	if comps == nil {
		comps = []models.Competition{}
	}
	c.JSON(http.StatusOK, comps)
}

// Get returns one competition.
// GET /api/competitions/:competitionId
func (cc *CompetitionController) Get(c *gin.Context) {
	comp, err := cc.store.GetCompetition(c.Param("competitionId"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}
	c.JSON(http.StatusOK, comp)
}

// Create registers a new competition.
// POST /api/competitions {"name": ..., "date": ..., "venue": ...}
func (cc *CompetitionController) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Date  string `json:"date"`
		Venue string `json:"venue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competition name is required"})
		return
	}
	comp, err := cc.store.CreateCompetition(models.Competition{
		Name:  req.Name,
		Date:  req.Date,
		Venue: req.Venue,
	})
	if err != nil {
		logger.Error.Printf("[CompetitionController.Create] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create competition"})
		return
	}
	c.JSON(http.StatusCreated, comp)
}

// Update edits a competition's fields, including its operator-driven status.
// PUT /api/competitions/:competitionId
func (cc *CompetitionController) Update(c *gin.Context) {
	comp, err := cc.store.GetCompetition(c.Param("competitionId"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}

	var req struct {
		Name   *string                   `json:"name"`
		Date   *string                   `json:"date"`
		Venue  *string                   `json:"venue"`
		Status *models.CompetitionStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown competition status"})
		return
	}

	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Date != nil {
		comp.Date = *req.Date
	}
	if req.Venue != nil {
		comp.Venue = *req.Venue
	}
	if req.Status != nil {
		comp.Status = *req.Status
	}
	if err := cc.store.UpdateCompetition(comp); err != nil {
		logger.Error.Printf("[CompetitionController.Update] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update competition"})
		return
	}
	c.JSON(http.StatusOK, comp)
}

// Delete removes a competition and everything scoped to it.
// DELETE /api/competitions/:competitionId
func (cc *CompetitionController) Delete(c *gin.Context) {
	err := cc.store.DeleteCompetition(c.Param("competitionId"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "competition not found"})
		return
	}
	if err != nil {
		logger.Error.Printf("[CompetitionController.Delete] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete competition"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
