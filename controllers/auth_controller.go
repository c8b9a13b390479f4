// Package controllers controllers/auth_controller.go
package controllers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/models"
	"go-hb-scoreboard/store"
)

// session keys shared with the middleware package
const (
	SessionOperator         = "operator"
	SessionJudgeRole        = "judgeRole"
	SessionJudgeCompetition = "judgeCompetition"
)

// AuthController handles operator login and the judge role selector.
type AuthController struct {
	store *store.Store
}

// NewAuthController returns an auth controller over the given store.
func NewAuthController(s *store.Store) *AuthController {
	return &AuthController{store: s}
}

// checkOperatorPassword verifies the operator password against the bcrypt
// hash in OPERATOR_PASSWORD_HASH. With no hash configured the check degrades
// to any non-empty password, which is logged loudly.
func checkOperatorPassword(password string) bool {
	hash := os.Getenv("OPERATOR_PASSWORD_HASH")
	if hash == "" {
		logger.Warn.Println("[checkOperatorPassword] OPERATOR_PASSWORD_HASH not set; accepting any non-empty password")
		return strings.TrimSpace(password) != ""
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// OperatorLogin authenticates the single operator session.
// POST /login {"password": "..."}
func (ac *AuthController) OperatorLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !checkOperatorPassword(req.Password) {
		logger.Warn.Println("[OperatorLogin] rejected login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	session := sessions.Default(c)
	session.Set(SessionOperator, true)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[OperatorLogin] failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	logger.Info.Println("[OperatorLogin] operator logged in")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// OperatorLogout drops the operator session.
// POST /logout
func (ac *AuthController) OperatorLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(SessionOperator)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[OperatorLogout] failed to save session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// JudgeRoles lists the panel seats available for login: configured roles with
// a judge name assigned. The judge login is a role selector, not an identity
// check.
// GET /api/competitions/:competitionId/judge-roles
func (ac *AuthController) JudgeRoles(c *gin.Context) {
	competitionID := c.Param("competitionId")
	var available []models.JudgePanel
	for _, p := range ac.store.ListJudgePanels(competitionID) {
		if p.InUse() {
			available = append(available, p)
		}
	}
	if available == nil {
		available = []models.JudgePanel{}
	}
	c.JSON(http.StatusOK, available)
}

// JudgeLogin stores the selected role in the session. The role must be a
// configured, in-use seat for the competition; nothing else is verified.
// POST /api/competitions/:competitionId/judge-login {"role": "E1"}
func (ac *AuthController) JudgeLogin(c *gin.Context) {
	competitionID := c.Param("competitionId")
	var req struct {
		Role models.JudgeRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid judge role is required"})
		return
	}

	seatInUse := false
	for _, p := range ac.store.ListJudgePanels(competitionID) {
		if p.Role == req.Role && p.InUse() {
			seatInUse = true
			break
		}
	}
	if !seatInUse {
		c.JSON(http.StatusNotFound, gin.H{"error": "role is not in use for this competition"})
		return
	}

	session := sessions.Default(c)
	session.Set(SessionJudgeRole, string(req.Role))
	session.Set(SessionJudgeCompetition, competitionID)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[JudgeLogin] failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	logger.Info.Printf("[JudgeLogin] role=%s selected for competition=%s", req.Role, competitionID)
	c.JSON(http.StatusOK, gin.H{"role": req.Role, "competitionId": competitionID})
}

// JudgeSession reports the current judge session, if any.
// GET /api/judge-session
func (ac *AuthController) JudgeSession(c *gin.Context) {
	session := sessions.Default(c)
	role := session.Get(SessionJudgeRole)
	if role == nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loggedIn":      true,
		"role":          role,
		"competitionId": session.Get(SessionJudgeCompetition),
	})
}

// JudgeLogout clears the judge role selection.
// POST /api/judge-logout
func (ac *AuthController) JudgeLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(SessionJudgeRole)
	session.Delete(SessionJudgeCompetition)
	if err := session.Save(); err != nil {
		logger.Error.Printf("[JudgeLogout] failed to save session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
