// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-hb-scoreboard/logger"
)

// session keys, mirrored from the controllers package
const (
	sessionOperator         = "operator"
	sessionJudgeRole        = "judgeRole"
	sessionJudgeCompetition = "judgeCompetition"
)

// -------------- operator authentication middleware --------------

// OperatorRequired blocks admin mutations unless the session holds a logged-in
// operator. Read-only views and judge endpoints stay open; the single-operator
// model needs no finer roles.
func OperatorRequired(c *gin.Context) {
	session := sessions.Default(c)
	operator, _ := session.Get(sessionOperator).(bool)
	if !operator {
		logger.Warn.Printf("OperatorRequired: rejected %s %s without operator session", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "operator login required"})
		c.Abort()
		return
	}
	c.Next()
}

// -------------- judge role middleware --------------

// JudgeRequired blocks judge endpoints unless a role has been selected. The
// selection is non-verifying by design: it identifies a seat, not a person.
func JudgeRequired(c *gin.Context) {
	session := sessions.Default(c)
	role, _ := session.Get(sessionJudgeRole).(string)
	competitionID, _ := session.Get(sessionJudgeCompetition).(string)
	if role == "" || competitionID == "" {
		logger.Warn.Printf("JudgeRequired: rejected %s %s without judge session", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "judge role selection required"})
		c.Abort()
		return
	}
	c.Next()
}
