// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-hb-scoreboard/controllers"
	"go-hb-scoreboard/logger"
	"go-hb-scoreboard/middleware"
	"go-hb-scoreboard/services"
	"go-hb-scoreboard/store"
)

// judge seats idle longer than this are considered disconnected
const judgePresenceTimeout = 30 * time.Second

func main() {
	// load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("No .env file found, using process environment")
	}
	logger.SetLogLevel(os.Getenv("APP_ENV"))

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Read configuration from environment variables
	applicationURL := os.Getenv("APPLICATION_URL")
	if applicationURL == "" {
		applicationURL = "http://localhost:8080" // Default to localhost for local testing
	}
	controllers.SetConfig(applicationURL)

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	storage, err := store.NewFileStorage(dataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory %s: %v", dataDir, err)
	}
	entityStore := store.New(storage)

	// wire services over the shared store
	lifecycle := services.NewLifecycleService(entityStore)
	roster := services.NewRosterService(entityStore)
	aggregator := services.NewAggregatorService(entityStore)
	display := services.NewDisplayService(entityStore)
	presence := services.NewPresenceService(judgePresenceTimeout)

	// prune idle judge seats in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go presence.CleanupLoop(ctx, 10*time.Second)

	// controllers
	auth := controllers.NewAuthController(entityStore)
	competitionCtrl := controllers.NewCompetitionController(entityStore)
	athleteCtrl := controllers.NewAthleteController(entityStore, roster)
	judgeCtrl := controllers.NewJudgeController(entityStore)
	runCtrl := controllers.NewRunController(entityStore, lifecycle)
	scoreCtrl := controllers.NewScoreController(entityStore, aggregator, presence)
	scoreboardCtrl := controllers.NewScoreboardController(entityStore, display)

	// Initialize session store
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret"
		logger.Warn.Println("SESSION_SECRET not set, using insecure development secret")
	}
	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400, // one competition day
		HttpOnly: true,
		Secure:   false, // set to true behind TLS
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("hbsession", cookieStore))

	// health check and share links
	router.GET("/health", controllers.Health)
	router.GET("/qrcode", controllers.GetQRCode)

	// operator session
	router.POST("/login", auth.OperatorLogin)
	router.POST("/logout", auth.OperatorLogout)

	// public read-only surface: polled by scoreboard, results, and admin views
	api := router.Group("/api")
	{
		api.GET("/competitions", competitionCtrl.List)
		api.GET("/competitions/:competitionId", competitionCtrl.Get)
		api.GET("/competitions/:competitionId/athletes", athleteCtrl.List)
		api.GET("/competitions/:competitionId/panels", judgeCtrl.ListPanels)
		api.GET("/competitions/:competitionId/judge-roles", auth.JudgeRoles)
		api.GET("/competitions/:competitionId/scoreboard", scoreboardCtrl.GetScoreboard)
		api.GET("/competitions/:competitionId/results", scoreboardCtrl.GetResults)
		api.GET("/competitions/:competitionId/display", scoreboardCtrl.GetDisplay)
		api.GET("/competitions/:competitionId/performances/:performanceId/scores", scoreCtrl.Scores)
		api.GET("/competitions/:competitionId/active-judges", scoreCtrl.ActiveJudges)

		// judge role selection (non-verifying by design)
		api.POST("/competitions/:competitionId/judge-login", auth.JudgeLogin)
		api.GET("/judge-session", auth.JudgeSession)
		api.POST("/judge-logout", auth.JudgeLogout)
	}

	// judge scoring surface: requires a selected role
	judge := router.Group("/api/judge", middleware.JudgeRequired)
	{
		judge.GET("/view", scoreCtrl.JudgeView)
		judge.POST("/scores", scoreCtrl.Submit)
	}

	// operator surface: every mutation behind the operator session
	admin := router.Group("/api", middleware.OperatorRequired)
	{
		admin.POST("/competitions", competitionCtrl.Create)
		admin.PUT("/competitions/:competitionId", competitionCtrl.Update)
		admin.DELETE("/competitions/:competitionId", competitionCtrl.Delete)

		admin.POST("/competitions/:competitionId/athletes", athleteCtrl.Add)
		admin.PUT("/athletes/:athleteId", athleteCtrl.Update)
		admin.DELETE("/athletes/:athleteId", athleteCtrl.Remove)
		admin.POST("/competitions/:competitionId/athletes/:athleteId/move", athleteCtrl.Move)
		admin.POST("/competitions/:competitionId/athletes/shuffle", athleteCtrl.Shuffle)

		admin.PUT("/competitions/:competitionId/panels", judgeCtrl.ReplacePanels)

		admin.GET("/competitions/:competitionId/run", runCtrl.GetRun)
		admin.POST("/competitions/:competitionId/current", runCtrl.SetCurrent)
		admin.DELETE("/competitions/:competitionId/current", runCtrl.ClearCurrent)
		admin.POST("/performances/:performanceId/confirm", runCtrl.Confirm)
		admin.POST("/scoring/preview", runCtrl.Preview)

		admin.PUT("/competitions/:competitionId/display", scoreboardCtrl.SetDisplay)
	}

	// Start the server
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Info.Printf("Starting high bar scoreboard on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
