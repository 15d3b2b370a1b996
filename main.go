package main

import (
	"log"
	"time"

	"companion-app/config"
	"companion-app/database"
	authapi "companion-app/internal/api/auth"
	plansapi "companion-app/internal/api/plans"
	trialapi "companion-app/internal/api/trial"
	usersapi "companion-app/internal/api/users"
	routes "companion-app/internal/app/http"
	"companion-app/internal/domain/trial"
	"companion-app/internal/domain/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	trials := trial.NewStore(db)
	profiles := users.NewProfileStore(db)

	r := gin.Default()

	// CORS before routes. The trial endpoints are called cross-origin from
	// the marketing site, including preflight OPTIONS.
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{config.CORS_ORIGIN},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Client-Info", "Apikey"},
		MaxAge:       12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:     authapi.NewHandler(db),
		Trial:    trialapi.NewHandler(trials),
		Plans:    plansapi.NewHandler(profiles, trials),
		Users:    usersapi.NewHandler(db),
		Profiles: profiles,
	})

	r.Run(":" + config.PORT)
}
