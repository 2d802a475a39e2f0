package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/warikan-app/split-api/config"
	"github.com/warikan-app/split-api/handlers"
	"github.com/warikan-app/split-api/middleware"
	"github.com/warikan-app/split-api/routes"
	"github.com/warikan-app/split-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessions := services.NewSessionService(db)
	go scheduleSessionSweeper(sessions)

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter())

	var queue *services.Writeback
	v1 := router.Group("/api/v1")
	{
		v1.GET("/ws/sessions/:id", wsHandler.HandleWS)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			queue = routes.SetupSessionRoutes(protected, db, wsHandler)
		}
	}
	defer queue.Close()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// scheduleSessionSweeper deletes sessions past their 180-day TTL once a day.
func scheduleSessionSweeper(sessions *services.SessionService) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	sweepExpiredSessions(sessions)
	for range ticker.C {
		sweepExpiredSessions(sessions)
	}
}

func sweepExpiredSessions(sessions *services.SessionService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rows, err := sessions.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Session sweep failed: %v", err)
		return
	}
	if rows > 0 {
		log.Printf("🧹 Swept %d expired sessions", rows)
	}
}
