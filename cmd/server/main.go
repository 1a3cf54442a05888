package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"balance_game/internal/api"        // Custom package for API handlers
	"balance_game/internal/config"     // Custom package for configuration
	"balance_game/internal/db"         // Custom package for database access
	"balance_game/internal/middleware" // Custom package for middleware

	"github.com/gin-contrib/cors"            // CORS middleware
	"github.com/gin-contrib/sessions"        // Cookie sessions
	"github.com/gin-contrib/sessions/cookie" // Cookie session store
	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/redis/go-redis/v9"           // Redis client
	"github.com/sirupsen/logrus"             // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gormDB, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Cookie sessions back the server-rendered board routes
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("balance_game", store))

	// Allow browser clients on other origins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Public routes
	r.POST("/signup", api.SignupHandler(gormDB))                 // Registration endpoint
	r.POST("/login", api.LoginHandler(gormDB, cfg.JWTSecret))    // Login endpoint (JWT + session)
	r.GET("/logout", api.LogoutHandler())                        // Logout endpoint
	r.GET("/profile_image/:id", api.ProfileImageHandler(gormDB)) // Profile image with default fallback

	// Card routes (protected by JWT)
	cardGroup := r.Group("/cards")
	cardGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	cardGroup.GET("", api.ListCardsHandler(gormDB))                               // List cards endpoint
	cardGroup.POST("", api.CreateCardHandler(gormDB))                             // Create card endpoint
	cardGroup.POST("/:id/vote", api.VoteHandler(gormDB, redisClient))             // Vote toggle endpoint
	cardGroup.POST("/:id/like", api.LikeHandler(gormDB, redisClient))             // Like toggle endpoint
	cardGroup.POST("/:id/comment", api.AddCommentHandler(gormDB))                 // Add comment endpoint
	cardGroup.GET("/:id/comments", api.ListCommentsHandler(gormDB))               // List comments endpoint
	cardGroup.DELETE("/:id/comment/:commentID", api.DeleteCommentHandler(gormDB)) // Delete comment endpoint
	cardGroup.DELETE("/:id", api.DeleteCardHandler(gormDB, redisClient))          // Delete card endpoint

	// Popular card (protected by JWT)
	r.GET("/popular-card", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.PopularCardHandler(gormDB, redisClient))

	// User routes (protected by JWT)
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userGroup.GET("/me", api.MeHandler(gormDB, redisClient))           // Own profile endpoint
	userGroup.GET("/:id", api.UserProfileHandler(gormDB, redisClient)) // Profile endpoint
	userGroup.GET("/:id/recent-votes", api.RecentVotesHandler(gormDB)) // Recent votes endpoint

	// Server-rendered board routes (protected by cookie session)
	boardGroup := r.Group("/board")
	boardGroup.Use(middleware.SessionAuthMiddleware())
	boardGroup.GET("", api.BoardPageHandler(gormDB))    // Board listing endpoint
	boardGroup.POST("", api.BoardCreateHandler(gormDB)) // Board create endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
