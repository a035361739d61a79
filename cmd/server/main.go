package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/tsukihara/groupboard-api/internal/config"
	"github.com/tsukihara/groupboard-api/internal/constants"
	"github.com/tsukihara/groupboard-api/internal/database"
	"github.com/tsukihara/groupboard-api/internal/handlers"
	"github.com/tsukihara/groupboard-api/internal/middleware"
	"github.com/tsukihara/groupboard-api/internal/realtime"
	"github.com/tsukihara/groupboard-api/internal/repository"
	"github.com/tsukihara/groupboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Start the realtime hub
	hub := realtime.NewHub()
	go hub.Run(context.Background())

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	messageService := services.NewMessageService(messageRepo, hub)
	taskService := services.NewTaskService(taskRepo, groupRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	messageHandler := handlers.NewMessageHandler(messageService)
	taskHandler := handlers.NewTaskHandler(taskService)
	wsHandler := handlers.NewWSHandler(hub)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Groupboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Group routes (protected)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth())
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.ListGroups)
			groups.POST("/join", groupHandler.JoinGroup)
			groups.GET("/:groupId", middleware.RequireGroupAccess(), groupHandler.GetGroup)
			groups.POST("/:groupId/invites", middleware.RequireGroupAccess(), middleware.RequireGroupAdmin(), groupHandler.InviteUser)
			groups.POST("/:groupId/invites/accept", groupHandler.AcceptInvite)
			groups.DELETE("/:groupId/members/:userId", middleware.RequireGroupAccess(), middleware.RequireGroupAdmin(), groupHandler.RemoveMember)
		}

		// Message routes (protected, group scoped)
		messages := api.Group("/messages")
		messages.Use(middleware.RequireAuth())
		{
			messages.GET("/:groupId", middleware.RequireGroupAccess(), messageHandler.ListMessages)
			messages.POST("/:groupId", middleware.RequireGroupAccess(), messageHandler.CreateMessage)
			messages.GET("/:groupId/:messageId", middleware.RequireGroupAccess(), messageHandler.GetMessage)
			messages.PATCH("/:groupId/:messageId", middleware.RequireGroupAccess(), messageHandler.UpdateMessage)
			messages.DELETE("/:groupId/:messageId", middleware.RequireGroupAccess(), messageHandler.DeleteMessage)
		}

		// Task routes (protected, group scoped)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:groupId", middleware.RequireGroupAccess(), taskHandler.ListTasks)
			tasks.POST("/:groupId", middleware.RequireGroupAccess(), taskHandler.CreateTask)
			tasks.GET("/:groupId/:taskId", middleware.RequireGroupAccess(), taskHandler.GetTask)
			tasks.PATCH("/:groupId/:taskId", middleware.RequireGroupAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:groupId/:taskId", middleware.RequireGroupAccess(), taskHandler.DeleteTask)
		}
	}

	// Realtime channel (protected, group scoped)
	r.GET("/ws/:groupId", middleware.RequireAuth(), middleware.RequireGroupAccess(), wsHandler.Subscribe)

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
