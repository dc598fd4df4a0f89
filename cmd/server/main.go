package main

import (
	"log"
	"os"

	"anonboard/internal/db"
	"anonboard/internal/handlers"
	"anonboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware: resolve moderator status on every request, so roster
	// edits apply without a restart
	r.Use(middleware.ResolveIdentity())

	// Handlers
	siteHandler := handlers.NewSiteHandler("./web/index.html")
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()

	// Public Routes
	r.GET("/", siteHandler.Index)
	r.GET("/posts", postHandler.List)
	r.POST("/posts", postHandler.Create)
	r.GET("/posts/:id/comments", commentHandler.List)
	r.POST("/posts/:id/comments", commentHandler.Create)
	r.POST("/posts/:id/like", voteHandler.Like)
	r.POST("/posts/:id/dislike", voteHandler.Dislike)
	r.GET("/stats", siteHandler.Stats)

	// Moderator Routes
	moderated := r.Group("/")
	moderated.Use(middleware.ModeratorRequired())
	{
		moderated.DELETE("/posts/:id", postHandler.Delete)
		moderated.DELETE("/comments/:id", commentHandler.Delete)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Anonboard server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
