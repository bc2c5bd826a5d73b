package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/database"
	"github.com/emilythestrangee/devflow/backend/internal/handlers"
	"github.com/emilythestrangee/devflow/backend/internal/middleware"
)

type Server struct {
	db        *database.DB
	handler   *handlers.Handler
	jwtSecret []byte
}

// New wires the router around the injected database handle and handlers.
func New(port string, db *database.DB, handler *handlers.Handler, jwtSecret []byte) *http.Server {
	s := &Server{
		db:        db,
		handler:   handler,
		jwtSecret: jwtSecret,
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)
		api.POST("/questions/:id/views", s.handler.Question.IncrementViews)

		// Answer routes (public reads)
		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswers)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.jwtSecret))
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)

			// Question protected routes
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.PUT("/questions/:id", s.handler.Question.EditQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)

			// Answer protected routes
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.DELETE("/answers/:answerId", s.handler.Answer.DeleteAnswer)

			// Vote protected routes
			protected.POST("/votes", s.handler.Vote.CastVote)
			protected.GET("/votes/state", s.handler.Vote.GetVoteState)

			// Collection protected routes
			protected.POST("/questions/:id/save", s.handler.Collection.ToggleSave)
			protected.GET("/collection", s.handler.Collection.GetSaved)
		}
	}

	return r
}
