package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/frencon/backend/internal/blog"
	"github.com/frencon/backend/internal/config"
	"github.com/frencon/backend/internal/database"
	"github.com/frencon/backend/internal/handlers"
	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/store"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// New wires stores and handlers and returns a configured HTTP server.
func New(cfg *config.Config, db database.Service) *http.Server {
	gormDB := db.DB()
	nominees := store.NewNomineeStore(gormDB)
	votes := store.NewVoteStore(gormDB)
	posts := blog.NewStore(cfg.BlogDir)

	s := &Server{
		cfg:     cfg,
		db:      db,
		handler: handlers.NewHandler(gormDB, nominees, votes, posts, cfg),
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.ServerPort,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Live table stream; anonymous viewers get a read-only table.
	r.GET("/ws/:gameType", middleware.OptionalAuth(s.cfg.JWTSecret), s.handler.WS.Handle)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)
		api.POST("/auth/logout", s.handler.Auth.Logout)
		api.GET("/auth/me", middleware.Auth(s.cfg.JWTSecret), s.handler.Auth.Me)

		// Public reads
		api.GET("/users", s.handler.User.List)
		api.GET("/blog", s.handler.Blog.List)
		api.GET("/blog/:slug", s.handler.Blog.Get)
		api.GET("/videos", s.handler.Video.List)
		api.GET("/merch", s.handler.Merch.List)

		nominations := api.Group("/nominations/:gameType")
		{
			nominations.GET("", s.handler.Nominee.List)
			nominations.GET("/table", middleware.OptionalAuth(s.cfg.JWTSecret), s.handler.Table.Get)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.Auth(s.cfg.JWTSecret))
		{
			protected.PUT("/profile", s.handler.User.UpdateProfile)
			protected.POST("/videos", s.handler.Video.Create)
			protected.POST("/merch", s.handler.Merch.Create)

			protected.POST("/nominations/:gameType", s.handler.Nominee.Create)
			protected.DELETE("/nominations/:gameType/:id", s.handler.Nominee.Delete)
			protected.PUT("/nominations/:gameType/:id/vote", s.handler.Vote.Set)
		}
	}

	return r
}
