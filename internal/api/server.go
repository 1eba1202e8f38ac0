package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/miniblog/internal/api/handler"
	"github.com/martijn/miniblog/internal/api/middleware"
	"github.com/martijn/miniblog/internal/api/templates"
	"github.com/martijn/miniblog/internal/core/service"
	"github.com/martijn/miniblog/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
}

// NewServer creates the HTTP server and wires the route table. Every
// route passes through exactly one guard or none: login and the landing
// page are public, about/logout see identity when present, and the
// blog requires it.
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	blogService *service.BlogService,
) (*Server, error) {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	pageHandler := handler.NewPageHandler()
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)

	// Guards
	requireUser := middleware.RequireUser(authService)
	provideUser := middleware.ProvideUser(authService)

	// Public routes
	router.GET("/", pageHandler.Home)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)

	// Identity-aware routes (anonymous allowed)
	router.GET("/about", provideUser, pageHandler.About)
	router.GET("/logout", provideUser, authHandler.Logout)

	// Authenticated routes
	router.GET("/faq", requireUser, pageHandler.FAQ)

	blog := router.Group("/")
	blog.Use(requireUser)
	{
		blog.GET("/blog", blogHandler.ListPosts)
		blog.POST("/blog", blogHandler.CreatePost)
		blog.GET("/posts/:id", blogHandler.ShowPost)
		blog.POST("/posts/:id", blogHandler.AddComment)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return &Server{
		router: router,
		config: cfg,
	}, nil
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.ListenHost, s.config.ListenPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		fmt.Printf("Starting HTTPS server on %s\n", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	fmt.Printf("Starting HTTP server on %s\n", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
