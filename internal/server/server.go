// Package server exposes preview and generation over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tordrt/crudgen"
)

// Config configures the HTTP server
type Config struct {
	Addr           string
	AllowedOrigins []string

	// AllowedRoots restricts the output roots generate requests may name.
	// Empty allows any path.
	AllowedRoots []string

	// Options is the base generation configuration every request starts from
	Options crudgen.Options
}

// NewRouter builds the gin engine with every route registered
func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	RegisterRoutes(router, NewHandler(cfg.Options, cfg.AllowedRoots))
	return router
}

// NewServer creates the HTTP server
func NewServer(cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(cfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes registers the health check and the v1 API
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/preview", h.Preview)
		api.POST("/generate", h.Generate)
	}
}
