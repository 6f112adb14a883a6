package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ppiankov/authorscope/internal/detect"
	"github.com/ppiankov/authorscope/internal/llm"
	"github.com/ppiankov/authorscope/internal/model"
	"github.com/ppiankov/authorscope/internal/pipeline"
)

const serviceName = "authorscope"

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Content string `json:"content"`
	Engine  string `json:"engine,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Server exposes the pipeline over HTTP
type Server struct {
	pipeline *pipeline.Pipeline
	config   *model.Config
	router   *gin.Engine
}

// NewServer wires routes and middleware. The gin mode is left to the caller.
func NewServer(p *pipeline.Pipeline, cfg *model.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Output.Verbose {
		router.Use(gin.Logger())
	}

	router.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))

	s := &Server{pipeline: p, config: cfg, router: router}

	router.GET("/health", s.handleHealth)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/analyze", s.handleAnalyze)
		apiGroup.GET("/engines", s.handleEngines)
	}

	return s
}

// corsConfig treats an empty list or "*" as allow-all; cors.New panics on an empty list
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Handler returns the HTTP handler for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting %s API on %s", serviceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server exited")
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"status":  "OK",
		"service": serviceName,
		"engine":  s.config.Engine,
	}
	if stats, ok := s.pipeline.CacheStats(); ok {
		resp["cache"] = stats
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleEngines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"engines": detect.Engines(s.config),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	if limit := s.config.HTTP.MaxBodyBytes; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := detect.ValidateContent(req.Content, s.config.MinLength); err != nil {
		abort(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("content must be at least %d characters", s.config.MinLength), err)
		return
	}

	report, err := s.pipeline.AnalyzeText(c.Request.Context(), req.Content, req.Engine)
	if err != nil {
		status, message := statusFor(err)
		abort(c, status, message, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// statusFor maps pipeline errors onto HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, detect.ErrContentTooShort):
		return http.StatusUnprocessableEntity, "content too short"
	case errors.Is(err, detect.ErrUnknownEngine):
		return http.StatusBadRequest, "unknown engine"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "analysis timed out"
	case errors.Is(err, llm.ErrRemoteCall):
		return http.StatusBadGateway, "remote model call failed"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}

func abort(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  status,
		Message: message,
		Error:   err.Error(),
	})
}
