package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidscribe/vidscribe/pkg/pipeline"
)

// VideoProcessor runs the full transcript pipeline for one video.
type VideoProcessor interface {
	ProcessVideo(ctx context.Context, youtubeURL string) (*pipeline.VideoSummary, error)
}

type processRequest struct {
	YoutubeURL string `json:"youtube_url" binding:"required"`
}

// Server exposes the processing pipeline over HTTP.
type Server struct {
	engine    *gin.Engine
	processor VideoProcessor
	state     func() any
	logger    *slog.Logger
}

// New builds the HTTP server. state may be nil when no runtime is attached.
func New(processor VideoProcessor, state func() any) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine:    gin.New(),
		processor: processor,
		state:     state,
		logger:    slog.Default(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleStatus)
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/api/processVideo", s.handleProcessVideo)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	resp := gin.H{"service": "vidscribe", "status": "running"}
	if s.state != nil {
		resp["runtime"] = s.state()
	}
	c.JSON(http.StatusOK, resp)
}

// handleProcessVideo always answers with a status envelope. Pipeline failures
// are reported as status=Failure with the error message, not as bare 5xx
// bodies.
func (s *Server) handleProcessVideo(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "Failure",
			"error":  "youtube_url is required",
		})
		return
	}

	summary, err := s.processor.ProcessVideo(c.Request.Context(), req.YoutubeURL)
	if err != nil {
		s.logger.Error("video processing failed", "url", req.YoutubeURL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "Failure",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "Success",
		"result": summary,
	})
}

// Handler returns the http.Handler for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on addr until the listener fails or srv is shut down.
func (s *Server) Run(addr string) *http.Server {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", "error", err)
		}
	}()
	return srv
}
