package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/ghrank/internal/config"
	"github.com/agenthands/ghrank/internal/core"
	"github.com/agenthands/ghrank/internal/core/model"
	"github.com/agenthands/ghrank/internal/core/pagerank"
)

type Server struct {
	Ranker  *core.Ranker
	Config  *config.Config
	Logger  *zap.Logger
	Metrics http.Handler
}

func NewServer(cfg *config.Config, ranker *core.Ranker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Ranker: ranker,
		Config: cfg,
		Logger: logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.POST("/rank", s.Rank)
	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.Metrics))
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.Logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// RankRequest fields left out of the body fall back to the [rank] config section.
type RankRequest struct {
	Login         string   `json:"login" binding:"required"`
	Depth         *int     `json:"depth"`
	DampingFactor *float64 `json:"damping_factor"`
	Limit         *int     `json:"limit"`
	Classify      *bool    `json:"classify"`
}

func (req RankRequest) options(defaults config.RankConfig) pagerank.Options {
	opts := pagerank.OptionsFromConfig(defaults)
	if req.Depth != nil {
		opts.MaxDepth = *req.Depth
	}
	if req.DampingFactor != nil {
		opts.DampingFactor = *req.DampingFactor
	}
	if req.Limit != nil {
		opts.NeighborLimit = *req.Limit
	}
	if req.Classify != nil {
		opts.Classify = *req.Classify
	}
	return opts
}

func (s *Server) Rank(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	opts := req.options(s.Config.Rank)
	if err := opts.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.Ranker.Run(c.Request.Context(), req.Login, opts)
	if err != nil {
		s.Logger.Warn("rank request failed", zap.String("login", req.Login), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
