package web

import (
	"context"
	"net/http"

	"maxagent/agent"
	"maxagent/config"
	"maxagent/database"
	"maxagent/ingest"
	"maxagent/web/handlers"
	"maxagent/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	agent  *agent.Agent
	logger *zap.Logger
	config *config.Config
	store  *database.PostgresStore
	ingest *ingest.Service
}

func NewServer(agent *agent.Agent, store *database.PostgresStore, ingestService *ingest.Service, logger *zap.Logger, config *config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	server := &Server{
		router: router,
		agent:  agent,
		logger: logger,
		config: config,
		store:  store,
		ingest: ingestService,
	}

	if err := server.setupRoutes(); err != nil {
		return nil, err
	}
	return server, nil
}

func (s *Server) setupRoutes() error {
	chatHandler := handlers.NewChatHandler(s.agent, s.logger)
	documentsHandler := handlers.NewDocumentsHandler(s.store, s.ingest, s.config, s.logger)

	rateLimiter, err := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		MessagesPerMinute: s.config.RateLimitMessagesPerMin,
		BurstSize:         s.config.RateLimitBurstSize,
	}, s.logger)
	if err != nil {
		return err
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := s.router.Group("/api")
	api.POST("/chat", rateLimiter.Limit(), chatHandler.SendMessage)
	api.GET("/documents", documentsHandler.List)
	api.GET("/documents/search", documentsHandler.Search)
	api.POST("/documents", documentsHandler.Upload)
	api.DELETE("/documents/:id", documentsHandler.Delete)
	api.GET("/stats", documentsHandler.Stats)
	return nil
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
