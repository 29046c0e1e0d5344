package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dipeshtilara/NotesHub/internal/config"
	"github.com/dipeshtilara/NotesHub/internal/logger"
	"github.com/dipeshtilara/NotesHub/internal/services"
	"github.com/dipeshtilara/NotesHub/internal/storage"
)

type Server struct {
	engine *gin.Engine
	cfg    config.Config
}

func NewServer(cfg config.Config, log *logger.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	store, err := storage.NewClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	notesSvc := services.NewNotesService(cfg)
	pipeline := services.NewPipeline(store, store, notesSvc, log)
	resolver := services.NewResolver(store, log)
	shareSvc := services.NewShareService(cfg)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))
	engine.Use(MaxBodySize(cfg.MaxUploadBytes))
	engine.Use(CORS())

	api := NewAPI(cfg, store, pipeline, resolver, shareSvc, log)
	registerRoutes(engine, api)

	return &Server{engine: engine, cfg: cfg}, nil
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	return s.engine.Run(addr)
}
