package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dirserve/internal/config"
	"dirserve/internal/tree"
	"dirserve/internal/util"
)

// Server answers requests against a single activated tree. It starts
// disabled; see [Server.Activate] and [Server.Stop].
type Server struct {
	engine    *gin.Engine
	resolver  *Resolver
	state     state
	stats     *stats
	stopQuery string
	logger    util.Logger
}

func New(cfg *config.Config) (*Server, error) {
	resolver, err := NewResolver(cfg.IndexFile, cfg.NotFoundFile)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	srv := &Server{
		engine:    engine,
		resolver:  resolver,
		stats:     newStats(),
		stopQuery: cfg.StopQuery,
		logger:    util.GetLogger("server"),
	}

	engine.Use(requestLogger(util.GetLogger("http")), gin.Recovery())
	engine.GET("/*path", srv.handleRequest)
	engine.HEAD("/*path", srv.handleRequest)
	engine.NoMethod(srv.handleNoMethod)

	return srv, nil
}

// Handler returns the http.Handler serving all requests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Activate starts serving root. It returns false, leaving the current root
// in place, when the server is already enabled.
func (s *Server) Activate(root tree.Root) bool {
	generation, ok := s.state.activate(root)
	if !ok {
		s.logger.Debug().Str("generation", generation.String()).Msg("Activation ignored, already enabled")
		return false
	}
	s.logger.Info().Str("generation", generation.String()).Msg("Server enabled")
	return true
}

// Stop disables the server until the next Activate.
func (s *Server) Stop() {
	if _, generation, ok := s.state.current(); ok {
		s.disable(generation, "stopped")
	}
}

// Enabled reports whether requests are currently being served.
func (s *Server) Enabled() bool {
	_, _, ok := s.state.current()
	return ok
}

func (s *Server) Stats() Stats {
	return s.stats.snapshot()
}

func (s *Server) disable(generation uuid.UUID, reason string) {
	if s.state.disable(generation) {
		s.stats.stops.Inc()
		s.logger.Info().Str("reason", reason).Msg("Server disabled")
	}
}
