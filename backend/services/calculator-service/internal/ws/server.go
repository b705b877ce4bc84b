package ws

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Options tunes the live channel.
type Options struct {
	WriteTimeout time.Duration

	// AllowedOrigins lists browser origins (scheme://host[:port]) allowed to
	// connect. Empty allows any origin.
	AllowedOrigins []string
}

// Server upgrades HTTP connections to the live calculator channel.
type Server struct {
	manager      *Manager
	processor    MessageProcessor
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(manager *Manager, processor MessageProcessor, opts Options, logger *zap.Logger) *Server {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	return &Server{
		manager:      manager,
		processor:    processor,
		logger:       logger,
		writeTimeout: opts.WriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}
}

// HandleWS is HTTP handler for /ws/live endpoint.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("origin", r.Header.Get("Origin")), zap.Error(err))
		return
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(id, conn, s.processor, s.writeTimeout, s.logger, func(id string) {
		s.manager.Remove(id)
		cancel()
	})
	s.manager.Add(connection)

	go connection.Start(ctx)
	s.logger.Info("live client connected", zap.String("conn_id", id))
}

// originChecker allows requests without an Origin header (non-browser
// clients) and browser requests from a listed origin.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		_, ok := set[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}

// ParseOrigins splits a comma separated origin list.
func ParseOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
