package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cmccomb/pastrami/internal/observability"
	"github.com/cmccomb/pastrami/pkg/history"
	"github.com/cmccomb/pastrami/pkg/session"
)

// Config holds server configuration
type Config struct {
	Addr         string
	SharedSecret string
	Manager      *session.Manager
	History      *history.Store
	Logger       zerolog.Logger
}

// Server exposes the session manager over WebSocket JSON-RPC.
type Server struct {
	addr         string
	sharedSecret string
	manager      *session.Manager
	history      *history.Store
	logger       zerolog.Logger

	server   *http.Server
	upgrader websocket.Upgrader
	clients  *ClientRegistry
	router   *RPCRouter
}

// authEnvelope is the first frame a client must send when a shared secret is
// configured.
type authEnvelope struct {
	Auth string `json:"auth"`
}

// NewServer creates a gateway server bound to a session manager.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if cfg.Manager == nil {
		return nil, fmt.Errorf("session manager is required")
	}

	s := &Server{
		addr:         cfg.Addr,
		sharedSecret: cfg.SharedSecret,
		manager:      cfg.Manager,
		history:      cfg.History,
		logger:       cfg.Logger,
		clients:      NewClientRegistry(),
		router:       NewRPCRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The GUI shell connects from a custom origin.
				return true
			},
		},
	}

	s.registerBuiltinMethods()
	return s, nil
}

// Router exposes the RPC router, mainly for tests.
func (s *Server) Router() *RPCRouter {
	return s.router
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("addr", s.addr).Msg("Gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gateway server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := newClient(conn)
	s.clients.Add(client)
	s.logger.Info().Str("client_id", client.ID).Str("remote", r.RemoteAddr).Msg("Client connected")

	defer func() {
		s.clients.Remove(client.ID)
		conn.Close()
		s.logger.Info().Str("client_id", client.ID).Msg("Client disconnected")
	}()

	if !s.authenticate(client, conn) {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		req, rpcErr := s.router.ParseRequest(data)
		if rpcErr != nil {
			_ = client.SendResponse(errorResponse("", rpcErr))
			continue
		}

		resp := s.router.RouteRequest(client, req)
		if err := client.SendResponse(resp); err != nil {
			s.logger.Warn().Err(err).Str("client_id", client.ID).Msg("Response write failed")
			return
		}
	}
}

// authenticate performs the shared-secret handshake. Without a configured
// secret every connection is accepted.
func (s *Server) authenticate(client *Client, conn *websocket.Conn) bool {
	if s.sharedSecret == "" {
		client.Authenticated = true
		return true
	}

	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	defer conn.SetReadDeadline(time.Time{})

	_, data, err := conn.ReadMessage()
	if err != nil {
		return false
	}

	var envelope authEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Auth != s.sharedSecret {
		_ = client.writeJSON(&AuthResult{Event: "auth", Success: false, Message: "invalid credentials"})
		s.logger.Warn().Str("client_id", client.ID).Msg("Authentication failed")
		return false
	}

	client.Authenticated = true
	_ = client.writeJSON(&AuthResult{Event: "auth", Success: true})
	return true
}
