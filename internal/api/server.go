// Package api exposes the task store over HTTP.
// Endpoints mirror the CLI: token login, task CRUD, per-task audit
// logs and requester lookup. Role gating lives here, never in the
// store; the acting identity always comes from the bearer token.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/deskhub/deskhub/internal/domain"
)

// Server is the HTTP API server.
type Server struct {
	store  domain.TaskStore
	config *domain.Config
	tokens *tokenStore
	logger domain.Logger
	mux    *http.ServeMux
}

// New creates a new Server.
func New(store domain.TaskStore, config *domain.Config, clock domain.Clock, logger domain.Logger) *Server {
	s := &Server{
		store:  store,
		config: config,
		tokens: newTokenStore(clock, tokenTTL(config)),
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Auth
	s.mux.HandleFunc("POST /api/token/{$}", s.handleToken)
	s.mux.HandleFunc("POST /api/token/refresh/{$}", s.handleTokenRefresh)

	// Tasks
	s.mux.HandleFunc("GET /api/tasks/{$}", s.requireAuth(s.handleTaskList))
	s.mux.HandleFunc("POST /api/tasks/{$}", s.requireManager(s.handleTaskCreate))
	s.mux.HandleFunc("GET /api/tasks/{id}/{$}", s.requireAuth(s.handleTaskGet))
	s.mux.HandleFunc("PUT /api/tasks/{id}/{$}", s.requireAuth(s.handleTaskUpdate))
	s.mux.HandleFunc("PATCH /api/tasks/{id}/{$}", s.requireAuth(s.handleTaskUpdate))
	s.mux.HandleFunc("DELETE /api/tasks/{id}/{$}", s.requireManager(s.handleTaskDelete))
	s.mux.HandleFunc("GET /api/tasks/{id}/logs/{$}", s.requireAuth(s.handleTaskLogs))

	// Clients
	s.mux.HandleFunc("GET /api/clients/{$}", s.requireAuth(s.handleClientList))
	s.mux.HandleFunc("GET /api/clients/{id}/{$}", s.requireAuth(s.handleClientGet))

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authHandler is a handler that receives the authenticated actor.
type authHandler func(w http.ResponseWriter, r *http.Request, actor domain.Identity)

// requireAuth resolves the bearer token to an identity.
func (s *Server) requireAuth(next authHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.actorFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r, *actor)
	}
}

// requireManager additionally gates the handler on the manager role.
func (s *Server) requireManager(next authHandler) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request, actor domain.Identity) {
		if actor.Role != domain.RoleManager {
			writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		next(w, r, actor)
	})
}

func (s *Server) actorFromRequest(r *http.Request) (*domain.Identity, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, domain.ErrInvalidToken
	}
	userID, err := s.tokens.Resolve(token)
	if err != nil {
		return nil, err
	}
	return s.identityFor(userID)
}

func (s *Server) identityFor(userID string) (*domain.Identity, error) {
	user, ok := s.config.Users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Identity{
		ID:    userID,
		Name:  user.Name,
		Email: user.Email,
		Role:  domain.Role(user.Role),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
