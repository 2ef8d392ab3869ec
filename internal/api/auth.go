package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/deskhub/deskhub/internal/domain"
)

const (
	defaultAccessTTL = time.Hour
	refreshTTL       = 24 * time.Hour
)

func tokenTTL(config *domain.Config) time.Duration {
	if config == nil || config.Server.TokenTTL == "" {
		return defaultAccessTTL
	}
	ttl, err := time.ParseDuration(config.Server.TokenTTL)
	if err != nil || ttl <= 0 {
		return defaultAccessTTL
	}
	return ttl
}

// grant is one issued token.
type grant struct {
	userID  string
	expires time.Time
	refresh bool
}

// tokenStore issues and resolves opaque bearer tokens.
type tokenStore struct {
	mu        sync.Mutex
	grants    map[string]grant
	clock     domain.Clock
	accessTTL time.Duration
}

func newTokenStore(clock domain.Clock, accessTTL time.Duration) *tokenStore {
	return &tokenStore{
		grants:    make(map[string]grant),
		clock:     clock,
		accessTTL: accessTTL,
	}
}

func newToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Issue creates an access/refresh token pair for a user.
func (ts *tokenStore) Issue(userID string) (access, refresh string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := ts.clock.Now()
	access, refresh = newToken(), newToken()
	ts.grants[access] = grant{userID: userID, expires: now.Add(ts.accessTTL)}
	ts.grants[refresh] = grant{userID: userID, expires: now.Add(refreshTTL), refresh: true}
	return access, refresh
}

// Resolve returns the user id for a live access token.
func (ts *tokenStore) Resolve(token string) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	g, ok := ts.grants[token]
	if !ok || g.refresh || ts.clock.Now().After(g.expires) {
		return "", domain.ErrInvalidToken
	}
	return g.userID, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (ts *tokenStore) Refresh(token string) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	g, ok := ts.grants[token]
	if !ok || !g.refresh || ts.clock.Now().After(g.expires) {
		return "", domain.ErrInvalidToken
	}

	access := newToken()
	ts.grants[access] = grant{userID: g.userID, expires: ts.clock.Now().Add(ts.accessTTL)}
	return access, nil
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    domain.Identity `json:"user"`
}

// handleToken implements POST /api/token/: credential login.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	userID, user, ok := s.userByEmail(req.Email)
	if !ok || user.Password == "" ||
		subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
		return
	}

	access, refresh := s.tokens.Issue(userID)
	if s.logger != nil {
		s.logger.Info("", "api", "token issued for "+userID)
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Access:  access,
		Refresh: refresh,
		User: domain.Identity{
			ID:    userID,
			Name:  user.Name,
			Email: user.Email,
			Role:  domain.Role(user.Role),
		},
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// handleTokenRefresh implements POST /api/token/refresh/.
func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	access, err := s.tokens.Refresh(req.Refresh)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) userByEmail(email string) (string, domain.User, bool) {
	if email == "" {
		return "", domain.User{}, false
	}
	for id, user := range s.config.Users {
		if user.Email == email {
			return id, user, true
		}
	}
	return "", domain.User{}, false
}
