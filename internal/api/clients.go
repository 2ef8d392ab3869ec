package api

import (
	"net/http"

	"github.com/deskhub/deskhub/internal/domain"
)

// handleClientList implements GET /api/clients/: the configured users
// with the client role, in id order.
func (s *Server) handleClientList(w http.ResponseWriter, _ *http.Request, _ domain.Identity) {
	clients := make([]domain.Identity, 0)
	for _, id := range s.config.Identities() {
		if id.Role == domain.RoleClient {
			clients = append(clients, id)
		}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleClientGet(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	id, err := s.identityFor(r.PathValue("id"))
	if err != nil || id.Role != domain.RoleClient {
		writeError(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, id)
}
