package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/deskhub/deskhub/internal/domain"
)

// handleTaskList implements GET /api/tasks/ with optional
// status, assignee and client query filters.
func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	q := r.URL.Query()
	switch {
	case q.Get("status") != "":
		status := domain.Status(q.Get("status"))
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, domain.ErrInvalidStatus.Error())
			return
		}
		writeJSON(w, http.StatusOK, s.store.GetTasksByStatus(status))
	case q.Get("assignee") != "":
		writeJSON(w, http.StatusOK, s.store.GetTasksByAssignee(q.Get("assignee")))
	case q.Get("client") != "":
		writeJSON(w, http.StatusOK, s.store.GetTasksByClient(q.Get("client")))
	default:
		writeJSON(w, http.StatusOK, s.store.Tasks())
	}
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	task, err := s.store.GetTaskByID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type taskCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ClientID    string     `json:"clientId"`
	ClientName  string     `json:"clientName"`
	DueDate     *time.Time `json:"dueDate"`
}

// handleTaskCreate implements POST /api/tasks/. The creator identity
// comes from the token, never from the body.
func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request, actor domain.Identity) {
	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	draft := domain.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		DueDate:     req.DueDate,
	}
	if draft.ClientID == "" {
		draft.ClientID = actor.ID
		draft.ClientName = actor.Name
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.store.Create(draft, actor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type taskUpdateRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	AssignedToID   *string    `json:"assignedToId"`
	AssignedToName *string    `json:"assignedToName"`
	DueDate        *time.Time `json:"dueDate"`
}

// handleTaskUpdate implements PUT and PATCH /api/tasks/{id}/.
// Absent fields are left unchanged; an explicit empty assignedToId
// clears the assignment.
func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request, actor domain.Identity) {
	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	changes := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, domain.ErrInvalidStatus.Error())
			return
		}
		changes.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.IsValid() {
			writeError(w, http.StatusBadRequest, domain.ErrInvalidPriority.Error())
			return
		}
		changes.Priority = &priority
	}
	if req.AssignedToID != nil {
		if *req.AssignedToID == "" {
			changes.Unassign = true
		} else {
			changes.AssignedToID = req.AssignedToID
			changes.AssignedToName = req.AssignedToName
			if changes.AssignedToName == nil {
				id, err := s.identityFor(*req.AssignedToID)
				if err != nil {
					writeError(w, http.StatusBadRequest, domain.ErrUserNotFound.Error())
					return
				}
				changes.AssignedToName = &id.Name
			}
		}
	}
	if changes.IsZero() {
		writeError(w, http.StatusBadRequest, domain.ErrNoFieldsToUpdate.Error())
		return
	}

	task, err := s.store.Patch(r.PathValue("id"), changes, actor)
	if errors.Is(err, domain.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, domain.ErrPartialAssignment) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	err := s.store.Delete(r.PathValue("id"))
	if errors.Is(err, domain.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTaskLogs implements GET /api/tasks/{id}/logs/. It answers for
// deleted tasks too; the audit log outlives the task.
func (s *Server) handleTaskLogs(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	writeJSON(w, http.StatusOK, s.store.GetTaskHistory(r.PathValue("id")))
}
