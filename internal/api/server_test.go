package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain"
	"github.com/deskhub/deskhub/internal/store"
	"github.com/deskhub/deskhub/internal/testutil"
)

func testConfig() *domain.Config {
	cfg := domain.NewDefaultConfig()
	cfg.Users = map[string]domain.User{
		"1": {Name: "John Manager", Email: "manager@company.com", Role: "manager", Password: "password123"},
		"2": {Name: "Sarah Employee", Email: "employee@company.com", Role: "employee", Password: "password123"},
		"3": {Name: "Mike Client", Email: "client@company.com", Role: "client", Password: "password123"},
	}
	return cfg
}

func newTestServer(t *testing.T) (*Server, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	taskStore, err := store.Open(testutil.NewMemoryBlobStore(), clock, nil)
	require.NoError(t, err)
	return New(taskStore, testConfig(), clock, nil), clock
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server, email string) (access, refresh string) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/token/", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Access, resp.Refresh
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToken_Login(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/token/", "", map[string]string{
		"email": "manager@company.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "John Manager", resp.User.Name)
	assert.Equal(t, domain.RoleManager, resp.User.Role)
}

func TestToken_BadCredentials(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/token/", "", map[string]string{
		"email": "manager@company.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/token/", "", map[string]string{
		"email": "nobody@company.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToken_Refresh(t *testing.T) {
	s, _ := newTestServer(t)
	_, refresh := login(t, s, "employee@company.com")

	rec := doJSON(t, s, http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["access"])

	// The new access token works.
	rec = doJSON(t, s, http.MethodGet, "/api/tasks/", resp["access"], nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A refresh token is not an access token.
	rec = doJSON(t, s, http.MethodGet, "/api/tasks/", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToken_Expiry(t *testing.T) {
	s, clock := newTestServer(t)
	access, _ := login(t, s, "employee@company.com")

	rec := doJSON(t, s, http.MethodGet, "/api/tasks/", access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	clock.Advance(2 * time.Hour)
	rec = doJSON(t, s, http.MethodGet, "/api/tasks/", access, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTasks_RequireAuth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/tasks/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/tasks/", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTasks_ListAndFilter(t *testing.T) {
	s, _ := newTestServer(t)
	access, _ := login(t, s, "employee@company.com")

	rec := doJSON(t, s, http.MethodGet, "/api/tasks/", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 2) // seed tasks

	rec = doJSON(t, s, http.MethodGet, "/api/tasks/?status=in_progress", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Network connectivity issues", tasks[0].Title)

	rec = doJSON(t, s, http.MethodGet, "/api/tasks/?assignee=2", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	rec = doJSON(t, s, http.MethodGet, "/api/tasks/?status=bogus", access, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasks_CreateRequiresManager(t *testing.T) {
	s, _ := newTestServer(t)
	employee, _ := login(t, s, "employee@company.com")
	manager, _ := login(t, s, "manager@company.com")

	body := map[string]any{"title": "New request", "clientId": "3", "clientName": "Mike Client"}

	rec := doJSON(t, s, http.MethodPost, "/api/tasks/", employee, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/tasks/", manager, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var task domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, domain.StatusPending, task.Status)

	// Creator comes from the token, not the body.
	assert.Equal(t, "1", task.CreatedByID)
	assert.Equal(t, "John Manager", task.CreatedByName)
}

func TestTasks_UpdateAndLogs(t *testing.T) {
	s, _ := newTestServer(t)
	access, _ := login(t, s, "employee@company.com")

	rec := doJSON(t, s, http.MethodPatch, "/api/tasks/1/", access, map[string]any{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var task domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, domain.StatusInProgress, task.Status)

	rec = doJSON(t, s, http.MethodGet, "/api/tasks/1/logs/", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs []domain.TaskHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "Status changed from pending to in_progress", logs[0].Details)
	assert.Equal(t, "2", logs[0].UserID)
}

func TestTasks_UpdateResolvesAssigneeName(t *testing.T) {
	s, _ := newTestServer(t)
	access, _ := login(t, s, "manager@company.com")

	rec := doJSON(t, s, http.MethodPatch, "/api/tasks/1/", access, map[string]any{
		"assignedToId": "2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var task domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "Sarah Employee", task.AssignedToName)
}

func TestTasks_UpdateRejectsUnknownAssignee(t *testing.T) {
	s, _ := newTestServer(t)
	access, _ := login(t, s, "manager@company.com")

	rec := doJSON(t, s, http.MethodPatch, "/api/tasks/1/", access, map[string]any{
		"assignedToId": "ghost",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The task is untouched.
	rec = doJSON(t, s, http.MethodGet, "/api/tasks/1/", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var task domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.False(t, task.IsAssigned())
}

func TestTasks_UpdateValidation(t *testing.T) {
	s, _ := newTestServer(t)
	access, _ := login(t, s, "employee@company.com")

	rec := doJSON(t, s, http.MethodPatch, "/api/tasks/1/", access, map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPatch, "/api/tasks/1/", access, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPatch, "/api/tasks/missing/", access, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_DeleteRequiresManager(t *testing.T) {
	s, _ := newTestServer(t)
	employee, _ := login(t, s, "employee@company.com")
	manager, _ := login(t, s, "manager@company.com")

	rec := doJSON(t, s, http.MethodDelete, "/api/tasks/1/", employee, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/tasks/1/", manager, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/tasks/1/", manager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/tasks/1/", manager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClients(t *testing.T) {
	s, _ := newTestServer(t)
	access, _ := login(t, s, "employee@company.com")

	rec := doJSON(t, s, http.MethodGet, "/api/clients/", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var clients []domain.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "Mike Client", clients[0].Name)

	rec = doJSON(t, s, http.MethodGet, "/api/clients/3/", access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Non-client users are not exposed here.
	rec = doJSON(t, s, http.MethodGet, "/api/clients/1/", access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
