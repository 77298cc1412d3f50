package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/velamalamk2016-ui/aisaathi/internal/agents"
	"github.com/velamalamk2016-ui/aisaathi/internal/orchestrator"
	"github.com/velamalamk2016-ui/aisaathi/internal/templates"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	registry := agents.NewRegistry(nil)
	orch := orchestrator.New(registry)
	store := templates.NewStore()
	t.Cleanup(store.Close)
	return New(":0", orch, registry, store)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestExecuteWorkflow(t *testing.T) {
	s := newTestServer(t)

	reqBody := `{
		"workflow_id": "wf-1",
		"tasks": [
			{"id": "plan", "agent": "lesson_plan", "input_data": {"subject": "Math", "topic": "Fractions", "grade": "5"}},
			{"id": "quiz", "agent": "assessment", "input_data": {"subject": "Math", "topic": "Fractions", "grade": "5"}, "dependencies": ["plan"]}
		]
	}`
	rec := doRequest(t, s, http.MethodPost, "/api/agentic-workflow/execute", reqBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["workflow_id"] != "wf-1" {
		t.Errorf("workflow_id = %v", body["workflow_id"])
	}
	if body["status"] != "completed" {
		t.Errorf("status = %v, want completed", body["status"])
	}

	final, ok := body["final_output"].(map[string]any)
	if !ok {
		t.Fatalf("final_output = %v", body["final_output"])
	}
	if final["successful_tasks"] != float64(2) {
		t.Errorf("successful_tasks = %v, want 2", final["successful_tasks"])
	}
}

func TestExecuteWorkflowFailureIsInBody(t *testing.T) {
	s := newTestServer(t)

	// Circular dependency: the workflow fails, but the API call succeeds
	reqBody := `{
		"workflow_id": "wf-cycle",
		"tasks": [
			{"id": "a", "agent": "translation", "input_data": {"text": "hi", "target_language": "hindi"}, "dependencies": ["b"]},
			{"id": "b", "agent": "translation", "input_data": {"text": "hi", "target_language": "tamil"}, "dependencies": ["a"]}
		]
	}`
	rec := doRequest(t, s, http.MethodPost, "/api/agentic-workflow/execute", reqBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "failed" {
		t.Errorf("status = %v, want failed", body["status"])
	}
	errMsg, _ := body["error"].(string)
	if !strings.Contains(errMsg, "circular dependency or missing dependency") {
		t.Errorf("error = %q", errMsg)
	}
}

func TestExecuteWorkflowBadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/agentic-workflow/execute", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/agentic-workflow/execute", `{"workflow_id": "x", "tasks": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty tasks: status = %d, want 400", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	reqBody := `{"workflow_id": "wf-status", "tasks": [{"agent": "storyteller", "input_data": {"topic": "Rivers", "grade": "3"}}]}`
	doRequest(t, s, http.MethodPost, "/api/agentic-workflow/execute", reqBody)

	rec := doRequest(t, s, http.MethodGet, "/api/agentic-workflow/status/wf-status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["workflow_id"] != "wf-status" {
		t.Errorf("workflow_id = %v", body["workflow_id"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/agentic-workflow/status/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown workflow: status = %d, want 404", rec.Code)
	}
}

func TestListAndHistory(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []string{"first", "second"} {
		reqBody := `{"workflow_id": "` + id + `", "tasks": [{"agent": "translation", "input_data": {"text": "hi", "target_language": "hindi"}}]}`
		doRequest(t, s, http.MethodPost, "/api/agentic-workflow/execute", reqBody)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/agentic-workflow/list", "")
	body := decodeBody(t, rec)
	if body["total"] != float64(2) {
		t.Errorf("list total = %v, want 2", body["total"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/agentic-workflow/history", "")
	body = decodeBody(t, rec)
	if body["total"] != float64(2) {
		t.Errorf("history total = %v, want 2", body["total"])
	}
	entries, _ := body["history"].([]any)
	if len(entries) != 2 {
		t.Fatalf("history entries = %d", len(entries))
	}
	first, _ := entries[0].(map[string]any)
	if first["workflow_id"] != "first" {
		t.Errorf("history[0].workflow_id = %v", first["workflow_id"])
	}
}

func TestExecuteTemplate(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/agentic-workflow/templates/execute/assessment_workflow", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "completed" {
		t.Errorf("status = %v, want completed", body["status"])
	}
	final, _ := body["final_output"].(map[string]any)
	if final["total_tasks"] != float64(2) {
		t.Errorf("total_tasks = %v, want 2", final["total_tasks"])
	}

	rec = doRequest(t, s, http.MethodPost, "/api/agentic-workflow/templates/execute/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown template: status = %d, want 404", rec.Code)
	}
}

func TestTemplatesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/agentic-workflow/templates", "")
	body := decodeBody(t, rec)
	if body["total"] != float64(3) {
		t.Errorf("total = %v, want 3", body["total"])
	}
}

func TestAgentsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/agentic-workflow/agents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"] != float64(6) {
		t.Errorf("total = %v, want 6", body["total"])
	}
	agentsMap, _ := body["agents"].(map[string]any)
	if _, ok := agentsMap["storyteller"]; !ok {
		t.Error("storyteller missing from agents map")
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/agentic-workflow/execute", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
