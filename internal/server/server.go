// Package server exposes the workflow orchestrator over an HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/velamalamk2016-ui/aisaathi/internal/agents"
	"github.com/velamalamk2016-ui/aisaathi/internal/orchestrator"
	"github.com/velamalamk2016-ui/aisaathi/internal/templates"
	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// Server wires the orchestrator, agent registry, and template store behind
// the HTTP API.
type Server struct {
	orch      *orchestrator.Orchestrator
	registry  *agents.Registry
	templates *templates.Store

	httpServer *http.Server
}

// New creates a Server listening on addr.
func New(addr string, orch *orchestrator.Orchestrator, registry *agents.Registry, store *templates.Store) *Server {
	s := &Server{
		orch:      orch,
		registry:  registry,
		templates: store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/agentic-workflow/execute", s.handleExecute)
	mux.HandleFunc("GET /api/agentic-workflow/status/{id}", s.handleStatus)
	mux.HandleFunc("GET /api/agentic-workflow/list", s.handleList)
	mux.HandleFunc("GET /api/agentic-workflow/history", s.handleHistory)
	mux.HandleFunc("POST /api/agentic-workflow/templates/execute/{name}", s.handleExecuteTemplate)
	mux.HandleFunc("GET /api/agentic-workflow/templates", s.handleTemplates)
	mux.HandleFunc("GET /api/agentic-workflow/agents", s.handleAgents)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           corsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware allows cross-origin requests from the web frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// executeRequest is the body of POST /api/agentic-workflow/execute.
type executeRequest struct {
	WorkflowID string            `json:"workflow_id"`
	Tasks      []models.TaskSpec `json:"tasks"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "AI Saathi Agentic Workflow API",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	history := s.orch.ExecutionHistory()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"service":         "agentic-workflow-api",
		"total_workflows": len(history),
	})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "workflow has no tasks")
		return
	}

	wf := s.orch.CreateWorkflow(r.Context(), req.WorkflowID, req.Tasks)
	writeJSON(w, http.StatusOK, wf)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	wf, ok := s.orch.GetWorkflowStatus(id)
	if !ok {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		WorkflowID      string  `json:"workflow_id"`
		Status          string  `json:"status"`
		ExecutionTime   float64 `json:"execution_time"`
		TotalTasks      int     `json:"total_tasks"`
		SuccessfulTasks int     `json:"successful_tasks"`
	}

	entries := []entry{}
	for _, id := range s.orch.ListWorkflows() {
		wf, ok := s.orch.GetWorkflowStatus(id)
		if !ok {
			continue
		}
		e := entry{
			WorkflowID:    wf.WorkflowID,
			Status:        string(wf.Status),
			ExecutionTime: wf.ExecutionTime,
		}
		if wf.FinalOutput != nil {
			e.TotalTasks = wf.FinalOutput.TotalTasks
			e.SuccessfulTasks = wf.FinalOutput.SuccessfulTasks
		}
		entries = append(entries, e)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"workflows": entries,
		"total":     len(entries),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		WorkflowID    string              `json:"workflow_id"`
		Status        string              `json:"status"`
		ExecutionTime float64             `json:"execution_time"`
		FinalOutput   *models.FinalOutput `json:"final_output"`
		CreatedAt     string              `json:"created_at"`
	}

	history := s.orch.ExecutionHistory()
	entries := make([]entry, 0, len(history))
	for _, wf := range history {
		e := entry{
			WorkflowID:    wf.WorkflowID,
			Status:        string(wf.Status),
			ExecutionTime: wf.ExecutionTime,
			FinalOutput:   wf.FinalOutput,
		}
		if len(wf.Tasks) > 0 {
			e.CreatedAt = wf.Tasks[0].CreatedAt.Format(time.RFC3339)
		}
		entries = append(entries, e)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"history": entries,
		"total":   len(entries),
	})
}

func (s *Server) handleExecuteTemplate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	tpl, ok := s.templates.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	workflowID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	wf := s.orch.CreateWorkflow(r.Context(), workflowID, tpl.Tasks)
	writeJSON(w, http.StatusOK, wf)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	tpls := s.templates.Describe()
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": tpls,
		"total":     len(tpls),
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	infos := s.registry.Describe()
	byName := make(map[string]agents.Info, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents": byName,
		"total":  len(byName),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
