package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/noteflow/pitch2midi/internal/errors"
	"github.com/noteflow/pitch2midi/internal/node"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleListNodes returns the registered node schemas for the graph UI
func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request) {
	schemas := make([]node.Schema, 0)
	for _, n := range s.registry.All() {
		schemas = append(schemas, n.Describe())
	}
	s.writeJSON(w, http.StatusOK, schemas)
}

// handleRunNode executes a single node with JSON parameters
func (s *Server) handleRunNode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	n, ok := s.registry.Get(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown node: "+name)
		return
	}

	var params map[string]any
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := n.Run(r.Context(), params)
	if err != nil {
		s.logger.Error("node failed", slog.String("node", name), slog.Any("error", err))
		switch {
		case apperrors.IsValidation(err):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	resp := map[string]any{"node": name}
	if result != nil {
		resp["result"] = result
		resp["type"] = string(n.Describe().Returns)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
