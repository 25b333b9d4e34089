package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/VictoriaMetrics/metrics"

	"github.com/dmitrijs2005/metastore/internal/common"
	"github.com/dmitrijs2005/metastore/internal/models"
	"github.com/dmitrijs2005/metastore/internal/server/services"
)

func (s *HTTPServer) getMetadata(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")

	doc, err := s.metadata.GetDocument(r.Context(), project)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, doc)
}

func (s *HTTPServer) putMetadata(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid document", http.StatusBadRequest)
		return
	}

	fingerprint, err := s.metadata.SaveDocument(r.Context(), project, &doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Metadata saved", "project", project, "fingerprint", fingerprint)
	s.writeJSON(w, r, http.StatusOK, map[string]string{"fingerprint": fingerprint})
}

func (s *HTTPServer) createProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid project", http.StatusBadRequest)
		return
	}

	if err := s.metadata.CreateProject(r.Context(), req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Project created", "project", req.Name)
	s.writeJSON(w, r, http.StatusCreated, map[string]string{"name": req.Name})
}

func (s *HTTPServer) listProjects(w http.ResponseWriter, r *http.Request) {
	pageToken := r.URL.Query().Get("pageToken")
	maxResults := 0
	if v := r.URL.Query().Get("maxResults"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid maxResults", http.StatusBadRequest)
			return
		}
		maxResults = n
	}

	names, next, err := s.metadata.ListProjects(r.Context(), pageToken, maxResults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	type project struct {
		Name string `json:"name"`
	}
	resp := struct {
		Projects      []project `json:"projects"`
		NextPageToken string    `json:"nextPageToken,omitempty"`
	}{Projects: make([]project, 0, len(names)), NextPageToken: next}
	for _, name := range names {
		resp.Projects = append(resp.Projects, project{Name: name})
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *HTTPServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	metrics.WritePrometheus(w, true)
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), "failed to write response", "error", err.Error())
	}
}

// writeError maps service errors onto the wire contract. The 412 and 409
// bodies carry the exact phrases clients string-match on.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var dup *services.DuplicateKeyError

	switch {
	case errors.Is(err, common.ErrFingerprintMismatch):
		http.Error(w, common.FingerprintMismatchMessage, http.StatusPreconditionFailed)
	case errors.As(err, &dup):
		http.Error(w, dup.Error(), http.StatusConflict)
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "project not found", http.StatusNotFound)
	default:
		s.logger.Error(r.Context(), "internal error", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
