package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleListJobs lists the jobs still held in the store.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := pipeline.JobStatus(r.URL.Query().Get("status"))

	jobs := make([]pipeline.JobSnapshot, 0)
	for _, snap := range s.orchestrator.ListJobs() {
		if status != "" && snap.Status != status {
			continue
		}
		jobs = append(jobs, snap)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"jobs": jobs})
}

// handleDeleteJob forgets a job and its outline.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if !s.orchestrator.DeleteJob(jobID) {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": jobID})
}
