package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/mission-control/internal/dashboard"
)

type claimsResponse struct {
	Stats  dashboard.ClaimStats `json:"stats"`
	Claims []dashboard.Claim    `json:"claims"`
}

type explainerResponse struct {
	dashboard.Explainer
	HTML string `json:"html"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) apiActivities(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	writeJSON(w, http.StatusOK, dashboard.FilterActivities(ds.Activities, r.URL.Query().Get("q")))
}

func (s *Server) apiSchedule(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Snapshot().Schedule)
}

// apiClaims returns stats over every claim and the claims matching ?status=.
func (s *Server) apiClaims(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	writeJSON(w, http.StatusOK, claimsResponse{
		Stats:  dashboard.ComputeClaimStats(ds.Claims),
		Claims: dashboard.FilterClaims(ds.Claims, claimFilter(r)),
	})
}

func (s *Server) apiExplainers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Snapshot().Explainers)
}

func (s *Server) apiExplainer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, html, err := s.renderExplainer(r, s.data.Snapshot(), id)
	if err != nil {
		if errors.Is(err, dashboard.ErrExplainerNotFound) {
			writeError(w, http.StatusNotFound, "explainer not found: "+id)
			return
		}
		s.logger.Error("rendering explainer", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "rendering failed")
		return
	}
	writeJSON(w, http.StatusOK, explainerResponse{Explainer: e, HTML: html})
}
