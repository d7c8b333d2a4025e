package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/viewstate"
)

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type searchResponse struct {
	Query   string            `json:"query"`
	Label   string            `json:"label"`
	Results []athlete.Profile `json:"results"`
}

type comparisonResponse struct {
	ProfileID   string                 `json:"profileId"`
	Mode        viewstate.ViewMode     `json:"mode"`
	Comparisons []viewstate.Comparison `json:"comparisons"`
	Prospect    *viewstate.Comparison  `json:"prospect,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// handleLookup accepts any ref, including an empty one; the source decides
// what it resolves to.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	profile, err := s.src.LookupProfile(r.Context(), ref)
	switch {
	case errors.Is(err, athlete.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "No profile matches that reference")
		return
	case err != nil:
		s.sourceFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleSearch matches q exactly as the search screen does: untrimmed and
// case-insensitive. An empty q yields an empty label and no results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalog(w, r)
	if !ok {
		return
	}
	res := viewstate.Search(cat.Searchable(), r.URL.Query().Get("q"))
	if res.Shown() {
		s.metrics.recordSearch(len(res.Matches))
	}
	results := res.Matches
	if results == nil {
		results = []athlete.Profile{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   res.Query,
		Label:   res.Label(),
		Results: results,
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	mode := viewstate.ViewInternal
	if raw := r.URL.Query().Get("mode"); raw != "" {
		parsed, err := viewstate.ParseViewMode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		mode = parsed
	}

	cat, ok := s.catalog(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if id != cat.Primary.ID {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "No profile with that id")
		return
	}

	resp := comparisonResponse{
		ProfileID:   id,
		Mode:        mode,
		Comparisons: make([]viewstate.Comparison, 0, len(cat.Merged)),
	}
	for i, cand := range cat.Merged {
		resp.Comparisons = append(resp.Comparisons, viewstate.Compare(cat.Primary, cand, mode, viewstate.RowKey(i)))
	}
	if cat.Prospect.ID != "" {
		prospect := viewstate.CompareProspect(cat.Primary, cat.Prospect, mode)
		resp.Prospect = &prospect
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) (*athlete.Catalog, bool) {
	cat, err := s.src.FetchCatalog(r.Context())
	if err != nil {
		s.sourceFailed(w, r, err)
		return nil, false
	}
	return cat, true
}

func (s *Server) sourceFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("source failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE", "Catalog source is unavailable")
}
