package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/outliner/internal/sink"
	"github.com/go-chi/chi/v5"
)

type outlineSummary struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Headings int    `json:"headings"`
	StoredAt string `json:"stored_at"`
}

func (s *Server) handleListOutlines(w http.ResponseWriter, r *http.Request) {
	recs, err := s.orchestrator.Store().List(r.Context())
	if err != nil {
		s.log.Error("list outlines failed", "error", err)
		jsonError(w, "failed to list outlines", http.StatusBadGateway)
		return
	}
	out := make([]outlineSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, outlineSummary{
			DocID:    rec.DocID,
			Filename: rec.Filename,
			Title:    rec.Result.Title,
			Headings: len(rec.Result.Outline),
			StoredAt: rec.StoredAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"outlines": out})
}

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := s.orchestrator.Store().Get(r.Context(), chi.URLParam(r, "docID"))
	if errors.Is(err, sink.ErrNotFound) {
		jsonError(w, "outline not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get outline failed", "error", err)
		jsonError(w, "failed to load outline", http.StatusBadGateway)
		return
	}
	writeResult(w, http.StatusOK, rec.Result, format)
}
