package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	opts := s.orchestrator.Options()
	writeJSON(w, http.StatusOK, map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"documents":   s.orchestrator.Stats(),
		"outline": map[string]any{
			"max_levels":   opts.MaxLevels,
			"title_policy": opts.TitlePolicy,
			"size_weight":  opts.SizeWeight,
		},
	})
}
