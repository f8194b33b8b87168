package api

import (
	"net/http"

	"github.com/musicbox-io/musicbox/internal/youtube"
)

// SearchResponse is the search proxy response
type SearchResponse struct {
	Items []youtube.SearchItem `json:"items"`
}

// HandleSearch implements GET /api/search. Upstream failures are swallowed:
// the client cannot tell "no results" from "upstream down", and the API key
// never leaves the server.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteJSON(w, http.StatusOK, SearchResponse{Items: []youtube.SearchItem{}})
		return
	}

	items, err := s.youtube.Search(r.Context(), query)
	if err != nil {
		s.logger.Warn("youtube search failed", "err", err)
		items = nil
	}
	if items == nil {
		items = []youtube.SearchItem{}
	}

	WriteJSON(w, http.StatusOK, SearchResponse{Items: items})
}
