package api

import (
	"embed"
	"net/http"
)

//go:embed static/index.html static/login.html
var staticFS embed.FS

// HandleIndex implements GET /. Authenticated clients get the player page,
// everyone else the login page.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page := "static/login.html"
	if s.sessions.Get(r) != nil {
		page = "static/index.html"
	}

	data, err := staticFS.ReadFile(page)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
