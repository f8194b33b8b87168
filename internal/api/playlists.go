package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// PlaylistRequest is the create-playlist request body. Videos is kept as raw
// JSON so arbitrary video references round-trip byte for byte.
type PlaylistRequest struct {
	Name   string            `json:"name"`
	Videos []json.RawMessage `json:"videos"`
}

// PlaylistCreatedResponse is the create-playlist response
type PlaylistCreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// PlaylistResponse is one playlist in the list response
type PlaylistResponse struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Name      string            `json:"name"`
	Videos    []json.RawMessage `json:"videos"`
	CreatedAt time.Time         `json:"created_at"`
}

// HandleListPlaylists implements GET /api/playlists
func (s *Server) HandleListPlaylists(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSession(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	playlists, err := s.db.ListPlaylists(r.Context(), sess.UserID)
	if err != nil {
		s.logger.Error("failed to list playlists", "err", err)
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	resp := make([]PlaylistResponse, 0, len(playlists))
	for _, p := range playlists {
		videos := []json.RawMessage{}
		if p.Videos.Valid && p.Videos.String != "" {
			if err := json.Unmarshal([]byte(p.Videos.String), &videos); err != nil {
				s.logger.Error("failed to parse stored videos", "playlist", p.ID, "err", err)
				WriteError(w, http.StatusInternalServerError, "Server error")
				return
			}
		}

		resp = append(resp, PlaylistResponse{
			ID:        p.ID,
			UserID:    p.UserID,
			Name:      p.Name,
			Videos:    videos,
			CreatedAt: p.CreatedAt,
		})
	}

	WriteJSON(w, http.StatusOK, resp)
}

// HandleCreatePlaylist implements POST /api/playlists. A re-save of an
// existing name creates a new row; nothing is updated in place.
func (s *Server) HandleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSession(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req PlaylistRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Videos == nil {
		req.Videos = []json.RawMessage{}
	}
	videos, err := json.Marshal(req.Videos)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.db.CreatePlaylist(r.Context(), sess.UserID, req.Name, string(videos))
	if err != nil {
		s.logger.Error("failed to create playlist", "err", err)
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	WriteJSON(w, http.StatusOK, PlaylistCreatedResponse{Success: true, ID: id})
}

// HandleDeletePlaylist implements DELETE /api/playlists/{id}. The delete is
// scoped to the session's user; whether a row matched is not reported.
func (s *Server) HandleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSession(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	// A non-numeric id cannot match a row, which is indistinguishable from
	// deleting someone else's playlist.
	if id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		if err := s.db.DeletePlaylist(r.Context(), id, sess.UserID); err != nil {
			s.logger.Error("failed to delete playlist", "err", err)
			WriteError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
