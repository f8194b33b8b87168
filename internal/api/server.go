package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/musicbox-io/musicbox/internal/db"
	"github.com/musicbox-io/musicbox/internal/session"
	"github.com/musicbox-io/musicbox/internal/youtube"
)

type Server struct {
	db       *db.DB
	sessions *session.Store
	youtube  *youtube.Client
	logger   *log.Logger
}

// NewServer wires the API server. youtube may be a key-less client, in which
// case search returns empty result sets.
func NewServer(database *db.DB, sessions *session.Store, yt *youtube.Client, logger *log.Logger) *Server {
	return &Server{
		db:       database,
		sessions: sessions,
		youtube:  yt,
		logger:   logger,
	}
}

// Router sets up the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost", "http://localhost:3000", "http://127.0.0.1", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HandleIndex)

	// Public endpoints
	r.Post("/api/register", s.HandleRegister)
	r.Post("/api/login", s.HandleLogin)
	r.Post("/api/logout", s.HandleLogout)

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)

		r.Get("/api/user", s.HandleCurrentUser)
		r.Get("/api/playlists", s.HandleListPlaylists)
		r.Post("/api/playlists", s.HandleCreatePlaylist)
		r.Delete("/api/playlists/{id}", s.HandleDeletePlaylist)
		r.Get("/api/search", s.HandleSearch)
	})

	return r
}
