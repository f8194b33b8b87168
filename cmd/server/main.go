package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/musicbox-io/musicbox/internal/api"
	"github.com/musicbox-io/musicbox/internal/config"
	"github.com/musicbox-io/musicbox/internal/db"
	"github.com/musicbox-io/musicbox/internal/session"
	"github.com/musicbox-io/musicbox/internal/youtube"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to TOML config file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	// A missing .env is fine; env vars may come from the environment proper.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "err", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	secret, generated, err := cfg.SecretBytes()
	if err != nil {
		logger.Fatal("failed to initialize session secret", "err", err)
	}
	if generated {
		logger.Warn("SESSION_SECRET not set, generated a random one; sessions will not survive restarts")
	}

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", "err", err)
	}
	defer database.Close()
	logger.Info("database initialized", "path", cfg.Database.Path)

	if cfg.YouTube.APIKey == "" {
		logger.Warn("YOUTUBE_API_KEY not set, search will return empty results")
	}

	sessions := session.NewStore(secret, session.DefaultTTL)
	yt := youtube.NewClient(cfg.YouTube.APIKey)

	server := api.NewServer(database, sessions, yt, logger)
	router := server.Router()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("starting server", "addr", addr)
	logger.Print("  GET    /")
	logger.Print("  POST   /api/register")
	logger.Print("  POST   /api/login")
	logger.Print("  POST   /api/logout")
	logger.Print("  GET    /api/user (authenticated)")
	logger.Print("  GET    /api/playlists (authenticated)")
	logger.Print("  POST   /api/playlists (authenticated)")
	logger.Print("  DELETE /api/playlists/{id} (authenticated)")
	logger.Print("  GET    /api/search?q= (authenticated)")

	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}
