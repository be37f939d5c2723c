// Package main is the entry point for the blog auth server.
//
// main stays minimal: read configuration from the environment, build the
// logger, hand both to internal/server, and exit non-zero on failure. All
// actual logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/blog-backend/internal/server"
)

// defaultPort matches what the web client has always been pointed at.
const defaultPort = 3000

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := defaultPort
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH overrides the default for production deployments,
	// e.g. DB_PATH=/var/lib/blog/prod.db
	dbPath := "data/blog.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// SECRET_ACCESS_KEY signs every session token. There is no safe
	// default — refuse to start without it. Generate one with:
	//   SECRET_ACCESS_KEY=$(openssl rand -hex 32)
	secret := os.Getenv("SECRET_ACCESS_KEY")
	if secret == "" {
		logger.Error("SECRET_ACCESS_KEY not set — refusing to start")
		os.Exit(1)
	}

	cfg := server.Config{
		Port:              port,
		DBPath:            dbPath,
		JWTSecret:         secret,
		GoogleUserInfoURL: os.Getenv("GOOGLE_USERINFO_URL"),
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
