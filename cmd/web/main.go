package main

import (
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/logging"
	"github.com/tomz197/raycaster/internal/loop"
	"github.com/tomz197/raycaster/internal/scene"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := logging.New(os.Stderr)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	scenePath := config.GetEnv("SCENE_FILE", "")

	s, err := scene.LoadOrDefault(scenePath)
	if err != nil {
		logger.Fatal("failed to load scene", "err", err)
	}
	hub, err := loop.NewHub(s, logger)
	if err != nil {
		logger.Fatal("invalid scene", "err", err)
	}

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(hub, logger, htmlPage),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          logger.StandardLog(),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	logger.Info("starting web server", "url", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	for running := true; running; {
		select {
		case <-hup:
			if err := hub.ReloadFile(scenePath); err != nil {
				logger.Error("scene reload failed", "path", scenePath, "err", err)
			}
		case <-done:
			running = false
		}
	}
	logger.Info("shutting down server")

	// Websocket clients get a close frame and leave on their own.
	hub.Shutdown(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
