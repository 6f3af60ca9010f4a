package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/logging"
	"github.com/tomz197/raycaster/internal/loop"
	"github.com/tomz197/raycaster/internal/scene"
)

func main() {
	logger := logging.New(os.Stderr)

	scenePath := config.GetEnv("SCENE_FILE", "")
	s, err := scene.LoadOrDefault(scenePath)
	if err != nil {
		logger.Fatal("failed to load scene", "path", scenePath, "err", err)
	}
	// stderr shares the terminal with the viewer, so the hub only reports errors.
	hubLogger := logging.NewWithLevel(os.Stderr, "error")
	hub, err := loop.NewHub(s, hubLogger)
	if err != nil {
		logger.Fatal("invalid scene", "path", scenePath, "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// Reload the scene file on SIGHUP; the viewer picks it up next frame.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := hub.ReloadFile(scenePath); err != nil {
				hubLogger.Error("scene reload failed", "path", scenePath, "err", err)
			}
		}
	}()

	v := loop.NewViewer(hub, bufio.NewReader(os.Stdin), os.Stdout, loop.ViewerOptions{
		Name:      "local",
		Fan:       config.GetEnvInt("RAY_FAN", config.DefaultFan),
		MaxLength: config.GetEnvFloat("MAX_RAY_LENGTH", config.DefaultMaxRay),
	})
	if err := v.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("viewer error", "err", err)
	}
}
