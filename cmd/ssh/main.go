package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/draw"
	rlog "github.com/tomz197/raycaster/internal/logging"
	"github.com/tomz197/raycaster/internal/loop"
	"github.com/tomz197/raycaster/internal/scene"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := rlog.New(os.Stderr)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scenePath := config.GetEnv("SCENE_FILE", "")
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scene", scenePath)

	s, err := scene.LoadOrDefault(scenePath)
	if err != nil {
		logger.Fatal("failed to load scene", "err", err)
	}
	hub, err := loop.NewHub(s, logger)
	if err != nil {
		logger.Fatal("invalid scene", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			viewerMiddleware(ctx, hub, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for key presses
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
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

	// Notify viewers and wait for them to disconnect
	logger.Info("notifying connected viewers about shutdown", "viewers", hub.Viewers())
	hub.Shutdown(15 * time.Second)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// viewerMiddleware handles SSH sessions and runs a viewer of the shared scene.
func viewerMiddleware(ctx context.Context, hub *loop.Hub, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLogger := logger.With("session", uuid.NewString(), "user", sess.User())
			sessLogger.Info("new session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			// End the viewer with the session or the server
			sessCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				select {
				case <-sess.Context().Done():
					cancel()
				case <-sessCtx.Done():
				}
			}()

			v := loop.NewViewer(hub, bufio.NewReader(sess), sess, loop.ViewerOptions{
				TermSizeFunc: sizeTracker.getSize,
				Name:         displayName(sess.User()),
				Logger:       sessLogger,
				Fan:          config.GetEnvInt("RAY_FAN", config.DefaultFan),
				MaxLength:    config.GetEnvFloat("MAX_RAY_LENGTH", config.DefaultMaxRay),
			})
			if err := v.Run(sessCtx); err != nil {
				sessLogger.Error("viewer error", "err", err)
			}

			sessLogger.Info("session ended")
			next(sess)
		}
	}
}

// displayName shortens user names to config.MaxUsernameLength runes.
func displayName(user string) string {
	if user == "" {
		return "anonymous"
	}
	r := []rune(user)
	if len(r) > config.MaxUsernameLength {
		return string(r[:config.MaxUsernameLength])
	}
	return user
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
