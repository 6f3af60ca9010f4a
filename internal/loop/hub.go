// Package loop runs interactive raycast viewers against a shared scene.
package loop

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/scene"
)

// SceneHub is the interface viewers use to reach the shared scene.
type SceneHub interface {
	Register(name string) *ViewerHandle
	Unregister(id uuid.UUID)
	Snapshot() *Snapshot
	Viewers() int
}

// Snapshot is an immutable view of the loaded scene. Viewers raycast against
// Colliders concurrently; nothing in a snapshot is modified after Store.
type Snapshot struct {
	Scene       *scene.Scene
	Bodies      []scene.Body
	Colliders   []physics.Collider
	Fingerprint uint64
	Version     int
}

// Name returns the name of the i-th body, or "" when i is out of range.
func (s *Snapshot) Name(i int) string {
	if i < 0 || i >= len(s.Bodies) {
		return ""
	}
	return s.Bodies[i].Name
}

// ViewerHandle represents a viewer's registration with the hub.
type ViewerHandle struct {
	ID       uuid.UUID
	Name     string
	Joined   time.Time
	EventsCh chan ViewerEvent // Events sent to the viewer
}

// ViewerEvent represents an event sent from the hub to a viewer.
type ViewerEvent struct {
	Type    ViewerEventType
	Version int // Snapshot version for reload events
}

// ViewerEventType identifies the type of viewer event.
type ViewerEventType int

const (
	EventSceneReloaded ViewerEventType = iota
	EventServerShutdown
)

// Hub holds the current scene and the registered viewers.
type Hub struct {
	snapshot atomic.Pointer[Snapshot]
	reloadMu sync.Mutex // serialises version bumps
	viewers  map[uuid.UUID]*ViewerHandle
	mu       sync.RWMutex
	logger   *log.Logger
}

// Compile-time check that Hub implements SceneHub.
var _ SceneHub = (*Hub)(nil)

// NewHub creates a hub serving s. A nil logger discards log output.
func NewHub(s *scene.Scene, logger *log.Logger) (*Hub, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Hub{
		viewers: make(map[uuid.UUID]*ViewerHandle),
		logger:  logger,
	}
	if err := h.Reload(s); err != nil {
		return nil, err
	}
	return h, nil
}

// Reload validates s and makes it the current scene. Registered viewers are
// notified; a viewer with a full event queue misses the notification but
// still sees the new snapshot on its next frame.
func (h *Hub) Reload(s *scene.Scene) error {
	bodies, err := s.Build()
	if err != nil {
		return fmt.Errorf("reload scene: %w", err)
	}
	fp, err := scene.Fingerprint(s)
	if err != nil {
		return fmt.Errorf("reload scene: %w", err)
	}

	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	version := 1
	if old := h.snapshot.Load(); old != nil {
		if old.Fingerprint == fp {
			h.logger.Debug("scene unchanged", "name", s.Name, "fingerprint", fmt.Sprintf("%016x", fp))
			return nil
		}
		version = old.Version + 1
	}

	h.snapshot.Store(&Snapshot{
		Scene:       s,
		Bodies:      bodies,
		Colliders:   scene.Colliders(bodies),
		Fingerprint: fp,
		Version:     version,
	})
	h.logger.Info("scene loaded",
		"name", s.Name,
		"colliders", len(bodies),
		"fingerprint", fmt.Sprintf("%016x", fp),
		"version", version,
	)

	if version > 1 {
		h.broadcast(ViewerEvent{Type: EventSceneReloaded, Version: version})
	}
	return nil
}

// ReloadFile loads the scene at path, or the default scene when path is
// empty, and reloads it.
func (h *Hub) ReloadFile(path string) error {
	s, err := scene.LoadOrDefault(path)
	if err != nil {
		return err
	}
	return h.Reload(s)
}

// Snapshot returns the current scene snapshot.
func (h *Hub) Snapshot() *Snapshot {
	return h.snapshot.Load()
}

// Register adds a viewer with the given display name and returns its handle.
func (h *Hub) Register(name string) *ViewerHandle {
	handle := &ViewerHandle{
		ID:       uuid.New(),
		Name:     name,
		Joined:   time.Now(),
		EventsCh: make(chan ViewerEvent, 16),
	}

	h.mu.Lock()
	h.viewers[handle.ID] = handle
	n := len(h.viewers)
	h.mu.Unlock()

	h.logger.Debug("viewer registered", "id", handle.ID, "name", name, "viewers", n)
	return handle
}

// Unregister removes a viewer and closes its event channel. Unknown ids are ignored.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	handle, ok := h.viewers[id]
	if ok {
		close(handle.EventsCh)
		delete(h.viewers, id)
	}
	n := len(h.viewers)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("viewer unregistered", "id", id, "name", handle.Name, "viewers", n)
	}
}

// Viewers returns the number of registered viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Names returns the display names of the registered viewers, oldest first.
func (h *Hub) Names() []string {
	h.mu.RLock()
	handles := make([]*ViewerHandle, 0, len(h.viewers))
	for _, handle := range h.viewers {
		handles = append(handles, handle)
	}
	h.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool { return handles[i].Joined.Before(handles[j].Joined) })
	names := make([]string, len(handles))
	for i, handle := range handles {
		names[i] = handle.Name
	}
	return names
}

// Shutdown notifies all viewers that the server is going away and waits
// for them to unregister, up to the given timeout.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.broadcast(ViewerEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Viewers() == 0 {
			return
		}
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "viewers", h.Viewers())
			return
		case <-ticker.C:
		}
	}
}

func (h *Hub) broadcast(ev ViewerEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, handle := range h.viewers {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}
