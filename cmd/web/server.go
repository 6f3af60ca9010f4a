package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/loop"
	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/vec"
)

// outlineSamples is the number of points sent for each curved collider.
const outlineSamples = 96

var errBadRequest = errors.New("origin and angle must be finite")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// castRequest asks for a fan of rays from (X, Y) centred on Angle degrees.
type castRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	Fan   int     `json:"fan"`
	Max   float64 `json:"max"`
}

type castHit struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name,omitempty"`
	Distance float64 `json:"distance"`
	Param    float64 `json:"param"`
	Hit      bool    `json:"hit"`
}

// castReply answers a castRequest, or announces a new scene version.
type castReply struct {
	Hits   []castHit `json:"hits,omitempty"`
	Reload int       `json:"reload,omitempty"`
	Error  string    `json:"error,omitempty"`
}

type shapeJSON struct {
	Name   string       `json:"name"`
	Kind   string       `json:"kind"`
	Closed bool         `json:"closed"`
	Points [][2]float64 `json:"points"`
}

type sceneJSON struct {
	Name        string      `json:"name"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Origin      [2]float64  `json:"origin"`
	Fingerprint string      `json:"fingerprint"`
	Version     int         `json:"version"`
	Shapes      []shapeJSON `json:"shapes"`
}

type server struct {
	hub    *loop.Hub
	logger *log.Logger
	page   string
}

// newServer returns the HTTP handler for the page, the scene and the
// websocket endpoint.
func newServer(hub *loop.Hub, logger *log.Logger, page string) http.Handler {
	s := &server{hub: hub, logger: logger, page: page}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /scene", s.handleScene)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	snap := s.hub.Snapshot()
	fmt.Fprint(w, strings.ReplaceAll(s.page, "{{.SceneName}}", snap.Scene.Name))
}

func (s *server) handleScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(describeScene(s.hub.Snapshot())); err != nil {
		s.logger.Error("encode scene", "err", err)
	}
}

// describeScene converts snap into outlines a browser can draw.
func describeScene(snap *loop.Snapshot) sceneJSON {
	sc := snap.Scene
	reach := math.Hypot(sc.Width, sc.Height)
	out := sceneJSON{
		Name:        sc.Name,
		Width:       sc.Width,
		Height:      sc.Height,
		Origin:      [2]float64{sc.Origin.X, sc.Origin.Y},
		Fingerprint: fmt.Sprintf("%016x", snap.Fingerprint),
		Version:     snap.Version,
		Shapes:      make([]shapeJSON, 0, len(snap.Bodies)),
	}

	var pts []vec.Vec2
	for i, b := range snap.Bodies {
		var closed bool
		pts, closed = draw.Outline(pts[:0], b.Collider, outlineSamples, reach)
		shape := shapeJSON{
			Name:   b.Name,
			Kind:   sc.Colliders[i].Kind,
			Closed: closed,
			Points: make([][2]float64, len(pts)),
		}
		for j, p := range pts {
			shape.Points[j] = [2]float64{p.X, p.Y}
		}
		out.Shapes = append(out.Shapes, shape)
	}
	return out
}

// handleWebSocket answers cast requests until the client goes away. The
// connection also receives a reload notice whenever the scene changes.
func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade", "err", err)
		return
	}
	defer conn.Close()

	handle := s.hub.Register(r.RemoteAddr)
	defer s.hub.Unregister(handle.ID)
	logger := s.logger.With("session", handle.ID, "remote", r.RemoteAddr)
	logger.Info("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	requests := make(chan castRequest, 8)
	go func() {
		defer close(requests)
		for {
			var req castRequest
			if err := conn.ReadJSON(&req); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("websocket read", "err", err)
				}
				return
			}
			select {
			case requests <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var reply castReply
		select {
		case req, ok := <-requests:
			if !ok {
				logger.Info("websocket closed")
				return
			}
			hits, err := cast(ctx, s.hub.Snapshot(), req)
			if err != nil {
				reply.Error = err.Error()
			}
			reply.Hits = hits
		case ev, ok := <-handle.EventsCh:
			if !ok || ev.Type == loop.EventServerShutdown {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			reply.Reload = ev.Version
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Debug("websocket write", "err", err)
			return
		}
	}
}

// cast runs req against the snapshot. Requests are clamped to the limits
// of the terminal viewer. Non-finite origins and angles are rejected.
func cast(ctx context.Context, snap *loop.Snapshot, req castRequest) ([]castHit, error) {
	for _, f := range []float64{req.X, req.Y, req.Angle} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errBadRequest
		}
	}
	maxLength := req.Max
	if maxLength <= 0 || math.IsNaN(maxLength) || math.IsInf(maxLength, 0) {
		maxLength = config.DefaultMaxRay
	}
	n := min(max(req.Fan, 1), config.MaxFan*config.FanStep)

	rays := physics.AppendFan(make([]physics.Ray, 0, n), vec.New2(req.X, req.Y), req.Angle, config.FanSpread, n)
	results, err := physics.CastAll(ctx, rays, snap.Colliders, maxLength)
	if err != nil {
		return nil, err
	}

	hits := make([]castHit, len(results))
	for i, res := range results {
		p := res.Point()
		hits[i] = castHit{
			X:        p.X,
			Y:        p.Y,
			Distance: res.Length(),
			Hit:      res.DidHit,
		}
		if res.DidHit {
			hits[i].Name = snap.Name(res.Index)
			hits[i].Param = res.Hit.ShapeParam
		}
	}
	return hits, nil
}
