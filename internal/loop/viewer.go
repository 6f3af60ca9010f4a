package loop

import (
	"bufio"
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/draw"
	"github.com/tomz197/raycaster/internal/input"
	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/vec"
)

// moveMargin keeps the viewer this far from any surface it walks into.
const moveMargin = 0.5

// Viewer handles rendering and input for a single session.
type Viewer struct {
	hub          SceneHub
	handle       *ViewerHandle
	state        *ViewerState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	name         string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ViewerOptions configures the viewer.
type ViewerOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Name         string
	Logger       *log.Logger
	Fan          int     // Initial fan digit; 0 casts a single ray
	MaxLength    float64 // Initial ray length; 0 uses config.DefaultMaxRay
}

// NewViewer creates a viewer of the hub's scene reading keys from r and
// drawing to w.
func NewViewer(hub SceneHub, r *bufio.Reader, w io.Writer, opts ViewerOptions) *Viewer {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = config.DefaultMaxRay
	}
	fan := min(max(opts.Fan, 0), config.MaxFan)

	snap := hub.Snapshot()
	width, height := sceneSize(snap)
	state := NewViewerState(snap.Scene.Origin.Vec(), fan, maxLength)
	state.sceneVersion = snap.Version

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	cols, rows, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, width, height)
	canvas := draw.NewCanvas(cols, rows, width, height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Viewer{
		hub:          hub,
		handle:       hub.Register(opts.Name),
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		name:         opts.Name,
		termSizeFunc: termSizeFunc,
		logger:       logger.With("viewer", opts.Name),
	}
}

// sceneSize returns the logical size of the snapshot's scene, falling back
// to the default view size when the scene does not set one.
func sceneSize(snap *Snapshot) (float64, float64) {
	w, h := snap.Scene.Width, snap.Scene.Height
	if w <= 0 {
		w = config.ViewWidth
	}
	if h <= 0 {
		h = config.ViewHeight
	}
	return w, h
}

// State returns the viewer's state.
func (v *Viewer) State() *ViewerState {
	return v.state
}

// Run starts the viewer loop. Blocks until the viewer quits, its input
// ends, or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	draw.HideCursor(v.writer)
	defer draw.ShowCursor(v.writer)
	draw.ClearScreen(v.writer)
	defer v.hub.Unregister(v.handle.ID)

	v.logger.Info("viewer started", "id", v.handle.ID)
	lastTime := time.Now()

	for v.state.Running {
		if ctx.Err() != nil {
			break
		}
		frameStart := time.Now()
		v.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		v.processInput()
		v.processHubEvents()
		v.updateScreen()

		switch v.state.Mode {
		case ModeStart:
			v.updateStartState()
		case ModeViewing:
			v.updateViewingState()
		case ModeShutdown:
			v.updateShutdownState()
		}

		if err := v.cast(ctx); err != nil {
			break
		}
		if err := v.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	v.logger.Info("viewer stopped", "id", v.handle.ID)
	draw.ClearScreen(v.writer)
	return nil
}

// processInput reads the keys for this frame and tracks inactivity.
func (v *Viewer) processInput() {
	v.state.Input = input.ReadInput(v.inputStream)

	if len(v.state.Input.Pressed) > 0 {
		v.lastInput = time.Now()
		v.state.isInactive = false
	} else if time.Since(v.lastInput).Seconds() > config.InactivityDisconnectUser {
		v.logger.Info("disconnecting inactive viewer")
		v.state.Running = false
	} else if time.Since(v.lastInput).Seconds() > config.InactivityWarnUser {
		v.state.isInactive = true
	}

	if v.state.Input.Quit || v.state.Input.Closed {
		v.state.Running = false
	}
}

// processHubEvents handles events from the hub.
func (v *Viewer) processHubEvents() {
	for {
		select {
		case event, ok := <-v.handle.EventsCh:
			if !ok {
				v.state.Running = false
				return
			}
			switch event.Type {
			case EventSceneReloaded:
				v.applySnapshot(v.hub.Snapshot())
			case EventServerShutdown:
				v.state.Mode = ModeShutdown
				v.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// applySnapshot adopts a new scene version: the canvas takes the new scene
// size and the origin is clamped into it.
func (v *Viewer) applySnapshot(snap *Snapshot) {
	if snap.Version == v.state.sceneVersion {
		return
	}
	v.state.sceneVersion = snap.Version
	width, height := sceneSize(snap)
	v.canvas.SetLogicalSize(width, height)
	v.state.Origin = clampToScene(v.state.Origin, width, height)
	v.chunkWriter.WriteString("\033[H\033[2J")
	v.canvas.ForceRedraw()
	v.logger.Debug("scene reloaded", "version", snap.Version)
}

// updateScreen handles terminal resize. On size changes the terminal is
// cleared to remove residual pixels outside the new canvas area.
func (v *Viewer) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(v.termSizeFunc)
	if err != nil {
		return
	}
	cols, rows, offsetCol, offsetRow := draw.FitTerminal(termWidth, termHeight, v.canvas.LogicalWidth(), v.canvas.LogicalHeight())

	if cols != v.canvas.TerminalWidth() || rows != v.canvas.TerminalHeight() ||
		offsetCol != v.canvas.OffsetCol() || offsetRow != v.canvas.OffsetRow() {
		draw.ClearScreen(v.writer)
		v.canvas.ForceRedraw()
	}

	v.canvas.Resize(cols, rows)
	v.canvas.SetOffset(offsetCol, offsetRow)
	v.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateStartState handles the title screen.
func (v *Viewer) updateStartState() {
	if v.state.Input.Toggle || v.state.Input.Enter {
		input.ResetKeyInput(v.inputStream)
		v.state.Mode = ModeViewing
	}
}

// updateViewingState turns and moves the viewer and applies ray settings.
func (v *Viewer) updateViewingState() {
	in := v.state.Input
	dt := v.state.delta.Seconds()

	switch {
	case in.Left && !in.Right:
		v.state.Heading += config.TurnSpeed * dt
	case in.Right && !in.Left:
		v.state.Heading -= config.TurnSpeed * dt
	}
	v.state.Heading = math.Mod(v.state.Heading, 360)
	if v.state.Heading < 0 {
		v.state.Heading += 360
	}

	var step float64
	switch {
	case in.Up && !in.Down:
		step = config.MoveSpeed * dt
	case in.Down && !in.Up:
		step = -config.MoveSpeed * dt
	}
	if step != 0 {
		v.move(vec.Angled(v.state.Heading, step))
	}

	switch {
	case in.Longer && !in.Shorter:
		v.state.MaxLength += config.RayLengthSpeed * dt
	case in.Shorter && !in.Longer:
		v.state.MaxLength = max(v.state.MaxLength-config.RayLengthSpeed*dt, config.MinRayLength)
	}

	if in.Toggle {
		v.state.FanOn = !v.state.FanOn
		if v.state.Fan == 0 {
			v.state.Fan = config.DefaultFan
		}
	}
	if in.Number == 0 {
		v.state.FanOn = false
	} else if in.Number > 0 {
		v.state.Fan = min(in.Number, config.MaxFan)
		v.state.FanOn = true
	}
}

// move walks the origin by delta unless that would take it into a collider
// or through a surface facing it. The result stays inside the scene bounds.
func (v *Viewer) move(delta vec.Vec2) {
	snap := v.hub.Snapshot()
	from := v.state.Origin
	width, height := sceneSize(snap)
	to := clampToScene(from.Add(delta), width, height)

	step := to.Sub(from)
	l := step.Abs()
	if l == 0 {
		return
	}
	if physics.RaycastWithin(physics.NewRay(from, step), snap.Colliders, l+moveMargin).DidHit {
		return
	}
	for _, c := range snap.Colliders {
		if c.Contains(to) && !c.Contains(from) {
			return
		}
	}
	v.state.Origin = to
}

func clampToScene(p vec.Vec2, width, height float64) vec.Vec2 {
	return vec.New2(min(max(p.X, 0), width), min(max(p.Y, 0), height))
}

// updateShutdownState handles the shutdown screen countdown.
func (v *Viewer) updateShutdownState() {
	v.state.shutdownTimer -= v.state.delta.Seconds()
	if v.state.shutdownTimer <= 0 {
		v.state.Running = false
	}
}

// cast builds this frame's rays from the viewer origin and casts them
// against the scene.
func (v *Viewer) cast(ctx context.Context) error {
	s := v.state
	s.Rays = physics.AppendFan(s.Rays[:0], s.Origin, s.Heading, config.FanSpread, s.RayCount(config.FanStep))

	colliders := v.hub.Snapshot().Colliders
	if len(s.Rays) == 1 {
		s.Results = append(s.Results[:0], physics.RaycastWithin(s.Rays[0], colliders, s.MaxLength))
	} else {
		results, err := physics.CastAll(ctx, s.Rays, colliders, s.MaxLength)
		if err != nil {
			return err
		}
		s.Results = results
	}

	s.Nearest = -1
	for i, res := range s.Results {
		if res.DidHit && (s.Nearest < 0 || res.Hit.SqrDistance < s.Results[s.Nearest].Hit.SqrDistance) {
			s.Nearest = i
		}
	}
	return nil
}
