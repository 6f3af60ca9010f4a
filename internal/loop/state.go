package loop

import (
	"time"

	"github.com/tomz197/raycaster/internal/input"
	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/vec"
)

// Mode represents the current screen of a viewer.
type Mode int

const (
	ModeStart    Mode = iota // Title screen with controls
	ModeViewing              // Casting rays around the scene
	ModeShutdown             // Server is shutting down
)

// ViewerState holds per-session state. Each viewer has its own instance.
type ViewerState struct {
	Input     input.Input
	Mode      Mode
	Origin    vec.Vec2 // Where rays start, in scene units
	Heading   float64  // Degrees, counter-clockwise from +x
	Fan       int      // Fan digit; the fan casts Fan*FanStep rays
	FanOn     bool     // Cast the fan instead of a single ray
	MaxLength float64  // Longest ray, in scene units
	Running   bool

	// Rays and results of the last cast; reused between frames.
	Rays    []physics.Ray
	Results []physics.Result
	// Nearest is the index in Results of the closest hit, or -1.
	Nearest int

	delta         time.Duration
	shutdownTimer float64
	sceneVersion  int
	prevMode      Mode
	isInactive    bool
	wasInactive   bool
}

// NewViewerState creates a viewer state at origin.
func NewViewerState(origin vec.Vec2, fan int, maxLength float64) *ViewerState {
	return &ViewerState{
		Mode:      ModeStart,
		prevMode:  ModeStart,
		Origin:    origin,
		Heading:   90,
		Fan:       fan,
		FanOn:     fan > 0,
		MaxLength: maxLength,
		Running:   true,
		Nearest:   -1,
	}
}

// RayCount returns the number of rays cast per frame.
func (s *ViewerState) RayCount(step int) int {
	if !s.FanOn || s.Fan <= 0 {
		return 1
	}
	return s.Fan * step
}
