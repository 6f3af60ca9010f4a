package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Viewer movement
const (
	TurnSpeed = 120.0 // Degrees per second
	MoveSpeed = 30.0  // Scene units per second
	// Input is sampled once per frame; a held key repeats at the terminal's
	// repeat rate, so each press counts for this long.
	KeyHoldSeconds = 0.12
)

// Rays
const (
	DefaultFan      = 4     // Fan size digit; rays = FanStep * digit
	FanStep         = 8     // Rays per fan digit
	MaxFan          = 9     // Highest fan digit
	FanSpread       = 90.0  // Degrees covered by a fan
	DefaultMaxRay   = 200.0 // Scene units
	HitMarkerRadius = 1     // Pixels
	MinRayLength    = 5.0   // Scene units
	RayLengthSpeed  = 80.0  // Scene units per second while +/- is held
)

// Viewers
const (
	MaxUsernameLength = 16 // Maximum display length for viewer names
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)
