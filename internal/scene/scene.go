// Package scene describes a set of named colliders in YAML and turns it into
// physics shapes.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/vec"
)

// Collider kinds.
const (
	KindSegment = "segment"
	KindRay     = "ray"
	KindCircle  = "circle"
	KindRect    = "rect"
)

var (
	ErrUnknownKind  = errors.New("unknown collider kind")
	ErrInvalidShape = errors.New("invalid shape")
	ErrEmptyScene   = errors.New("scene has no colliders")
)

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Shape is one collider entry. Which fields are read depends on Kind.
type Shape struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Kind string `json:"kind" yaml:"kind"`

	// segment
	A Point `json:"a,omitempty" yaml:"a,omitempty"`
	B Point `json:"b,omitempty" yaml:"b,omitempty"`

	// ray
	Origin    Point `json:"origin,omitempty" yaml:"origin,omitempty"`
	Direction Point `json:"direction,omitempty" yaml:"direction,omitempty"`

	// circle and rect
	Center   Point   `json:"center,omitempty" yaml:"center,omitempty"`
	Radius   float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Size     Point   `json:"size,omitempty" yaml:"size,omitempty"`
	Rotation float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`

	DoubleSided bool `json:"doubleSided,omitempty" yaml:"doubleSided,omitempty"`
	InsideOut   bool `json:"insideOut,omitempty" yaml:"insideOut,omitempty"`
}

// Scene is a named, bounded arrangement of colliders.
type Scene struct {
	Name      string  `json:"name" yaml:"name"`
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	Origin    Point   `json:"origin" yaml:"origin"`
	Colliders []Shape `json:"colliders" yaml:"colliders"`
}

// Body is a built collider together with its scene name.
type Body struct {
	Name     string
	Collider physics.Collider
}

// Load reads and validates the scene file at path.
func Load(path string) (*Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// LoadOrDefault loads the scene at path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Scene, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes and validates a YAML scene. Unknown fields are rejected.
func Parse(b []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScene
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if _, err := s.Build(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes s as YAML.
func Marshal(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return buf.Bytes(), nil
}

// Fingerprint hashes the YAML encoding of s. Scenes that encode the same get
// the same fingerprint.
func Fingerprint(s *Scene) (uint64, error) {
	b, err := Marshal(s)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}

// Build validates every entry and returns the colliders in scene order.
// Entries without a name are named after their kind and position.
func (s *Scene) Build() ([]Body, error) {
	if len(s.Colliders) == 0 {
		return nil, ErrEmptyScene
	}
	bodies := make([]Body, 0, len(s.Colliders))
	for i, sh := range s.Colliders {
		c, err := sh.Collider()
		if err != nil {
			return nil, fmt.Errorf("collider %d: %w", i, err)
		}
		name := sh.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", sh.Kind, i)
		}
		bodies = append(bodies, Body{Name: name, Collider: c})
	}
	return bodies, nil
}

// Collider builds the physics shape described by sh.
func (sh Shape) Collider() (physics.Collider, error) {
	if !finite(sh.A.X, sh.A.Y, sh.B.X, sh.B.Y, sh.Origin.X, sh.Origin.Y, sh.Direction.X, sh.Direction.Y,
		sh.Center.X, sh.Center.Y, sh.Radius, sh.Size.X, sh.Size.Y, sh.Rotation) {
		return nil, fmt.Errorf("%w: %s %q has a non-finite value", ErrInvalidShape, sh.Kind, sh.Name)
	}
	switch sh.Kind {
	case KindSegment:
		if sh.A == sh.B {
			return nil, fmt.Errorf("%w: segment %q has zero length", ErrInvalidShape, sh.Name)
		}
		return physics.Segment{A: sh.A.Vec(), B: sh.B.Vec(), DoubleSided: sh.DoubleSided}, nil
	case KindRay:
		if sh.Direction == (Point{}) {
			return nil, fmt.Errorf("%w: ray %q has no direction", ErrInvalidShape, sh.Name)
		}
		return physics.Ray{
			Origin:      sh.Origin.Vec(),
			Direction:   sh.Direction.Vec(),
			DoubleSided: sh.DoubleSided,
			InsideOut:   sh.InsideOut,
		}, nil
	case KindCircle:
		if sh.Radius < 0 {
			return nil, fmt.Errorf("%w: circle %q has negative radius %g", ErrInvalidShape, sh.Name, sh.Radius)
		}
		return physics.Circle{
			Center:    sh.Center.Vec(),
			Radius:    sh.Radius,
			Rotation:  sh.Rotation,
			InsideOut: sh.InsideOut,
		}, nil
	case KindRect:
		if sh.Size.X <= 0 || sh.Size.Y <= 0 {
			return nil, fmt.Errorf("%w: rect %q has size %gx%g", ErrInvalidShape, sh.Name, sh.Size.X, sh.Size.Y)
		}
		return physics.Rect{
			Center:      sh.Center.Vec(),
			Size:        sh.Size.Vec(),
			Rotation:    sh.Rotation,
			InsideOut:   sh.InsideOut,
			DoubleSided: sh.DoubleSided,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, sh.Kind)
}

// Colliders returns the colliders of bodies in the same order.
func Colliders(bodies []Body) []physics.Collider {
	cs := make([]physics.Collider, len(bodies))
	for i, b := range bodies {
		cs[i] = b.Collider
	}
	return cs
}

// Default returns the built-in scene: a walled room with a few obstacles.
func Default() *Scene {
	return &Scene{
		Name:   "room",
		Width:  120,
		Height: 80,
		Origin: Point{X: 60, Y: 40},
		Colliders: []Shape{
			{Name: "south wall", Kind: KindSegment, A: Point{0, 0}, B: Point{120, 0}},
			{Name: "east wall", Kind: KindSegment, A: Point{120, 0}, B: Point{120, 80}},
			{Name: "north wall", Kind: KindSegment, A: Point{120, 80}, B: Point{0, 80}},
			{Name: "west wall", Kind: KindSegment, A: Point{0, 80}, B: Point{0, 0}},
			{Name: "pillar", Kind: KindCircle, Center: Point{30, 30}, Radius: 6},
			{Name: "crate", Kind: KindRect, Center: Point{90, 50}, Size: Point{10, 6}, Rotation: 30},
			{Name: "post", Kind: KindRect, Center: Point{40, 62}, Size: Point{4, 4}, Rotation: 45, DoubleSided: true},
			{Name: "screen", Kind: KindSegment, A: Point{75, 15}, B: Point{95, 25}, DoubleSided: true},
			{Name: "beam", Kind: KindRay, Origin: Point{0, 70}, Direction: Point{1, 0.1}},
		},
	}
}
