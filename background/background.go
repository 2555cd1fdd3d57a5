package background

import (
	"fmt"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Change moves the background buffer toward a target color over a bounded
// number of steps
type Change interface {
	// NextStep advances the change one tick, mutating bg in place
	NextStep(bg *render.Frame)

	Working() bool
	Finished() bool

	// FinalColor is the color the whole buffer holds once finished
	FinalColor() render.RGB

	Kind() Kind
	String() string
}

// Kind is the closed set of background changes, in selector weight order
type Kind uint8

const (
	KindRandomPixel Kind = iota
	KindInstant
	KindConvert
	KindGrid
	KindCurtain
	KindPolygon
	KindNoise
)

func (k Kind) String() string {
	switch k {
	case KindRandomPixel:
		return "RandomPixelChange"
	case KindInstant:
		return "InstantChange"
	case KindConvert:
		return "ConvertChange"
	case KindGrid:
		return "GridChange"
	case KindCurtain:
		return "CurtainChange"
	case KindPolygon:
		return "PolygonChange"
	case KindNoise:
		return "RandomNoiseChange"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Factory builds background changes for one canvas
type Factory struct {
	rng           *vmath.Rand
	width, height int
	fps           int
	weights       []float64
}

// NewFactory creates a factory; nil weights pick kinds uniformly
func NewFactory(rng *vmath.Rand, width, height, fps int, weights []float64) *Factory {
	return &Factory{rng: rng, width: width, height: height, fps: fps, weights: weights}
}

// Create picks a kind and a target color, then builds the change from current
func (f *Factory) Create(current render.RGB) Change {
	kind := Kind(f.rng.Weighted(parameter.BackgroundKinds, f.weights))
	return f.CreateKind(kind, current)
}

// CreateKind builds a change of a fixed kind
func (f *Factory) CreateKind(kind Kind, current render.RGB) Change {
	target := render.RandomRGB(f.rng)
	st := status{working: true, target: target, source: current}

	switch kind {
	case KindInstant:
		return newInstant(st, f.width, f.height)
	case KindRandomPixel:
		return newRandomPixel(st, f.rng, f.width, f.height, f.fps)
	case KindConvert:
		return newConvert(st, f.rng, f.fps)
	case KindGrid:
		return newGrid(st, f.rng, f.width, f.height)
	case KindCurtain:
		return newCurtain(st, f.rng, f.width, f.height, f.fps)
	case KindPolygon:
		return newPolygon(st, f.rng, f.width, f.height, f.fps)
	case KindNoise:
		return newNoise(st, f.rng, f.fps)
	}
	core.Violate("background", "change type %v not supported", kind)
	return nil
}

// status is the lifecycle shared by every change
type status struct {
	working  bool
	finished bool
	target   render.RGB
	source   render.RGB
}

func (s *status) Working() bool          { return s.working }
func (s *status) Finished() bool         { return s.finished }
func (s *status) FinalColor() render.RGB { return s.target }

// finish snaps the buffer to the target and ends the change
func (s *status) finish(bg *render.Frame) {
	bg.Fill(s.target)
	s.working = false
	s.finished = true
}

func describe(kind Kind, s *status, extra string) string {
	return fmt.Sprintf("BackgroundChange of type %v. Target color: %s%s", kind, s.target.Hex(), extra)
}
