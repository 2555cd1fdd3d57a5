package generator

import (
	"fmt"
	"math"

	"github.com/lixenwraith/taor/artifact"
	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Generator is a stochastic state machine that emits artifacts along a trajectory
type Generator interface {
	// Generate emits the artifacts of this step and advances the trajectory
	Generate() []*artifact.Artifact

	// MoveOrigin relocates the trajectory
	MoveOrigin(x, y int)

	Kind() Kind
	String() string
}

// Kind is the closed set of generators, in selector weight order
type Kind uint8

const (
	KindLasso Kind = iota
	KindExplosion
	KindStainGrid
	KindWorm
)

func (k Kind) String() string {
	switch k {
	case KindLasso:
		return "Lasso"
	case KindExplosion:
		return "Explosion"
	case KindStainGrid:
		return "StainGrid"
	case KindWorm:
		return "Worm"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Shapes a generator can emit, in shape weight order
var shapes = [3]artifact.Kind{artifact.KindRectangle, artifact.KindCircle, artifact.KindEllipse}

// Factory builds generators for one canvas
type Factory struct {
	rng     *vmath.Rand
	size    int
	fps     int
	weights []float64
}

// NewFactory creates a factory placing origins on a square of side size
// (the larger canvas side); nil weights pick kinds uniformly
func NewFactory(rng *vmath.Rand, size, fps int, weights []float64) *Factory {
	return &Factory{rng: rng, size: size, fps: fps, weights: weights}
}

// Create picks a kind, a color, a thickness and an origin, then builds the generator
func (f *Factory) Create() Generator {
	kind := Kind(f.rng.Weighted(parameter.GeneratorKinds, f.weights))
	return f.CreateKind(kind)
}

// CreateKind builds a generator of a fixed kind with the factory's random draws
func (f *Factory) CreateKind(kind Kind) Generator {
	color := render.RandomRGB(f.rng)
	thickness := f.rng.Between(1, parameter.MaxThickness+1)
	x := f.coordinate()
	y := f.coordinate()

	switch kind {
	case KindLasso:
		return newLasso(f.rng, f.fps, x, y, color, thickness)
	case KindExplosion:
		return newExplosion(f.rng, f.fps, x, y, color)
	case KindStainGrid:
		return newStainGrid(f.rng, f.fps, x, y, color, thickness)
	case KindWorm:
		return newWorm(f.rng, f.fps, x, y, color, thickness)
	}
	core.Violate("generator", "generator kind %v not supported", kind)
	return nil
}

// coordinate samples in [-size/6, size+size/6)
func (f *Factory) coordinate() int {
	delta := f.size / parameter.CoordinateMarginDiv
	return f.rng.Between(-delta, f.size+delta)
}

// Params are the behavioural parameters sampled once per generator
type Params struct {
	ChangeColor   bool
	Unison        bool
	JumpEveryStep bool // drawn for the stream order, never read
	MinColorJump  int
	MaxColorJump  int

	MinSize    int
	MaxSize    int
	ChangeSize bool

	UseShakiness bool
	Shakiness    int

	Lifespan int
	Shape    artifact.Kind
}

// base holds the state shared by every generator kind
type base struct {
	rng    *vmath.Rand
	params Params

	// Origin is continuous; artifacts truncate it toward zero
	x, y float64

	fill      *render.RGB
	outline   *render.RGB
	thickness int

	colorJump int
	size      int
	size2     int
	step      int
}

// newBase draws the shared parameters in their fixed order
func newBase(rng *vmath.Rand, fps, x, y int, color render.RGB, thickness int) base {
	b := base{rng: rng, x: float64(x), y: float64(y), thickness: thickness}

	if rng.Chance(parameter.PColorAsOutline) {
		b.outline = &color
	} else {
		b.fill = &color
	}

	p := &b.params
	p.ChangeColor = rng.Chance(parameter.PChangeColor)
	p.Unison = rng.Chance(parameter.PChangeColorUnison)
	p.JumpEveryStep = rng.Chance(parameter.PChangeColorJumpEachStep)
	p.MinColorJump = rng.Between(parameter.MinColorJumpLow, parameter.MinColorJumpHigh)
	p.MaxColorJump = rng.Between(p.MinColorJump+1, parameter.MaxColorJumpHigh)
	b.colorJump = rng.Between(p.MinColorJump, p.MaxColorJump)

	p.MinSize = rng.Between(parameter.MinSizeLow, parameter.MinSizeHigh)
	p.MaxSize = rng.Between(p.MinSize+1, parameter.MaxSizeHigh)
	b.size = rng.Between(p.MinSize, p.MaxSize)
	b.size2 = rng.Between(p.MinSize, p.MaxSize)
	p.ChangeSize = rng.Chance(parameter.PChangeSizeEveryStep)

	p.UseShakiness = rng.Chance(parameter.PUseShakiness)
	p.Shakiness = rng.Between(1, b.size/2)

	p.Lifespan = rng.Between(fps*parameter.MinLifespanSeconds, fps*parameter.MaxLifespanSeconds)
	return b
}

// MoveOrigin relocates the trajectory
func (b *base) MoveOrigin(x, y int) {
	b.x, b.y = float64(x), float64(y)
}

// Origin returns the continuous origin
func (b *base) Origin() (float64, float64) {
	return b.x, b.y
}

// newStep builds the artifact for the current origin and drifts color and size
func (b *base) newStep() *artifact.Artifact {
	px, py := b.x, b.y
	if b.params.UseShakiness {
		px += float64(b.rng.Between(-b.params.Shakiness, b.params.Shakiness+1))
		py += float64(b.rng.Between(-b.params.Shakiness, b.params.Shakiness+1))
	}
	x, y := int(px), int(py)

	b.fill = b.adjustColor(b.fill)
	b.outline = b.adjustColor(b.outline)

	if b.params.ChangeSize {
		b.size = b.rng.Between(b.params.MinSize, b.params.MaxSize)
		b.size2 = b.rng.Between(b.params.MinSize, b.params.MaxSize)
	}

	var a *artifact.Artifact
	switch b.params.Shape {
	case artifact.KindCircle:
		a = artifact.NewCircle(x, y, b.size)
	case artifact.KindRectangle:
		a = artifact.NewRectangle(x, y, b.size, b.size)
	case artifact.KindEllipse:
		a = artifact.NewEllipse(x, y, b.size, b.size2)
	default:
		core.Violate("generator", "unsupported shape %v", b.params.Shape)
	}

	if b.fill != nil {
		a.Filled(*b.fill)
	} else if b.outline != nil {
		a.Outlined(*b.outline, b.thickness)
	}
	a.Lifespan = b.params.Lifespan
	b.step++
	return a
}

// channelOrder is the order channels drift in per-channel mode
var channelOrder = [3]int{0, 2, 1}

// adjustColor drifts a color by at most colorJump per channel
func (b *base) adjustColor(c *render.RGB) *render.RGB {
	if c == nil || !b.params.ChangeColor {
		return c
	}
	ch := c.Channels()
	jump := b.colorJump

	if b.params.Unison {
		delta := b.rng.Between(-jump, jump+1)
		for i := range ch {
			ch[i] += delta
		}
	} else {
		for _, i := range channelOrder {
			if b.rng.Chance(parameter.PChangeColorEveryStep) {
				ch[i] += b.rng.Between(-jump, jump+1)
			}
		}
	}

	next := render.FromChannels(ch)
	return &next
}

// describe formats the shared part of String
func (b *base) describe(kind Kind, extra string) string {
	return fmt.Sprintf("Generator %v with origin = (%.0f, %.0f) and config %+v, size=%d, size_2=%d, color_jump=%d%s",
		kind, b.x, b.y, b.params, b.size, b.size2, b.colorJump, extra)
}

// turnWeights splits the craziness percentage over 1, 2 and 3 steps
// Each share is rounded to three decimals; no-change takes the rest
func turnWeights(craziness int, split [3]float64) []float64 {
	remaining := float64(craziness) / 100
	w := make([]float64, 4)
	w[0] = 1
	for i, s := range split {
		w[i+1] = math.Round(remaining*s*1000) / 1000
		w[0] -= w[i+1]
	}
	return w
}
