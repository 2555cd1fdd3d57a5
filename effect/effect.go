package effect

import (
	"fmt"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Kind is the closed set of post effects, in selector weight order
type Kind uint8

const (
	KindMirror Kind = iota
	KindMirrorBox
	KindGrayScale
	KindBlackAndWhite
	KindColorThreshold
	KindGaussianBlur
	KindBrightness
	KindContour
	KindBoomerang
)

var kindNames = [...]string{
	"Mirror", "MirrorBox", "GrayScale", "BlackAndWhite", "ColorThreshold",
	"GaussianBlur", "Brightness", "Contour", "Boomerang",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// processor is the per-variant transform; frame is the step index before increment
type processor interface {
	process(img *render.Frame, frame int) *render.Frame
	describe(e *Effect) string
}

// Effect transforms composited frames for a fixed number of ticks
type Effect struct {
	kind     Kind
	fps      int
	frames   int
	frame    int
	working  bool
	finished bool
	proc     processor
}

func newEffect(kind Kind, rng *vmath.Rand, fps int, proc processor) *Effect {
	return &Effect{
		kind:    kind,
		fps:     fps,
		frames:  rng.Between(fps*parameter.EffectMinSeconds, fps*parameter.EffectMaxSeconds+1),
		working: true,
		proc:    proc,
	}
}

// NextStep returns the transformed frame; the input is never modified
// The call after the last processed frame finishes the effect and returns the input
func (e *Effect) NextStep(f *render.Frame) *render.Frame {
	if e.frame < e.frames {
		out := e.proc.process(f.Clone(), e.frame)
		e.frame++
		return out
	}
	e.working = false
	e.finished = true
	return f
}

func (e *Effect) Working() bool  { return e.working }
func (e *Effect) Finished() bool { return e.finished }

// Frames is the processed duration in ticks
func (e *Effect) Frames() int { return e.frames }

func (e *Effect) Kind() Kind { return e.kind }

func (e *Effect) seconds() int {
	return vmath.Round(float64(e.frames) / float64(e.fps))
}

func (e *Effect) String() string {
	return e.proc.describe(e)
}

// plain is the default description
func plain(e *Effect) string {
	return fmt.Sprintf("PostEffect of type %v for %d seconds", e.kind, e.seconds())
}

// Factory builds post effects for one canvas
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

// Create picks a kind and builds it
func (f *Factory) Create() *Effect {
	return f.CreateKind(Kind(f.rng.Weighted(parameter.EffectKinds, f.weights)))
}

// CreateKind draws the variant parameters, then the duration
func (f *Factory) CreateKind(kind Kind) *Effect {
	rng := f.rng
	switch kind {
	case KindMirror:
		a1 := Axis(rng.Weighted(len(mirrorAxes), parameter.MirrorAxis1Weights))
		a2 := Axis(rng.Weighted(len(mirrorAxes), parameter.MirrorAxis2Weights))
		if a1 != AxisNone && a2 != AxisNone && a1.base() == a2.base() {
			a2 = AxisNone
		}
		return newEffect(kind, rng, f.fps, &mirror{axis1: a1, axis2: a2})

	case KindMirrorBox:
		axis := boxAxes[rng.Weighted(len(boxAxes), parameter.MirrorBoxWeights)]
		x0 := rng.Between(0, f.width)
		y0 := rng.Between(0, f.height)
		x1 := rng.Between(x0, f.width+1)
		y1 := rng.Between(y0, f.height+1)
		return newEffect(kind, rng, f.fps, &mirrorBox{axis: axis, x0: x0, y0: y0, x1: x1, y1: y1})

	case KindGrayScale:
		return newEffect(kind, rng, f.fps, grayScale{})

	case KindBlackAndWhite:
		return newEffect(kind, rng, f.fps, blackAndWhite{})

	case KindColorThreshold:
		c := render.RandomRGB(rng)
		return newEffect(kind, rng, f.fps, colorThreshold{color: c})

	case KindGaussianBlur:
		size := parameter.GaussSizes[rng.Weighted(len(parameter.GaussSizes), parameter.GaussWeights)]
		return newEffect(kind, rng, f.fps, gaussianBlur{size: size})

	case KindBrightness:
		diff := rng.Between(parameter.MinBrightness, parameter.MaxBrightness) * rng.Sign()
		b := newBrightness(diff)
		e := newEffect(kind, rng, f.fps, b)
		b.frames = e.frames
		return e

	case KindContour:
		c := render.RandomRGB(rng)
		thickness := parameter.ContourThickness[rng.Weighted(len(parameter.ContourThickness), parameter.ContourThicknessWeights)]
		return newEffect(kind, rng, f.fps, contour{color: c, thickness: thickness})

	case KindBoomerang:
		b := &boomerang{}
		e := newEffect(kind, rng, f.fps, b)
		b.init(rng.Between(f.fps, f.fps*2))
		return e
	}
	core.Violate("effect", "post effect type %v not supported", kind)
	return nil
}
