package generator

import (
	"fmt"
	"math"

	"github.com/lixenwraith/taor/artifact"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// line is the shared state of generators that travel a path with a variable step
type line struct {
	base
	maxSpaceJump int
	spaceJump    int
	changeSpace  bool
}

func newLine(rng *vmath.Rand, fps, x, y int, color render.RGB, thickness int) line {
	l := line{base: newBase(rng, fps, x, y, color, thickness)}
	l.params.Shape = shapes[rng.Weighted(len(shapes), parameter.LineShapeWeights)]
	l.maxSpaceJump = rng.Between(1, l.size+1)
	l.spaceJump = rng.Between(1, l.maxSpaceJump+1)
	l.changeSpace = rng.Chance(parameter.PChangeSpaceJumpEachStep)
	return l
}

func (l *line) resampleSpace() {
	if l.changeSpace {
		l.spaceJump = l.rng.Between(1, l.maxSpaceJump+1)
	}
}

// Worm walks the 8 compass headings, turning by up to 3 steps at a time
type Worm struct {
	line
	turn    []float64
	heading int
}

func newWorm(rng *vmath.Rand, fps, x, y int, color render.RGB, thickness int) *Worm {
	w := &Worm{line: newLine(rng, fps, x, y, color, thickness)}
	craziness := int(math.Sqrt(float64(rng.Between(1, parameter.WormCrazinessSqHigh))))
	w.turn = turnWeights(craziness, parameter.WormTurnSplit)
	w.heading = rng.Between(0, 8)
	return w
}

func (w *Worm) Kind() Kind { return KindWorm }

func (w *Worm) Generate() []*artifact.Artifact {
	a := w.newStep()

	delta := w.rng.Weighted(len(w.turn), w.turn) * w.rng.Sign()
	w.heading = vmath.Mod(w.heading+delta, 8)
	dx, dy := vmath.Direction(w.heading)

	w.resampleSpace()

	w.x += float64(dx * w.spaceJump)
	w.y += float64(dy * w.spaceJump)
	return []*artifact.Artifact{a}
}

func (w *Worm) String() string {
	return w.describe(KindWorm, fmt.Sprintf(", turn=%v, heading=%d, space_jump=%d/%d",
		w.turn, w.heading, w.spaceJump, w.maxSpaceJump))
}

// Lasso steers a continuous heading whose curvature drifts and periodically resets
type Lasso struct {
	line
	turn      []float64
	grade     int
	direction float64
	reset     int
}

func newLasso(rng *vmath.Rand, fps, x, y int, color render.RGB, thickness int) *Lasso {
	l := &Lasso{line: newLine(rng, fps, x, y, color, thickness)}
	craziness := int(math.Sqrt(float64(rng.Between(parameter.LassoCrazinessSqLow, parameter.LassoCrazinessSqHigh))))
	l.turn = turnWeights(craziness, parameter.LassoTurnSplit)
	l.grade = rng.Between(-parameter.LassoMaxGrade, parameter.LassoMaxGrade+1)
	l.direction = float64(rng.Between(0, 360))
	l.reset = rng.Between(parameter.LassoMinReset, parameter.LassoMaxReset)
	return l
}

func (l *Lasso) Kind() Kind { return KindLasso }

func (l *Lasso) Generate() []*artifact.Artifact {
	a := l.newStep()

	dx, dy := vmath.CosSinDeg(l.direction)

	l.resampleSpace()

	l.grade += l.rng.Weighted(len(l.turn), l.turn) * l.rng.Sign()
	if l.step%l.reset == 0 {
		l.grade = 0
	}
	l.direction += float64(l.grade) / parameter.LassoGradeDivisor

	l.x += dx * float64(l.spaceJump)
	l.y += dy * float64(l.spaceJump)
	return []*artifact.Artifact{a}
}

func (l *Lasso) String() string {
	return l.describe(KindLasso, fmt.Sprintf(", turn=%v, grade=%d, direction=%.2f, reset_every=%d, space_jump=%d/%d",
		l.turn, l.grade, l.direction, l.reset, l.spaceJump, l.maxSpaceJump))
}
