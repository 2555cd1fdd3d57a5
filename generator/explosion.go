package generator

import (
	"fmt"

	"github.com/lixenwraith/taor/artifact"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Explosion spirals outward from a center, restarting from the current point
// every reset steps
type Explosion struct {
	base
	quantity int

	minAngleJump int
	maxAngleJump int
	changeAngle  bool
	angleSign    int
	angleJump    int
	direction    int

	distanceJump    int
	initialDistance int
	distance        int
	reset           int

	cx, cy float64
}

func newExplosion(rng *vmath.Rand, fps, x, y int, color render.RGB) *Explosion {
	e := &Explosion{base: newBase(rng, fps, x, y, color, 1)}
	e.quantity = rng.Between(parameter.ExplosionMinQuantity, parameter.ExplosionMaxQuantity)
	e.params.Shape = shapes[rng.Weighted(len(shapes), parameter.ExplosionShapeWeights)]

	e.minAngleJump = rng.Between(parameter.ExplosionMinAngleJumpLow, parameter.ExplosionMinAngleJumpHigh)
	e.maxAngleJump = rng.Between(e.minAngleJump+1, parameter.ExplosionMaxAngleJumpHigh)
	e.changeAngle = rng.Chance(parameter.PExplosionChangeAngleJump)
	e.angleSign = rng.Sign()

	e.distanceJump = rng.Between(1, parameter.ExplosionMaxDistanceJump)

	e.angleJump = rng.Between(e.minAngleJump, e.maxAngleJump+1)
	e.direction = rng.Between(0, 360)

	// An initial distance is drawn, but every spiral starts at its center
	rng.Between(1, parameter.ExplosionMaxInitialDist)
	rng.Intn(2)
	e.initialDistance = 0
	e.distance = 0

	e.reset = rng.Between(parameter.ExplosionMinReset, parameter.ExplosionMaxReset)
	e.cx, e.cy = e.x, e.y
	return e
}

func (e *Explosion) Kind() Kind { return KindExplosion }

// MoveOrigin relocates the center and restarts the spiral
func (e *Explosion) MoveOrigin(x, y int) {
	e.base.MoveOrigin(x, y)
	e.restart()
}

func (e *Explosion) restart() {
	e.distance = e.initialDistance
	e.cx, e.cy = e.x, e.y
}

func (e *Explosion) Generate() []*artifact.Artifact {
	a := e.newStep()

	if e.changeAngle {
		e.angleJump = e.rng.Between(e.minAngleJump, e.maxAngleJump+1)
	}
	e.direction += e.angleJump * e.angleSign
	dx, dy := vmath.CosSinDeg(float64(e.direction))

	e.distance += e.distanceJump
	e.x = e.cx + dx*float64(e.distance)
	e.y = e.cy + dy*float64(e.distance)

	if e.step%e.reset == 0 {
		e.restart()
	}
	return []*artifact.Artifact{a}
}

func (e *Explosion) String() string {
	return e.describe(KindExplosion, fmt.Sprintf(
		", quantity=%d, angle_jump=%d in [%d, %d] (resample=%v, sign=%d), distance_jump=%d, reset_every=%d",
		e.quantity, e.angleJump, e.minAngleJump, e.maxAngleJump, e.changeAngle, e.angleSign,
		e.distanceJump, e.reset))
}
