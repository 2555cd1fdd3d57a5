package generator

import (
	"fmt"

	"github.com/lixenwraith/taor/artifact"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// StainGrid hops a fixed distance in a random compass direction every step
type StainGrid struct {
	base
	quantity  int
	spaceJump int
}

func newStainGrid(rng *vmath.Rand, fps, x, y int, color render.RGB, thickness int) *StainGrid {
	s := &StainGrid{base: newBase(rng, fps, x, y, color, thickness)}
	s.quantity = rng.Between(parameter.StainGridMinQuantity, parameter.StainGridMaxQuantity)
	s.params.Shape = shapes[rng.Weighted(len(shapes), parameter.StainGridShapeWeights)]
	s.size = rng.Between(parameter.StainGridMinSize, parameter.StainGridMaxSize)

	// Either a random spacing or exactly the stain size
	random := rng.Between(parameter.StainGridMinSpace, s.size*2)
	if rng.Weighted(2, []float64{parameter.PStainGridRandSpace, 1 - parameter.PStainGridRandSpace}) == 0 {
		s.spaceJump = random
	} else {
		s.spaceJump = s.size
	}
	s.params.ChangeSize = false
	return s
}

func (s *StainGrid) Kind() Kind { return KindStainGrid }

func (s *StainGrid) Generate() []*artifact.Artifact {
	a := s.newStep()
	dx, dy := vmath.Direction(s.rng.Between(0, 8))
	s.x += float64(dx * s.spaceJump)
	s.y += float64(dy * s.spaceJump)
	return []*artifact.Artifact{a}
}

func (s *StainGrid) String() string {
	return s.describe(KindStainGrid, fmt.Sprintf(", quantity=%d, space_jump=%d", s.quantity, s.spaceJump))
}
