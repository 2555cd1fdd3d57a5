package background

import (
	"fmt"
	"image"

	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// sliceChange paints a queue of disjoint regions with the target color,
// perStep regions per tick, and finishes on the tick the queue empties
type sliceChange struct {
	status
	kind    Kind
	count   int
	next    int
	perStep int
	paint   func(bg *render.Frame, i int)
	detail  string
}

func (s *sliceChange) Kind() Kind { return s.kind }

func (s *sliceChange) NextStep(bg *render.Frame) {
	if !s.working {
		return
	}
	for k := 0; k < s.perStep && s.next < s.count; k++ {
		s.paint(bg, s.next)
		s.next++
	}
	if s.next >= s.count {
		s.finish(bg)
	}
}

// Remaining is the number of regions not yet painted
func (s *sliceChange) Remaining() int {
	return s.count - s.next
}

func (s *sliceChange) String() string {
	return describe(s.kind, &s.status, s.detail)
}

// regionChange builds a slice change over rectangles
func regionChange(st status, kind Kind, regions []image.Rectangle, perStep int, detail string) *sliceChange {
	return &sliceChange{
		status:  st,
		kind:    kind,
		count:   len(regions),
		perStep: max(perStep, 1),
		detail:  detail,
		paint: func(bg *render.Frame, i int) {
			bg.FillRect(regions[i], st.target)
		},
	}
}

// newInstant paints the whole buffer in one step
func newInstant(st status, width, height int) *sliceChange {
	return regionChange(st, KindInstant, []image.Rectangle{image.Rect(0, 0, width, height)}, 1, "")
}

// newRandomPixel paints every pixel once in shuffled order
func newRandomPixel(st status, rng *vmath.Rand, width, height, fps int) *sliceChange {
	area := width * height
	perStep := rng.Between(area/(fps*parameter.PixelMaxSeconds), area/(fps*parameter.PixelMinSeconds)+1)

	// Column-major pixel order before the shuffle
	order := make([]int32, area)
	for i := range order {
		order[i] = int32(i)
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	target := st.target
	return &sliceChange{
		status:  st,
		kind:    KindRandomPixel,
		count:   area,
		perStep: max(perStep, 1),
		detail:  fmt.Sprintf(", %d pixels per frame", perStep),
		paint: func(bg *render.Frame, i int) {
			p := int(order[i])
			bg.Set(p/height, p%height, target)
		},
	}
}

// newGrid splits the buffer in a shuffled grid of 1 to 8 cells per axis
// The last row and column stretch to the buffer edge
func newGrid(st status, rng *vmath.Rand, width, height int) *sliceChange {
	divX := rng.Between(1, parameter.GridMaxDiv+1)
	divY := rng.Between(1, parameter.GridMaxDiv+1)
	jumpY := vmath.Round(float64(height) / float64(divY))
	jumpX := vmath.Round(float64(width) / float64(divX))

	regions := make([]image.Rectangle, 0, divX*divY)
	for row := 0; row < divY; row++ {
		for col := 0; col < divX; col++ {
			y0, y1 := row*jumpY, (row+1)*jumpY
			x0, x1 := col*jumpX, (col+1)*jumpX
			if row == divY-1 {
				y1 = height
			}
			if col == divX-1 {
				x1 = width
			}
			// Cells overlap their neighbours by one pixel
			regions = append(regions, image.Rect(x0, y0, x1+1, y1+1))
		}
	}
	rng.Shuffle(len(regions), func(i, j int) {
		regions[i], regions[j] = regions[j], regions[i]
	})

	return regionChange(st, KindGrid, regions, 1, fmt.Sprintf(", grid %dx%d", divX, divY))
}

// Curtain sweep directions
const (
	curtainUpDown = iota
	curtainDownUp
	curtainLeftRight
	curtainRightLeft
)

var curtainNames = [4]string{"ud", "du", "lr", "rl"}

// newCurtain sweeps bands perpendicular to a random direction
func newCurtain(st status, rng *vmath.Rand, width, height, fps int) *sliceChange {
	direction := rng.Intn(len(curtainNames))
	vertical := direction == curtainUpDown || direction == curtainDownUp

	lines := width
	if vertical {
		lines = height
	}
	band := max(rng.Between(lines/(fps*parameter.CurtainMaxSeconds), lines/(fps*parameter.CurtainMinSeconds)+1), 1)

	var regions []image.Rectangle
	for c := 0; c < lines; c += band {
		if vertical {
			regions = append(regions, image.Rect(0, c, width, c+band))
		} else {
			regions = append(regions, image.Rect(c, 0, c+band, height))
		}
	}
	if direction == curtainDownUp || direction == curtainRightLeft {
		for i, j := 0, len(regions)-1; i < j; i, j = i+1, j-1 {
			regions[i], regions[j] = regions[j], regions[i]
		}
	}

	return regionChange(st, KindCurtain, regions, 1,
		fmt.Sprintf(", direction %s, %d lines per frame", curtainNames[direction], band))
}
