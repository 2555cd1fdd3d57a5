package background

import (
	"fmt"
	"image"
	"slices"

	"github.com/lixenwraith/taor/artifact"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Convert interpolates every channel linearly from source to target
type Convert struct {
	status
	frames int
	frame  int
	per    [3]float64
	value  [3]float64
}

func newConvert(st status, rng *vmath.Rand, fps int) *Convert {
	c := &Convert{status: st}
	c.frames = rng.Between(fps*parameter.ConvertMinSeconds, fps*parameter.ConvertMaxSeconds+1)

	src, dst := st.source.Channels(), st.target.Channels()
	for i := range c.per {
		c.per[i] = float64(dst[i]-src[i]) / float64(c.frames)
		c.value[i] = float64(src[i])
	}
	return c
}

func (c *Convert) Kind() Kind { return KindConvert }

// Frames is the number of interpolation ticks before the final snap
func (c *Convert) Frames() int { return c.frames }

func (c *Convert) NextStep(bg *render.Frame) {
	if !c.working {
		return
	}
	if c.frame >= c.frames {
		c.finish(bg)
		return
	}
	for i := range c.value {
		c.value[i] += c.per[i]
	}
	bg.Fill(render.RGB{
		R: vmath.ClampChannelF(c.value[0]),
		G: vmath.ClampChannelF(c.value[1]),
		B: vmath.ClampChannelF(c.value[2]),
	})
	c.frame++
}

func (c *Convert) String() string {
	return describe(KindConvert, &c.status, fmt.Sprintf(". From %s in %d frames", c.source.Hex(), c.frames))
}

// Polygon grows a quadrilateral of the target color from random interior
// corners to the buffer corners
type Polygon struct {
	status
	frames  int
	frame   int
	points  [8]float64
	per     [8]float64
	shape   *artifact.Artifact
	painter *render.Painter
}

func newPolygon(st status, rng *vmath.Rand, width, height, fps int) *Polygon {
	p := &Polygon{status: st, painter: render.NewPainter()}
	p.frames = rng.Between(fps*parameter.PolygonMinSeconds, fps*parameter.PolygonMaxSeconds+1)

	halfW := vmath.Round(float64(width) / 2)
	halfH := vmath.Round(float64(height) / 2)
	// One corner per quadrant, clockwise from top-left
	ranges := [8][2]int{
		{0, halfW}, {0, halfH},
		{halfW, width}, {0, halfH},
		{halfW, width}, {halfH, height},
		{0, halfW}, {halfH, height},
	}
	for i, r := range ranges {
		p.points[i] = float64(rng.Between(r[0], r[1]))
	}

	goals := [8]float64{0, 0, float64(width), 0, float64(width), float64(height), 0, float64(height)}
	for i := range p.per {
		p.per[i] = (goals[i] - p.points[i]) / float64(p.frames)
	}

	p.shape = artifact.NewPolygon(p.vertices()).Filled(st.target)
	return p
}

func (p *Polygon) vertices() []image.Point {
	pts := make([]image.Point, 4)
	for i := range pts {
		pts[i] = image.Pt(vmath.Round(p.points[2*i]), vmath.Round(p.points[2*i+1]))
	}
	return pts
}

func (p *Polygon) Kind() Kind { return KindPolygon }

// Frames is the number of growth ticks before the final snap
func (p *Polygon) Frames() int { return p.frames }

func (p *Polygon) NextStep(bg *render.Frame) {
	if !p.working {
		return
	}
	if p.frame >= p.frames {
		p.finish(bg)
		return
	}
	bg.Fill(p.source)
	p.shape.Draw(bg, p.painter)
	for i := range p.points {
		p.points[i] += p.per[i]
	}
	p.shape.SetPoints(p.vertices())
	p.frame++
}

func (p *Polygon) String() string {
	return describe(KindPolygon, &p.status, fmt.Sprintf(". From %s in %d frames", p.source.Hex(), p.frames))
}

// Noise shows uniform random pixels, holding the previous noise on flash
// frames, before snapping to the target
type Noise struct {
	status
	rng    *vmath.Rand
	frames int
	frame  int
	flash  []int
}

func newNoise(st status, rng *vmath.Rand, fps int) *Noise {
	n := &Noise{status: st, rng: rng}
	n.frames = rng.Between(fps*parameter.NoiseMinSeconds, fps*parameter.NoiseMaxSeconds+1)

	count := rng.Between(vmath.Round(float64(fps)/2), fps*parameter.NoiseFlashMaxSeconds)
	n.flash = make([]int, count)
	for i := range n.flash {
		n.flash[i] = rng.Between(0, n.frames)
	}
	return n
}

func (n *Noise) Kind() Kind { return KindNoise }

// Frames is the number of noise ticks before the final snap
func (n *Noise) Frames() int { return n.frames }

// Flash reports whether frame i holds the previous noise
func (n *Noise) Flash(i int) bool {
	return slices.Contains(n.flash, i)
}

func (n *Noise) NextStep(bg *render.Frame) {
	if !n.working {
		return
	}
	if n.frame >= n.frames {
		n.finish(bg)
		return
	}
	if !n.Flash(n.frame) {
		render.FillNoise(bg, n.rng)
	}
	n.frame++
}

func (n *Noise) String() string {
	return describe(KindNoise, &n.status, fmt.Sprintf(". From %s in %d frames, %d flash frames",
		n.source.Hex(), n.frames, len(n.flash)))
}
