package artifact

import (
	"fmt"
	"image"
	"strings"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Kind is the closed set of shapes an artifact can take
type Kind uint8

const (
	KindRectangle Kind = iota
	KindEllipse
	KindCircle
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindEllipse:
		return "Ellipse"
	case KindCircle:
		return "Circle"
	case KindPolygon:
		return "Polygon"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Artifact is one drawable shape with its own aging lifecycle
// Geometry fields are read according to Kind; the rest are zero
type Artifact struct {
	Kind Kind
	X, Y int

	Width, Height int // rectangle, extends right and down from the origin
	AxisX, AxisY  int // ellipse semi-axes
	Radius        int // circle
	Points        []image.Point

	// Nil paint is not drawn
	Fill      *render.RGB
	Outline   *render.RGB
	Thickness int

	Age      int
	Lifespan int
	Painted  bool
	Dead     bool
}

// NewRectangle creates a width x height rectangle anchored at its top-left corner
func NewRectangle(x, y, width, height int) *Artifact {
	return &Artifact{Kind: KindRectangle, X: x, Y: y, Width: width, Height: height, Thickness: 1}
}

// NewEllipse creates an ellipse whose full extents are sizeX and sizeY
func NewEllipse(x, y, sizeX, sizeY int) *Artifact {
	return &Artifact{Kind: KindEllipse, X: x, Y: y, AxisX: sizeX / 2, AxisY: sizeY / 2, Thickness: 1}
}

// NewCircle creates a circle of diameter size, radius rounded half to even
func NewCircle(x, y, size int) *Artifact {
	return &Artifact{Kind: KindCircle, X: x, Y: y, Radius: vmath.Round(float64(size) / 2), Thickness: 1}
}

// NewPolygon creates a polygon whose first point is its origin
func NewPolygon(points []image.Point) *Artifact {
	if len(points) < 3 {
		core.Violate("artifact", "polygon needs at least 3 points, got %d", len(points))
	}
	pts := make([]image.Point, len(points))
	copy(pts, points)
	return &Artifact{Kind: KindPolygon, X: pts[0].X, Y: pts[0].Y, Points: pts, Thickness: 1}
}

// Filled sets the fill color and returns the artifact
func (a *Artifact) Filled(c render.RGB) *Artifact {
	a.Fill = &c
	return a
}

// Outlined sets the outline color and thickness and returns the artifact
func (a *Artifact) Outlined(c render.RGB, thickness int) *Artifact {
	a.Outline = &c
	a.Thickness = max(thickness, 1)
	return a
}

// Draw paints the artifact onto dst, fill first
func (a *Artifact) Draw(dst *render.Frame, p *render.Painter) {
	switch a.Kind {
	case KindRectangle:
		x1, y1 := a.X+a.Width, a.Y+a.Height
		if a.Fill != nil {
			p.FillRect(dst, a.X, a.Y, x1, y1, *a.Fill)
		}
		if a.Outline != nil {
			p.StrokeRect(dst, a.X, a.Y, x1, y1, a.Thickness, *a.Outline)
		}
	case KindEllipse:
		a.drawEllipse(dst, p, float64(a.AxisX), float64(a.AxisY))
	case KindCircle:
		a.drawEllipse(dst, p, float64(a.Radius), float64(a.Radius))
	case KindPolygon:
		if a.Fill != nil {
			p.FillPolygon(dst, a.Points, *a.Fill)
		}
	default:
		core.Violate("artifact", "unsupported shape %v", a.Kind)
	}
}

func (a *Artifact) drawEllipse(dst *render.Frame, p *render.Painter, rx, ry float64) {
	if a.Fill != nil {
		p.FillEllipse(dst, a.X, a.Y, rx, ry, *a.Fill)
	}
	if a.Outline != nil {
		p.StrokeEllipse(dst, a.X, a.Y, rx, ry, a.Thickness, *a.Outline)
	}
}

// WillPaint reports whether the artifact's extent touches a width x height canvas
// Bounds are inclusive of the canvas size itself
func (a *Artifact) WillPaint(width, height int) bool {
	var x0, y0, x1, y1 int
	switch a.Kind {
	case KindRectangle:
		x0, y0, x1, y1 = a.X, a.Y, a.X+a.Width, a.Y+a.Height
	case KindEllipse:
		x0, y0, x1, y1 = a.X-a.AxisX, a.Y-a.AxisY, a.X+a.AxisX, a.Y+a.AxisY
	case KindCircle:
		x0, y0, x1, y1 = a.X-a.Radius, a.Y-a.Radius, a.X+a.Radius, a.Y+a.Radius
	case KindPolygon:
		b := a.bounds()
		x0, y0, x1, y1 = b.Min.X, b.Min.Y, b.Max.X, b.Max.Y
	default:
		core.Violate("artifact", "unsupported shape %v", a.Kind)
	}
	return !(x0 > width || x1 < 0 || y0 > height || y1 < 0)
}

func (a *Artifact) bounds() image.Rectangle {
	b := image.Rectangle{Min: a.Points[0], Max: a.Points[0]}
	for _, pt := range a.Points[1:] {
		b.Min.X = min(b.Min.X, pt.X)
		b.Min.Y = min(b.Min.Y, pt.Y)
		b.Max.X = max(b.Max.X, pt.X)
		b.Max.Y = max(b.Max.Y, pt.Y)
	}
	return b
}

// Move translates the artifact
func (a *Artifact) Move(dx, dy int) {
	a.X += dx
	a.Y += dy
	d := image.Pt(dx, dy)
	for i := range a.Points {
		a.Points[i] = a.Points[i].Add(d)
	}
}

// SetPoints replaces polygon vertices; the count must not change
func (a *Artifact) SetPoints(points []image.Point) {
	if len(points) != len(a.Points) {
		core.Violate("polygon", "coordinate count mismatch: %d vs %d", len(a.Points), len(points))
	}
	copy(a.Points, points)
	a.X, a.Y = a.Points[0].X, a.Points[0].Y
}

// Tick ages the artifact by one frame and reports whether it just died
func (a *Artifact) Tick() bool {
	if a.Dead {
		return false
	}
	a.Age++
	if a.Age >= a.Lifespan {
		a.Dead = true
		return true
	}
	return false
}

func (a *Artifact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v. O:(%d,%d)", a.Kind, a.X, a.Y)
	switch a.Kind {
	case KindRectangle:
		fmt.Fprintf(&b, ", W:%d, H:%d", a.Width, a.Height)
	case KindEllipse:
		fmt.Fprintf(&b, ", Axes:(%d,%d)", a.AxisX, a.AxisY)
	case KindCircle:
		fmt.Fprintf(&b, ", R:%d", a.Radius)
	case KindPolygon:
		fmt.Fprintf(&b, ", Points:%v", a.Points)
	}
	if a.Fill != nil {
		fmt.Fprintf(&b, ", C:%s", a.Fill.Hex())
	}
	if a.Outline != nil {
		fmt.Fprintf(&b, ", O:%s, T:%d", a.Outline.Hex(), a.Thickness)
	}
	return b.String()
}
