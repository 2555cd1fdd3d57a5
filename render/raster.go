package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter ellipse
const kappa = 0.5522847498

// Painter rasterizes anti-aliased shapes onto frames
// The rasterizer is sized to the clipped bounding box of each shape and reused
// across calls; a Painter is not safe for concurrent use
type Painter struct {
	z      vector.Rasterizer
	origin image.Point
	src    image.Uniform
}

// NewPainter creates a painter with an empty rasterizer
func NewPainter() *Painter {
	return &Painter{}
}

// FillRect fills the inclusive pixel rectangle (x0, y0)..(x1, y1)
func (p *Painter) FillRect(dst *Frame, x0, y0, x1, y1 int, c RGB) {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	dst.FillRect(image.Rect(x0, y0, x1+1, y1+1), c)
}

// StrokeRect outlines the inclusive pixel rectangle with lines of the given
// thickness centred on its edges
func (p *Painter) StrokeRect(dst *Frame, x0, y0, x1, y1, thickness int, c RGB) {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	h := float32(max(thickness, 1)-1) / 2

	ox0, oy0 := float32(x0)-h, float32(y0)-h
	ox1, oy1 := float32(x1+1)+h, float32(y1+1)+h
	bbox := image.Rect(int(math.Floor(float64(ox0))), int(math.Floor(float64(oy0))),
		int(math.Ceil(float64(ox1))), int(math.Ceil(float64(oy1))))
	if !p.begin(dst, bbox) {
		return
	}

	p.rect(ox0, oy0, ox1, oy1, false)
	ix0, iy0 := float32(x0+1)+h, float32(y0+1)+h
	ix1, iy1 := float32(x1)-h, float32(y1)-h
	if ix1 > ix0 && iy1 > iy0 {
		p.rect(ix0, iy0, ix1, iy1, true)
	}
	p.flush(dst, c)
}

// FillEllipse fills an axis-aligned ellipse centred on pixel (cx, cy)
func (p *Painter) FillEllipse(dst *Frame, cx, cy int, rx, ry float64, c RGB) {
	if rx <= 0 && ry <= 0 {
		dst.Set(cx, cy, c)
		return
	}
	fx, fy := float64(cx)+0.5, float64(cy)+0.5
	if !p.begin(dst, ellipseBounds(fx, fy, rx, ry)) {
		return
	}
	p.ellipse(fx, fy, rx, ry, false)
	p.flush(dst, c)
}

// StrokeEllipse outlines an ellipse with a ring of the given thickness
// centred on its perimeter
func (p *Painter) StrokeEllipse(dst *Frame, cx, cy int, rx, ry float64, thickness int, c RGB) {
	h := float64(max(thickness, 1)) / 2
	fx, fy := float64(cx)+0.5, float64(cy)+0.5
	orx, ory := rx+h, ry+h
	if !p.begin(dst, ellipseBounds(fx, fy, orx, ory)) {
		return
	}
	p.ellipse(fx, fy, orx, ory, false)
	if irx, iry := rx-h, ry-h; irx > 0 && iry > 0 {
		p.ellipse(fx, fy, irx, iry, true)
	}
	p.flush(dst, c)
}

// FillPolygon fills the closed polygon through pts, vertices at pixel centres
func (p *Painter) FillPolygon(dst *Frame, pts []image.Point, c RGB) {
	if len(pts) < 3 {
		return
	}
	bbox := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, pt := range pts[1:] {
		bbox.Min.X = min(bbox.Min.X, pt.X)
		bbox.Min.Y = min(bbox.Min.Y, pt.Y)
		bbox.Max.X = max(bbox.Max.X, pt.X)
		bbox.Max.Y = max(bbox.Max.Y, pt.Y)
	}
	bbox.Max = bbox.Max.Add(image.Point{1, 1})
	if !p.begin(dst, bbox) {
		return
	}

	p.z.MoveTo(p.local(float64(pts[0].X)+0.5, float64(pts[0].Y)+0.5))
	for _, pt := range pts[1:] {
		p.z.LineTo(p.local(float64(pt.X)+0.5, float64(pt.Y)+0.5))
	}
	p.z.ClosePath()
	p.flush(dst, c)
}

// begin resets the rasterizer to the visible part of bbox
func (p *Painter) begin(dst *Frame, bbox image.Rectangle) bool {
	r := bbox.Intersect(dst.Bounds())
	if r.Empty() {
		return false
	}
	p.origin = r.Min
	p.z.Reset(r.Dx(), r.Dy())
	return true
}

// flush composites the accumulated coverage over dst
func (p *Painter) flush(dst *Frame, c RGB) {
	p.src.C = c.Color()
	r := image.Rectangle{Min: p.origin, Max: p.origin.Add(p.z.Size())}
	p.z.DrawOp = draw.Over
	p.z.Draw(dst.Image(), r, &p.src, image.Point{})
}

func (p *Painter) local(x, y float64) (float32, float32) {
	return float32(x - float64(p.origin.X)), float32(y - float64(p.origin.Y))
}

// rect adds a rectangle subpath; reverse winding cuts a hole
func (p *Painter) rect(x0, y0, x1, y1 float32, reverse bool) {
	lx0, ly0 := p.local(float64(x0), float64(y0))
	lx1, ly1 := p.local(float64(x1), float64(y1))
	p.z.MoveTo(lx0, ly0)
	if reverse {
		p.z.LineTo(lx0, ly1)
		p.z.LineTo(lx1, ly1)
		p.z.LineTo(lx1, ly0)
	} else {
		p.z.LineTo(lx1, ly0)
		p.z.LineTo(lx1, ly1)
		p.z.LineTo(lx0, ly1)
	}
	p.z.ClosePath()
}

// ellipse adds four cubic quarter arcs; reverse winding cuts a hole
func (p *Painter) ellipse(cx, cy, rx, ry float64, reverse bool) {
	kx, ky := rx*kappa, ry*kappa
	sy := 1.0
	if reverse {
		sy = -1
	}

	p.z.MoveTo(p.local(cx+rx, cy))
	arcs := [4][6]float64{
		{cx + rx, cy + sy*ky, cx + kx, cy + sy*ry, cx, cy + sy*ry},
		{cx - kx, cy + sy*ry, cx - rx, cy + sy*ky, cx - rx, cy},
		{cx - rx, cy - sy*ky, cx - kx, cy - sy*ry, cx, cy - sy*ry},
		{cx + kx, cy - sy*ry, cx + rx, cy - sy*ky, cx + rx, cy},
	}
	for _, a := range arcs {
		bx, by := p.local(a[0], a[1])
		ccx, ccy := p.local(a[2], a[3])
		dx, dy := p.local(a[4], a[5])
		p.z.CubeTo(bx, by, ccx, ccy, dx, dy)
	}
	p.z.ClosePath()
}

func ellipseBounds(cx, cy, rx, ry float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(cx-rx)), int(math.Floor(cy-ry)),
		int(math.Ceil(cx+rx)), int(math.Ceil(cy+ry)),
	)
}
