package effect

import (
	"fmt"
	"image"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
)

// Axis names a mirror half; negative axes copy the lower or right half
type Axis uint8

const (
	AxisNone Axis = iota
	AxisH
	AxisV
	AxisNegH
	AxisNegV
)

var mirrorAxes = [...]string{"none", "h", "v", "-h", "-v"}

// boxAxes are the flips a mirror box may use
var boxAxes = [...]Axis{AxisH, AxisV}

func (a Axis) String() string {
	if int(a) < len(mirrorAxes) {
		return mirrorAxes[a]
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// base drops the sign
func (a Axis) base() Axis {
	switch a {
	case AxisNegH:
		return AxisH
	case AxisNegV:
		return AxisV
	}
	return a
}

// reflect mirrors one half of f onto the other half, in place
func reflect(f *render.Frame, a Axis) {
	w, h := f.Width(), f.Height()
	switch a {
	case AxisNone:
	case AxisH:
		half := h / 2
		f.FlipRegion(image.Rect(0, 0, w, half), image.Pt(0, h-half), true)
	case AxisNegH:
		half := h / 2
		f.FlipRegion(image.Rect(0, h-half, w, h), image.Pt(0, 0), true)
	case AxisV:
		half := w / 2
		f.FlipRegion(image.Rect(0, 0, half, h), image.Pt(w-half, 0), false)
	case AxisNegV:
		half := w / 2
		f.FlipRegion(image.Rect(w-half, 0, w, h), image.Pt(0, 0), false)
	default:
		core.Violate("mirror", "axis %v not supported", a)
	}
}

type mirror struct {
	axis1, axis2 Axis
}

func (m *mirror) process(img *render.Frame, _ int) *render.Frame {
	reflect(img, m.axis1)
	reflect(img, m.axis2)
	return img
}

func (m *mirror) describe(e *Effect) string {
	return fmt.Sprintf("%s, axes %v/%v", plain(e), m.axis1, m.axis2)
}

// mirrorBox flips a fixed box in place
type mirrorBox struct {
	axis           Axis
	x0, y0, x1, y1 int
}

func (m *mirrorBox) process(img *render.Frame, _ int) *render.Frame {
	box := image.Rect(m.x0, m.y0, m.x1, m.y1)
	switch m.axis {
	case AxisH:
		img.FlipRegion(box, box.Min, true)
	case AxisV:
		img.FlipRegion(box, box.Min, false)
	default:
		core.Violate("mirror box", "axis %v not supported", m.axis)
	}
	return img
}

func (m *mirrorBox) describe(e *Effect) string {
	return fmt.Sprintf("%s, axis %v, box (%d,%d)-(%d,%d)", plain(e), m.axis, m.x0, m.y0, m.x1, m.y1)
}

type grayScale struct{}

func (grayScale) process(img *render.Frame, _ int) *render.Frame {
	return render.Grayscale(img)
}

func (grayScale) describe(e *Effect) string { return plain(e) }

type blackAndWhite struct{}

func (blackAndWhite) process(img *render.Frame, _ int) *render.Frame {
	mask := render.AdaptiveThreshold(img, parameter.ThresholdBlock, parameter.ThresholdC)
	return render.Binary(mask, render.RGBWhite, render.RGBBlack)
}

func (blackAndWhite) describe(e *Effect) string { return plain(e) }

// colorThreshold paints the dark side of the threshold with a color
type colorThreshold struct {
	color render.RGB
}

func (c colorThreshold) process(img *render.Frame, _ int) *render.Frame {
	mask := render.AdaptiveThreshold(img, parameter.ThresholdBlock, parameter.ThresholdC)
	return render.Binary(mask, render.RGBWhite, c.color)
}

func (c colorThreshold) describe(e *Effect) string {
	return fmt.Sprintf("%s, color %s", plain(e), c.color.Hex())
}

type gaussianBlur struct {
	size int
}

func (g gaussianBlur) process(img *render.Frame, _ int) *render.Frame {
	return render.GaussianBlur(img, g.size)
}

func (g gaussianBlur) describe(e *Effect) string {
	return fmt.Sprintf("GaussianBlur for %d seconds and size %d", e.seconds(), g.size)
}

// brightness ramps an offset up by one per frame to diff, holds it, and
// ramps it back down over the last |diff| frames
type brightness struct {
	diff    int
	add     int
	current int
	frames  int
}

func newBrightness(diff int) *brightness {
	add := 1
	if diff <= 0 {
		add = -1
	}
	return &brightness{diff: diff, add: add}
}

func (b *brightness) magnitude() int {
	if b.diff < 0 {
		return -b.diff
	}
	return b.diff
}

func (b *brightness) process(img *render.Frame, frame int) *render.Frame {
	out := render.Brighten(img, b.current)
	switch {
	case frame <= b.magnitude():
		b.current += b.add
	case b.frames-frame <= b.magnitude():
		b.current -= b.add
	}
	return out
}

func (b *brightness) describe(e *Effect) string {
	return fmt.Sprintf("Brightness for %d seconds and diff %d", e.seconds(), b.diff)
}

type contour struct {
	color     render.RGB
	thickness int
}

func (c contour) process(img *render.Frame, _ int) *render.Frame {
	render.DrawContours(img, c.color, render.ContourOptions{
		Block:       parameter.ContourBlock,
		C:           parameter.ThresholdC,
		CloseRadius: parameter.ContourCloseRadius,
		Thickness:   c.thickness,
	})
	return img
}

func (c contour) describe(e *Effect) string {
	return fmt.Sprintf("Contour for %d seconds with thickness %d", e.seconds(), c.thickness)
}
