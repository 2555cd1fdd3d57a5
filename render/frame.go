package render

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"
)

// Frame is an opaque RGB pixel buffer anchored at (0, 0)
// Alpha is always 0xff, so the premultiplied RGBA storage equals plain RGB
type Frame struct {
	img *image.RGBA
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	f := &Frame{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	f.Fill(RGBBlack)
	return f
}

// FrameFrom adopts an image, converting and re-anchoring it when needed
func FrameFrom(img image.Image) *Frame {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = clone.AsRGBA(img)
		if rgba.Rect.Min != (image.Point{}) {
			rgba = &image.RGBA{
				Pix:    rgba.Pix,
				Stride: rgba.Stride,
				Rect:   image.Rect(0, 0, rgba.Rect.Dx(), rgba.Rect.Dy()),
			}
		}
	}
	f := &Frame{img: rgba}
	f.opaque()
	return f
}

// Image exposes the backing buffer
func (f *Frame) Image() *image.RGBA {
	return f.img
}

func (f *Frame) Width() int {
	return f.img.Rect.Dx()
}

func (f *Frame) Height() int {
	return f.img.Rect.Dy()
}

func (f *Frame) Bounds() image.Rectangle {
	return f.img.Rect
}

// At returns the pixel color; out of bounds reads black
func (f *Frame) At(x, y int) RGB {
	if !(image.Point{x, y}.In(f.img.Rect)) {
		return RGBBlack
	}
	i := f.img.PixOffset(x, y)
	p := f.img.Pix[i : i+3 : i+3]
	return RGB{R: p[0], G: p[1], B: p[2]}
}

// Set writes a pixel; out of bounds writes are ignored
func (f *Frame) Set(x, y int, c RGB) {
	if !(image.Point{x, y}.In(f.img.Rect)) {
		return
	}
	i := f.img.PixOffset(x, y)
	p := f.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 0xff
}

// Fill paints the whole frame
func (f *Frame) Fill(c RGB) {
	f.FillRect(f.img.Rect, c)
}

// FillRect paints the half-open rectangle clipped to the frame
func (f *Frame) FillRect(r image.Rectangle, c RGB) {
	r = r.Intersect(f.img.Rect)
	if r.Empty() {
		return
	}

	// First row pixel by pixel, remaining rows copied from it
	first := f.img.PixOffset(r.Min.X, r.Min.Y)
	rowLen := r.Dx() * 4
	row := f.img.Pix[first : first+rowLen]
	for i := 0; i < rowLen; i += 4 {
		row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, 0xff
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		off := f.img.PixOffset(r.Min.X, y)
		copy(f.img.Pix[off:off+rowLen], row)
	}
}

// Clone returns an independent copy
func (f *Frame) Clone() *Frame {
	img := &image.RGBA{
		Pix:    make([]uint8, len(f.img.Pix)),
		Stride: f.img.Stride,
		Rect:   f.img.Rect,
	}
	copy(img.Pix, f.img.Pix)
	return &Frame{img: img}
}

// CopyFrom overwrites the frame with src, which must share its size
func (f *Frame) CopyFrom(src *Frame) {
	if src.img.Rect == f.img.Rect && src.img.Stride == f.img.Stride {
		copy(f.img.Pix, src.img.Pix)
		return
	}
	draw.Draw(f.img, f.img.Rect, src.img, image.Point{}, draw.Src)
}

// Paste draws img with its origin at pt, replacing pixels
func (f *Frame) Paste(img image.Image, pt image.Point) {
	b := img.Bounds()
	dst := image.Rectangle{Min: pt, Max: pt.Add(b.Size())}
	draw.Draw(f.img, dst, img, b.Min, draw.Src)
}

// Equal compares pixel content
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || f.img.Rect != other.img.Rect {
		return false
	}
	if f.img.Stride == other.img.Stride {
		return bytes.Equal(f.img.Pix, other.img.Pix)
	}
	for y := 0; y < f.Height(); y++ {
		a := f.img.Pix[f.img.PixOffset(0, y):][:f.Width()*4]
		b := other.img.Pix[other.img.PixOffset(0, y):][:f.Width()*4]
		if !bytes.Equal(a, b) {
			return false
		}
	}
	return true
}

// opaque forces alpha to 0xff after filters that convolve the alpha channel
func (f *Frame) opaque() {
	w := f.Width() * 4
	for y := 0; y < f.Height(); y++ {
		row := f.img.Pix[f.img.PixOffset(0, y):][:w]
		for i := 3; i < w; i += 4 {
			row[i] = 0xff
		}
	}
}
