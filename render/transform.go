package render

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"

	"github.com/lixenwraith/taor/vmath"
)

// Rec. 601 luma weights
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// FlipRegion mirrors the pixels inside src and pastes them with their top-left
// corner at pt. Vertical reverses rows, otherwise columns are reversed
func (f *Frame) FlipRegion(src image.Rectangle, pt image.Point, vertical bool) {
	src = src.Intersect(f.Bounds())
	if src.Empty() {
		return
	}
	crop := transform.Crop(f.img, src)
	var flipped *image.RGBA
	if vertical {
		flipped = transform.FlipV(crop)
	} else {
		flipped = transform.FlipH(crop)
	}
	f.Paste(flipped, pt)
}

// Grayscale returns the luma of every pixel replicated on three channels
func Grayscale(f *Frame) *Frame {
	return FrameFrom(effect.GrayscaleWithWeights(f.img, lumaR, lumaG, lumaB))
}

// AdaptiveThreshold marks a pixel white when its luma exceeds the mean of its
// block x block neighbourhood minus c
func AdaptiveThreshold(f *Frame, block, c int) *image.Gray {
	gray := Grayscale(f)
	mean := blur.Box(gray.img, float64(block/2))
	return threshold(gray.img, mean, c)
}

// GaussianThreshold is AdaptiveThreshold with a gaussian weighted neighbourhood
func GaussianThreshold(f *Frame, block, c int) *image.Gray {
	gray := Grayscale(f)
	mean := blur.Gaussian(gray.img, float64(block/2))
	return threshold(gray.img, mean, c)
}

func threshold(gray, mean *image.RGBA, c int) *image.Gray {
	b := gray.Rect
	out := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := int(gray.Pix[gray.PixOffset(x, y)])
			t := int(mean.Pix[mean.PixOffset(x, y)]) - c
			if v > t {
				out.Pix[out.PixOffset(x, y)] = 0xff
			}
		}
	}
	return out
}

// Binary paints set mask pixels with fg and the rest with bg
func Binary(mask *image.Gray, fg, bg RGB) *Frame {
	b := mask.Rect
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.Pix[mask.PixOffset(x, y)] != 0 {
				f.Set(x, y, fg)
			} else {
				f.Set(x, y, bg)
			}
		}
	}
	return f
}

// GaussianBlur blurs with a square kernel of the given odd size
func GaussianBlur(f *Frame, size int) *Frame {
	return FrameFrom(blur.Gaussian(f.img, float64(size/2)))
}

// Brighten adds delta to every channel, clamping to [0, 255]
func Brighten(f *Frame, delta int) *Frame {
	if delta == 0 {
		return f.Clone()
	}
	return FrameFrom(adjust.Apply(f.img, func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: uint8(vmath.ClampChannel(int(c.R) + delta)),
			G: uint8(vmath.ClampChannel(int(c.G) + delta)),
			B: uint8(vmath.ClampChannel(int(c.B) + delta)),
			A: 0xff,
		}
	}))
}

// ContourOptions tune DrawContours
type ContourOptions struct {
	Block       int
	C           int
	CloseRadius int
	Thickness   int
}

// DrawContours traces the borders of the regions of an edge-preserving
// threshold of f and strokes them with c in place
func DrawContours(f *Frame, c RGB, o ContourOptions) {
	// Median pre-filter stands in for a bilateral one
	smooth := FrameFrom(effect.Median(f.img, 1))
	mask := GaussianThreshold(smooth, o.Block, o.C)

	// Invert, then close small gaps
	regions := image.NewRGBA(mask.Rect)
	for i, v := range mask.Pix {
		p := regions.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = 0xff-v, 0xff-v, 0xff-v, 0xff
	}
	closed := effect.Erode(effect.Dilate(regions, float64(o.CloseRadius)), float64(o.CloseRadius))

	edges := borderPixels(closed)
	if o.Thickness > 1 {
		edges = effect.Dilate(edges, float64(o.Thickness-1)/2)
	}

	b := edges.Rect
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if edges.Pix[edges.PixOffset(x, y)] != 0 {
				f.Set(x, y, c)
			}
		}
	}
}

// borderPixels keeps set pixels with at least one unset 4-neighbour
// Pixels outside the image count as unset
func borderPixels(m *image.RGBA) *image.RGBA {
	b := m.Rect
	w, h := b.Dx(), b.Dy()
	set := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return m.Pix[m.PixOffset(x, y)] != 0
	}

	out := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+3] = 0xff
			if !set(x, y) {
				continue
			}
			if !set(x-1, y) || !set(x+1, y) || !set(x, y-1) || !set(x, y+1) {
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = 0xff, 0xff, 0xff
			}
		}
	}
	return out
}

// FillNoise writes uniform random channels to every pixel, eight bytes per draw
func FillNoise(f *Frame, rng *vmath.Rand) {
	w := f.Width() * 4
	var bits uint64
	left := 0
	for y := 0; y < f.Height(); y++ {
		row := f.img.Pix[f.img.PixOffset(0, y):][:w]
		for i := 0; i < w; i += 4 {
			for ch := 0; ch < 3; ch++ {
				if left == 0 {
					bits, left = rng.Uint64(), 8
				}
				row[i+ch] = uint8(bits)
				bits >>= 8
				left--
			}
			row[i+3] = 0xff
		}
	}
}
