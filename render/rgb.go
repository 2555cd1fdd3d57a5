package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/taor/vmath"
)

// RGB is an opaque 8-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Color converts to the stdlib color type stored in image buffers
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// String is the hex form, used in timeline messages
func (c RGB) String() string {
	return c.Hex()
}

// Channels returns the color as three ints for drift arithmetic
func (c RGB) Channels() [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

// FromChannels builds a color, clamping every channel to [0, 255]
func FromChannels(ch [3]int) RGB {
	return RGB{
		R: uint8(vmath.ClampChannel(ch[0])),
		G: uint8(vmath.ClampChannel(ch[1])),
		B: uint8(vmath.ClampChannel(ch[2])),
	}
}

// Offset adds the same signed value to every channel with clamping
func Offset(c RGB, delta int) RGB {
	return FromChannels([3]int{int(c.R) + delta, int(c.G) + delta, int(c.B) + delta})
}

// Luma is the Rec. 601 brightness of the color
// Integer math: (R*299 + G*587 + B*114) / 1000
func Luma(c RGB) uint8 {
	return uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
}

// RandomRGB samples three independent channels in [0, 255]
func RandomRGB(rng *vmath.Rand) RGB {
	r := rng.Between(0, 256)
	g := rng.Between(0, 256)
	b := rng.Between(0, 256)
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}
