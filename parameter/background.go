package parameter

// Background change durations, in seconds (or fractions of FPS)
const (
	// RandomPixel paints the whole canvas in [2s, 5s]
	PixelMinSeconds = 2
	PixelMaxSeconds = 5

	// Curtain sweeps in [2s, 5s]
	CurtainMinSeconds = 2
	CurtainMaxSeconds = 5

	// Grid divisions per axis in [1, GridMaxDiv]
	GridMaxDiv = 8

	ConvertMinSeconds = 2
	ConvertMaxSeconds = 5

	PolygonMinSeconds = 1
	PolygonMaxSeconds = 2

	NoiseMinSeconds = 3
	NoiseMaxSeconds = 6

	// Flash frame count in [FPS/2, 2*FPS)
	NoiseFlashMaxSeconds = 2
)
