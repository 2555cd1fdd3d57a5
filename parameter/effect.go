package parameter

// Post effect duration, in seconds
const (
	EffectMinSeconds = 10
	EffectMaxSeconds = 60
)

// Mirror axes are drawn from {none, h, v, -h, -v}
var (
	MirrorAxis1Weights = []float64{0, 0.25, 0.25, 0.25, 0.25}
	MirrorAxis2Weights = []float64{0.90, 0.025, 0.025, 0.025, 0.025}
)

// MirrorBoxWeights choose h or v
var MirrorBoxWeights = []float64{0.5, 0.5}

// Gaussian kernel sizes and their weights
var (
	GaussSizes   = []int{9, 11, 13, 15, 21}
	GaussWeights = []float64{0.1, 0.2, 0.3, 0.3, 0.1}
)

// Brightness offset magnitude in [MinBrightness, MaxBrightness)
const (
	MinBrightness = 50
	MaxBrightness = 100
)

// Contour outline thickness
var (
	ContourThickness        = []int{3, 5, 7}
	ContourThicknessWeights = []float64{0.4, 0.3, 0.3}
)

// Adaptive threshold settings
const (
	// ThresholdBlock is the neighbourhood side of the mean threshold
	ThresholdBlock = 11
	ThresholdC     = 2

	// ContourBlock is the neighbourhood side used by the contour effect
	ContourBlock = 3

	// ContourCloseRadius is the morphological close radius of the contour mask
	ContourCloseRadius = 2
)

// Boomerang
const (
	// BoomerangBounces is how many direction reversals play before the buffer resets
	BoomerangBounces = 3

	// BoomerangMinLength keeps the replay buffer long enough to bounce
	BoomerangMinLength = 2
)
