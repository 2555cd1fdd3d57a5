package parameter

// Generator factory
const (
	// MaxThickness bounds the outline thickness of outlined artifacts
	MaxThickness = 10

	// CoordinateMarginDiv places origins up to size/CoordinateMarginDiv outside the canvas
	CoordinateMarginDiv = 6
)

// Shared generator parameters
const (
	// PColorAsOutline is the chance a generator strokes instead of fills
	PColorAsOutline = 0.15

	PChangeColor             = 0.5
	PChangeColorUnison       = 0.15
	PChangeColorEveryStep    = 0.3
	PChangeColorJumpEachStep = 0.35

	// Color jump bounds: min in [MinColorJumpLow, MinColorJumpHigh), max up to MaxColorJumpHigh
	MinColorJumpLow  = 1
	MinColorJumpHigh = 11
	MaxColorJumpHigh = 41

	// Size bounds: min in [MinSizeLow, MinSizeHigh), max up to MaxSizeHigh
	MinSizeLow  = 30
	MinSizeHigh = 60
	MaxSizeHigh = 161

	PChangeSizeEveryStep = 0.35
	PUseShakiness        = 0.2

	// Artifact lifespan in seconds
	MinLifespanSeconds = 3
	MaxLifespanSeconds = 30
)

// Line generators (Worm, Lasso)
var LineShapeWeights = []float64{0.4, 0.4, 0.2}

const (
	PChangeSpaceJumpEachStep = 0.3
)

// Worm
const (
	// WormCrazinessSqHigh bounds craziness = int(sqrt([1, WormCrazinessSqHigh)))
	WormCrazinessSqHigh = 8 * 8
)

// WormTurnSplit distributes the turn probability over 1, 2 and 3 heading steps
var WormTurnSplit = [3]float64{0.5, 0.3, 0.2}

// Lasso
const (
	LassoCrazinessSqLow  = 2 * 2
	LassoCrazinessSqHigh = 20 * 20
	LassoMaxGrade        = 3
	LassoMinReset        = 96
	LassoMaxReset        = 480
	LassoGradeDivisor    = 4
)

var LassoTurnSplit = [3]float64{0.4, 0.3, 0.3}

// Explosion
var ExplosionShapeWeights = []float64{0.3, 0.5, 0.2}

const (
	ExplosionMinQuantity      = 100
	ExplosionMaxQuantity      = 5000
	ExplosionMinAngleJumpLow  = 10
	ExplosionMinAngleJumpHigh = 21
	ExplosionMaxAngleJumpHigh = 61
	PExplosionChangeAngleJump = 0.3
	ExplosionMaxDistanceJump  = 5
	ExplosionMaxInitialDist   = 100
	ExplosionMinReset         = 240
	ExplosionMaxReset         = 480 * 2
)

// StainGrid
var StainGridShapeWeights = []float64{0.4, 0.5, 0.1}

const (
	StainGridMinQuantity = 1000
	StainGridMaxQuantity = 20000
	StainGridMinSize     = 20
	StainGridMaxSize     = 51
	StainGridMinSpace    = 10
	PStainGridRandSpace  = 0.7
)
