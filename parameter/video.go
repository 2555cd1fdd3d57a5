package parameter

// Video defaults
const (
	// FPS is the output frame rate
	FPS = 24

	// DefaultWidth and DefaultHeight are the canvas size in pixels
	DefaultWidth  = 1280
	DefaultHeight = 720

	// DefaultFrames is two minutes of video at FPS
	DefaultFrames = FPS * 60 * 2

	// DefaultGenerators is the number of generators per run
	DefaultGenerators = 1

	// DefaultJPEGQuality is the MJPEG encoding quality of the AVI sink
	DefaultJPEGQuality = 90

	// DefaultOutputDir is the directory prefix used when no image path is given
	DefaultOutputDir = "./results/"

	// VideoExtension is appended to every output name
	VideoExtension = ".avi"
)

// Scheduling windows, in seconds
const (
	// MaxEffects is how many post effects the timeline keeps scheduled or running
	MaxEffects = 1

	MinBackgroundWait = 20
	MaxBackgroundWait = 60

	MinEffectWait = 30
	MaxEffectWait = 60
)

// Global artifact movement
var (
	// MovementWeights are the probabilities of a 0, +1 and -1 step per axis
	MovementWeights = [3]float64{0.75, 0.12, 0.13}

	// MovementSteps are the values MovementWeights select from
	MovementSteps = [3]int{0, 1, -1}
)

// Anti-stall: relocate the first generator after this many unchanged frames,
// sampled in [MinRepeatedSeconds*FPS, MaxRepeatedSeconds*FPS]
const (
	MinRepeatedSeconds = 1
	MaxRepeatedSeconds = 4
)

// Preview defaults
const (
	// PreviewEvery mirrors one in N frames to the terminal
	PreviewEvery = 2
)

// Closed selector set sizes
const (
	GeneratorKinds  = 4
	BackgroundKinds = 7
	EffectKinds     = 9
)
