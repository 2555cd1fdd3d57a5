package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/taor/parameter"
)

// Config holds every tunable of a run. Zero values are never valid; start from
// Default and overlay a file with Load.
type Config struct {
	FPS    int `yaml:"fps"`
	Width  int `yaml:"img_width"`
	Height int `yaml:"img_height"`

	// MaxEffects is how many post effects are scheduled or running at any tick
	MaxEffects int `yaml:"max_effects"`

	// Waits are in seconds and converted to ticks with FPS
	MinBackgroundWait int `yaml:"min_bg_change_wait"`
	MaxBackgroundWait int `yaml:"max_bg_change_wait"`
	MinEffectWait     int `yaml:"min_effect_wait"`
	MaxEffectWait     int `yaml:"max_effect_wait"`

	// MovementWeights are the probabilities of a 0, +1 and -1 global step per axis
	MovementWeights [3]float64 `yaml:"p_movement"`

	Generators int `yaml:"generators"`

	// Selector weights in declaration order of each closed set; empty means uniform
	GeneratorWeights  []float64 `yaml:"p_generators"`
	BackgroundWeights []float64 `yaml:"p_background_change_type"`
	EffectWeights     []float64 `yaml:"p_post_effect_type"`

	JPEGQuality int `yaml:"jpeg_quality"`

	Preview      bool `yaml:"preview"`
	PreviewEvery int  `yaml:"preview_every"`
	Soundtrack   bool `yaml:"soundtrack"`
}

// Default mirrors the values the generator was tuned with
func Default() Config {
	return Config{
		FPS:               parameter.FPS,
		Width:             parameter.DefaultWidth,
		Height:            parameter.DefaultHeight,
		MaxEffects:        parameter.MaxEffects,
		MinBackgroundWait: parameter.MinBackgroundWait,
		MaxBackgroundWait: parameter.MaxBackgroundWait,
		MinEffectWait:     parameter.MinEffectWait,
		MaxEffectWait:     parameter.MaxEffectWait,
		MovementWeights:   parameter.MovementWeights,
		Generators:        parameter.DefaultGenerators,
		JPEGQuality:       parameter.DefaultJPEGQuality,
		PreviewEvery:      parameter.PreviewEvery,
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects configurations the engine cannot run
func (c Config) Validate() error {
	if c.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", c.FPS)
	}
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("canvas must be at least 2x2, got %dx%d", c.Width, c.Height)
	}
	if c.MaxEffects < 0 {
		return fmt.Errorf("max_effects cannot be negative, got %d", c.MaxEffects)
	}
	if c.MinBackgroundWait < 1 || c.MaxBackgroundWait < c.MinBackgroundWait {
		return fmt.Errorf("background wait range [%d, %d] invalid: min must be >= 1 and <= max",
			c.MinBackgroundWait, c.MaxBackgroundWait)
	}
	if c.MinEffectWait < 1 || c.MaxEffectWait < c.MinEffectWait {
		return fmt.Errorf("effect wait range [%d, %d] invalid: min must be >= 1 and <= max",
			c.MinEffectWait, c.MaxEffectWait)
	}

	sum := 0.0
	for i, p := range c.MovementWeights {
		if p < 0 {
			return fmt.Errorf("p_movement[%d] cannot be negative, got %f", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("p_movement must sum to 1, got %f", sum)
	}

	if c.Generators < 1 {
		return fmt.Errorf("generators must be at least 1, got %d", c.Generators)
	}

	if err := validateWeights("p_generators", c.GeneratorWeights, parameter.GeneratorKinds); err != nil {
		return err
	}
	if err := validateWeights("p_background_change_type", c.BackgroundWeights, parameter.BackgroundKinds); err != nil {
		return err
	}
	if err := validateWeights("p_post_effect_type", c.EffectWeights, parameter.EffectKinds); err != nil {
		return err
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.Preview && c.PreviewEvery < 1 {
		return fmt.Errorf("preview_every must be at least 1, got %d", c.PreviewEvery)
	}
	return nil
}

func validateWeights(name string, weights []float64, n int) error {
	if len(weights) == 0 {
		return nil
	}
	if len(weights) != n {
		return fmt.Errorf("%s needs %d weights, got %d", name, n, len(weights))
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s[%d] cannot be negative, got %f", name, i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%s must have at least one positive weight", name)
	}
	return nil
}

// MaxSize is the larger canvas side, the scale generators place origins on
func (c Config) MaxSize() int {
	return max(c.Width, c.Height)
}
