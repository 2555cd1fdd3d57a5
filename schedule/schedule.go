// Package schedule decides when background changes and post effects start
package schedule

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/taor/background"
	"github.com/lixenwraith/taor/effect"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

// Timestamp formats a tick as H:MM:SS of video time, truncating fractions
func Timestamp(tick, fps int) string {
	s := tick / fps
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

// delay samples a wait in ticks from [minWait*fps, maxWait*fps)
// Equal bounds return the bound without drawing
func delay(rng *vmath.Rand, fps, minWait, maxWait int) int {
	return rng.Between(fps*minWait, fps*maxWait)
}

// ScheduledEffect is a post effect with its activation window
type ScheduledEffect struct {
	Initial int
	Final   int
	Effect  *effect.Effect
	fps     int
}

func (s *ScheduledEffect) String() string {
	return fmt.Sprintf("Effect: %s to %s. %v", Timestamp(s.Initial, s.fps), Timestamp(s.Final, s.fps), s.Effect)
}

// SortEffects orders a queue by initial tick, keeping insertion order on ties
func SortEffects(q []*ScheduledEffect) {
	slices.SortStableFunc(q, func(a, b *ScheduledEffect) int {
		return a.Initial - b.Initial
	})
}

// EffectScheduler places post effects a random delay after a given tick
type EffectScheduler struct {
	rng              *vmath.Rand
	fps              int
	minWait, maxWait int
	factory          *effect.Factory
}

// NewEffectScheduler creates a scheduler; waits are in seconds
func NewEffectScheduler(rng *vmath.Rand, fps, minWait, maxWait int, factory *effect.Factory) *EffectScheduler {
	return &EffectScheduler{rng: rng, fps: fps, minWait: minWait, maxWait: maxWait, factory: factory}
}

// NextEffect draws the delay, then the effect
func (s *EffectScheduler) NextEffect(tick int) *ScheduledEffect {
	start := tick + delay(s.rng, s.fps, s.minWait, s.maxWait)
	e := s.factory.Create()
	return &ScheduledEffect{Initial: start, Final: start + e.Frames(), Effect: e, fps: s.fps}
}

// ScheduledChange is a background change and the tick it starts on
type ScheduledChange struct {
	At     int
	Change background.Change
}

// BackgroundScheduler keeps a running clock; each change starts a random
// delay after the previous activation
type BackgroundScheduler struct {
	rng              *vmath.Rand
	fps              int
	minWait, maxWait int
	clock            int
	factory          *background.Factory
}

// NewBackgroundScheduler creates a scheduler with its clock at zero; waits are in seconds
func NewBackgroundScheduler(rng *vmath.Rand, fps, minWait, maxWait int, factory *background.Factory) *BackgroundScheduler {
	return &BackgroundScheduler{rng: rng, fps: fps, minWait: minWait, maxWait: maxWait, factory: factory}
}

// NextChange advances the clock by a random delay and builds the change
// starting from current. A clock that would land at or before tick restarts
// the delay from tick, so the change always lies in the future
func (s *BackgroundScheduler) NextChange(current render.RGB, tick int) ScheduledChange {
	d := delay(s.rng, s.fps, s.minWait, s.maxWait)
	s.clock += d
	if s.clock <= tick {
		s.clock = tick + d
	}
	return ScheduledChange{At: s.clock, Change: s.factory.Create(current)}
}

// Clock is the activation tick of the last scheduled change
func (s *BackgroundScheduler) Clock() int { return s.clock }
