// Package engine runs the per-tick simulation: generators emit artifacts,
// one background change at a time repaints the background, artifacts are
// composited over it and scheduled post effects transform the result
package engine

import (
	"fmt"
	"log"
	"slices"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/taor/artifact"
	"github.com/lixenwraith/taor/background"
	"github.com/lixenwraith/taor/config"
	"github.com/lixenwraith/taor/effect"
	"github.com/lixenwraith/taor/generator"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/schedule"
	"github.com/lixenwraith/taor/status"
	"github.com/lixenwraith/taor/vmath"
)

// FrameSink consumes finished frames; the frame is only valid during the call
type FrameSink interface {
	Write(f *render.Frame) error
}

// Options carry the run wiring that does not affect the random stream
type Options struct {
	// Name appears in the end-of-video timeline entry
	Name string

	// RunID tags debug log lines
	RunID string

	Observers []Observer

	// Status receives live counters; nil allocates a private registry
	Status *status.Registry
}

// Settings are the run-wide values drawn at construction
type Settings struct {
	Background  render.RGB
	MoveX       int
	MoveY       int
	MoveEvery   int
	MaxRepeated int
}

// Simulation owns the canvas and every state machine of one video
// Not safe for concurrent use
type Simulation struct {
	width, height int
	fps           int
	rng           *vmath.Rand
	painter       *render.Painter
	name          string

	generators []generator.Generator
	bgSched    *schedule.BackgroundScheduler
	fxSched    *schedule.EffectScheduler

	settings Settings
	color    render.RGB

	background *render.Frame
	lastFrame  *render.Frame
	pending    schedule.ScheduledChange
	change     background.Change

	queue   []*schedule.ScheduledEffect
	running []*schedule.ScheduledEffect

	artifacts []*artifact.Artifact

	redraw   bool
	repeated int
	recycled int
	tick     int

	observers []Observer
	stats     *status.Registry

	// Cached metric pointers
	statTick      *atomic.Int64
	statRecycled  *atomic.Int64
	statArtifacts *atomic.Int64
	statChanges   *atomic.Int64
	statEffects   *atomic.Int64
	statStalls    *atomic.Int64
	labelBg       *status.Label
	labelFx       *status.Label
}

// New builds a simulation from a validated config
// Every random draw of the run comes from rng, in a fixed order starting here
func New(cfg config.Config, rng *vmath.Rand, opts Options) *Simulation {
	s := &Simulation{
		width:     cfg.Width,
		height:    cfg.Height,
		fps:       cfg.FPS,
		rng:       rng,
		painter:   render.NewPainter(),
		name:      opts.Name,
		observers: slices.Clone(opts.Observers),
		stats:     opts.Status,
		redraw:    true,
	}
	if s.stats == nil {
		s.stats = status.NewRegistry()
	}
	if opts.RunID != "" {
		s.observers = append(s.observers, logObserver{runID: opts.RunID})
	}
	s.cacheMetrics()

	genFactory := generator.NewFactory(rng, cfg.MaxSize(), cfg.FPS, cfg.GeneratorWeights)
	s.bgSched = schedule.NewBackgroundScheduler(rng, cfg.FPS, cfg.MinBackgroundWait, cfg.MaxBackgroundWait,
		background.NewFactory(rng, cfg.Width, cfg.Height, cfg.FPS, cfg.BackgroundWeights))
	s.fxSched = schedule.NewEffectScheduler(rng, cfg.FPS, cfg.MinEffectWait, cfg.MaxEffectWait,
		effect.NewFactory(rng, cfg.Width, cfg.Height, cfg.FPS, cfg.EffectWeights))

	s.color = render.RandomRGB(rng)
	s.background = render.NewFrame(cfg.Width, cfg.Height)
	s.background.Fill(s.color)
	s.lastFrame = s.background.Clone()

	moves := cfg.MovementWeights[:]
	moveY := parameter.MovementSteps[rng.Weighted(len(moves), moves)]
	moveX := parameter.MovementSteps[rng.Weighted(len(moves), moves)]
	moveEvery := rng.Between(1, cfg.FPS+1)
	maxRepeated := rng.Between(cfg.FPS*parameter.MinRepeatedSeconds, cfg.FPS*parameter.MaxRepeatedSeconds+1)
	s.settings = Settings{
		Background:  s.color,
		MoveX:       moveX,
		MoveY:       moveY,
		MoveEvery:   moveEvery,
		MaxRepeated: maxRepeated,
	}

	s.generators = make([]generator.Generator, cfg.Generators)
	for i := range s.generators {
		s.generators[i] = genFactory.Create()
	}

	s.pending = s.bgSched.NextChange(s.color, 0)

	s.queue = make([]*schedule.ScheduledEffect, 0, cfg.MaxEffects)
	for range cfg.MaxEffects {
		s.queue = append(s.queue, s.fxSched.NextEffect(0))
	}
	schedule.SortEffects(s.queue)

	return s
}

func (s *Simulation) cacheMetrics() {
	s.statTick = s.stats.Counters.Get(status.Tick)
	s.statRecycled = s.stats.Counters.Get(status.Recycled)
	s.statArtifacts = s.stats.Counters.Get(status.Artifacts)
	s.statChanges = s.stats.Counters.Get(status.Changes)
	s.statEffects = s.stats.Counters.Get(status.Effects)
	s.statStalls = s.stats.Counters.Get(status.Stalls)
	s.labelBg = s.stats.Labels.Get(status.Background)
	s.labelFx = s.stats.Labels.Get(status.Active)
}

// Generators exposes the run's generators, first one subject to anti-stall
func (s *Simulation) Generators() []generator.Generator { return s.generators }

func (s *Simulation) Settings() Settings { return s.settings }

// Tick is the index of the next frame Step will produce
func (s *Simulation) Tick() int { return s.tick }

// Recycled counts frames composited over the previous frame instead of the background
func (s *Simulation) Recycled() int { return s.recycled }

// Artifacts is the number of live artifacts
func (s *Simulation) Artifacts() int { return len(s.artifacts) }

// PendingEffects is the number of scheduled effects not yet started
func (s *Simulation) PendingEffects() int { return len(s.queue) }

// RunningEffects is the number of effects applied on the current tick
func (s *Simulation) RunningEffects() int { return len(s.running) }

// PendingChange is the next scheduled background change
func (s *Simulation) PendingChange() schedule.ScheduledChange { return s.pending }

// ActiveChange is the background change in progress, or nil
func (s *Simulation) ActiveChange() background.Change { return s.change }

func (s *Simulation) notify(kind EventKind, label string) {
	ev := Event{Tick: s.tick, Kind: kind, Label: label}
	for _, o := range s.observers {
		o.Observe(ev)
	}
}

// Step advances one tick and returns the frame to emit
// The returned frame stays valid until the next Step
func (s *Simulation) Step() *render.Frame {
	newest := len(s.artifacts)
	for _, g := range s.generators {
		s.artifacts = append(s.artifacts, g.Generate()...)
	}

	s.stepBackground()
	frame, changed := s.composite(newest)
	out := s.applyEffects(frame)

	if (s.settings.MoveX != 0 || s.settings.MoveY != 0) && s.tick%s.settings.MoveEvery == 0 {
		for _, a := range s.artifacts {
			a.Move(s.settings.MoveX, s.settings.MoveY)
		}
		s.redraw = true
	}

	if changed {
		s.repeated = 0
	} else {
		s.repeated++
	}
	if s.repeated > s.settings.MaxRepeated {
		x := s.rng.Between(0, s.width)
		y := s.rng.Between(0, s.height)
		s.generators[0].MoveOrigin(x, y)
		s.repeated = 0
		s.statStalls.Add(1)
		log.Printf("tick %d: no change for %d frames, generator moved to %d,%d",
			s.tick, s.settings.MaxRepeated+1, x, y)
	}

	s.lastFrame = frame
	s.tick++

	s.statTick.Store(int64(s.tick))
	s.statRecycled.Store(int64(s.recycled))
	s.statArtifacts.Store(int64(len(s.artifacts)))
	return out
}

// stepBackground activates the pending change on its tick and advances the
// active one, scheduling the next change when it finishes
func (s *Simulation) stepBackground() {
	if s.tick == s.pending.At {
		s.change = s.pending.Change
		s.labelBg.Store(s.change.Kind().String())
		s.notify(EventBackgroundStart, s.change.String())
	}

	if s.change == nil || !s.change.Working() {
		return
	}
	s.change.NextStep(s.background)
	s.redraw = true
	if s.change.Finished() {
		s.color = s.change.FinalColor()
		s.pending = s.bgSched.NextChange(s.color, s.tick)
		s.change = nil
		s.statChanges.Add(1)
		s.labelBg.Store("")
		s.notify(EventBackgroundFinish, "Finished BG Change")
	}
}

// composite draws live artifacts over a fresh copy of the background, or only
// the artifacts created this tick over the previous frame, then ages them
// It reports whether any visible pixel changed
func (s *Simulation) composite(newest int) (*render.Frame, bool) {
	var frame *render.Frame
	first := 0
	if s.redraw {
		frame = s.background.Clone()
	} else {
		frame = s.lastFrame
		first = newest
		s.recycled++
	}
	s.redraw = false

	changed := false
	for _, a := range s.artifacts[first:] {
		if a.Dead || !a.WillPaint(s.width, s.height) {
			continue
		}
		if !a.Painted {
			changed = true
		}
		a.Draw(frame, s.painter)
		a.Painted = true
	}

	for _, a := range s.artifacts {
		if a.Dead {
			continue
		}
		if a.Tick() && a.Painted && a.WillPaint(s.width, s.height) {
			changed = true
			s.redraw = true
		}
	}
	s.artifacts = slices.DeleteFunc(s.artifacts, func(a *artifact.Artifact) bool {
		return a.Dead
	})
	return frame, changed
}

// applyEffects starts due effects and runs every active one in activation order
func (s *Simulation) applyEffects(frame *render.Frame) *render.Frame {
	for len(s.queue) > 0 && s.queue[0].Initial <= s.tick {
		se := s.queue[0]
		s.queue = s.queue[1:]
		s.running = append(s.running, se)
		s.statEffects.Add(1)
		s.labelFx.Store(se.Effect.Kind().String())
		s.notify(EventEffectStart, fmt.Sprintf("Effect Started: %v", se.Effect))
	}

	out := frame
	kept := s.running[:0]
	for _, se := range s.running {
		out = se.Effect.NextStep(out)
		if se.Effect.Finished() {
			s.notify(EventEffectFinish, fmt.Sprintf("Effect finished: %v", se.Effect))
			s.queue = append(s.queue, s.fxSched.NextEffect(s.tick))
			continue
		}
		kept = append(kept, se)
	}
	clear(s.running[len(kept):])
	s.running = kept
	if len(s.running) == 0 {
		s.labelFx.Store("")
	}
	schedule.SortEffects(s.queue)
	return out
}

// Run produces total frames into sink, framed by start and end timeline events
func (s *Simulation) Run(total int, sink FrameSink) error {
	s.notify(EventStart, "Start Video")

	rate := s.stats.Rates.Get(status.Throughput)
	frames := s.stats.Counters.Get(status.Frames)
	frames.Store(int64(total))
	began := time.Now()

	for range total {
		out := s.Step()
		if err := sink.Write(out); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", s.tick-1, err)
		}
		if elapsed := time.Since(began).Seconds(); elapsed > 0 {
			rate.Set(float64(s.tick) / elapsed)
		}
	}

	label := "End Video"
	if s.name != "" {
		label += ". Saved to " + s.name
	}
	s.notify(EventEnd, label)
	return nil
}
