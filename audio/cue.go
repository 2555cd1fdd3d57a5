// Package audio synthesizes a companion soundtrack with a short cue for every
// timeline event of a run
package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/taor/engine"
	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/vmath"
)

// Format is the encoding of every soundtrack: 16-bit stereo
var Format = beep.Format{
	SampleRate:  parameter.SampleRate,
	NumChannels: 2,
	Precision:   2,
}

// cue is one event placed on the track
type cue struct {
	tick int
	kind engine.EventKind
}

// CueTrack records timeline events and renders them as a WAV file aligned to
// the video frames
type CueTrack struct {
	fps  int
	seed uint64
	cues []cue
	end  int
}

// NewCueTrack aligns cues to a video running at fps
// seed makes the noise cues reproducible
func NewCueTrack(fps int, seed uint64) *CueTrack {
	return &CueTrack{fps: fps, seed: seed}
}

func (c *CueTrack) Observe(ev engine.Event) {
	c.cues = append(c.cues, cue{tick: ev.Tick, kind: ev.Kind})
	c.end = max(c.end, ev.Tick)
}

// Len is the number of recorded cues
func (c *CueTrack) Len() int { return len(c.cues) }

// Samples is the track length, matching the video duration
func (c *CueTrack) Samples() int {
	return c.offset(c.end)
}

func (c *CueTrack) offset(tick int) int {
	return tick * int(Format.SampleRate) / c.fps
}

// Streamer mixes every cue at its tick over silence, cut to the video length
func (c *CueTrack) Streamer() beep.Streamer {
	rng := vmath.NewRand(c.seed)
	parts := make([]beep.Streamer, 0, len(c.cues))
	for _, q := range c.cues {
		s := c.voice(q.kind, rng)
		if s == nil {
			continue
		}
		parts = append(parts, beep.Seq(beep.Silence(c.offset(q.tick)), s))
	}
	mixed := &effects.Gain{Streamer: beep.Mix(parts...), Gain: parameter.MasterGain - 1}
	return beep.Take(c.Samples(), beep.Seq(mixed, beep.Silence(-1)))
}

func (c *CueTrack) voice(kind engine.EventKind, rng *vmath.Rand) beep.Streamer {
	rate := Format.SampleRate
	switch kind {
	case engine.EventStart:
		return startCue(rate)
	case engine.EventBackgroundStart:
		return sweepCue(rate, rng)
	case engine.EventBackgroundFinish:
		return settleCue(rate)
	case engine.EventEffectStart:
		return chimeCue(rate)
	case engine.EventEffectFinish:
		return buzzCue(rate)
	case engine.EventEnd:
		return endCue(rate)
	default:
		return nil
	}
}

// Save encodes the track to path, creating parent directories
func (c *CueTrack) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create soundtrack directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create soundtrack %s: %w", path, err)
	}
	if err := wav.Encode(f, c.Streamer(), Format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode soundtrack %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close soundtrack %s: %w", path, err)
	}
	return nil
}
