package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/vmath"
)

// shape maps an oscillator phase in [0, 1) to a sample in [-1, 1]
type shape func(phase float64) float64

func sine(p float64) float64 { return math.Sin(2 * math.Pi * p) }

func square(p float64) float64 {
	if p < 0.5 {
		return 1
	}
	return -1
}

func saw(p float64) float64 { return 2*p - 1 }

// note is a single tone under a linear attack/release envelope
type note struct {
	freq    float64
	shape   shape
	length  time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
}

// level is the envelope at sample i of n: a ramp up over attack samples and a
// ramp down over the last release samples
func level(i, n, attack, release int) float64 {
	switch {
	case attack > 0 && i < attack:
		return float64(i) / float64(attack)
	case release > 0 && i >= n-release:
		return float64(n-i) / float64(release)
	}
	return 1
}

// play renders the note's waveform
func (n note) play(rate beep.SampleRate) beep.Streamer {
	step := n.freq / float64(rate)
	phase := 0.0
	return n.render(rate, func() float64 {
		v := n.shape(phase)
		phase += step
		phase -= math.Floor(phase)
		return v
	})
}

// hiss renders white noise drawn from rng under the note's envelope
func (n note) hiss(rate beep.SampleRate, rng *vmath.Rand) beep.Streamer {
	return n.render(rate, func() float64 { return rng.Float64()*2 - 1 })
}

// render streams length worth of samples from next, shaped and scaled
func (n note) render(rate beep.SampleRate, next func() float64) beep.Streamer {
	total, attack, release := rate.N(n.length), rate.N(n.attack), rate.N(n.release)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		k := min(len(samples), total-pos)
		for i := range k {
			v := next() * level(pos, total, attack, release) * n.gain
			samples[i] = [2]float64{v, v}
			pos++
		}
		return k, true
	})
}

// chord plays notes together
func chord(rate beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = n.play(rate)
	}
	return beep.Mix(parts...)
}

// Cues, one per timeline event kind

// startCue is a bell: A5 with an octave overtone
func startCue(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.StartCueDuration, parameter.StartCueAttack, parameter.StartCueRelease
	return chord(rate,
		note{880, sine, d, a, r, 0.7},
		note{1760, sine, d, a, r / 2, 0.3},
	)
}

// endCue is a long low bell, A3 with a fifth
func endCue(rate beep.SampleRate) beep.Streamer {
	d, a, r := parameter.EndCueDuration, parameter.StartCueAttack, parameter.EndCueRelease
	return chord(rate,
		note{220, sine, d, a, r, 0.6},
		note{330, sine, d, a, r, 0.4},
	)
}

// sweepCue is a soft noise swell for a background change starting
func sweepCue(rate beep.SampleRate, rng *vmath.Rand) beep.Streamer {
	n := note{length: parameter.SweepCueDuration, attack: parameter.SweepCueAttack, release: parameter.SweepCueRelease, gain: 0.4}
	return n.hiss(rate, rng)
}

// settleCue is a low G3 for a background change finishing
func settleCue(rate beep.SampleRate) beep.Streamer {
	return note{196, sine, parameter.SettleCueDuration, parameter.StartCueAttack, parameter.SettleCueRelease, 0.5}.play(rate)
}

// chimeCue is a rising two-note square chime, B5 then E6
func chimeCue(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note{987.77, square, parameter.ChimeNote1Duration, parameter.ChimeAttack, parameter.ChimeNote1Release, 0.25}.play(rate),
		note{1318.51, square, parameter.ChimeNote2Duration, parameter.ChimeAttack, parameter.ChimeNote2Release, 0.25}.play(rate),
	)
}

// buzzCue is a short saw buzz for an effect wearing off
func buzzCue(rate beep.SampleRate) beep.Streamer {
	return note{110, saw, parameter.BuzzCueDuration, parameter.BuzzCueAttack, parameter.BuzzCueRelease, 0.3}.play(rate)
}
