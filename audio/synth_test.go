package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/taor/vmath"
)

const testRate = beep.SampleRate(44100)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape shape
		phase float64
		want  float64
	}{
		{"sine start", sine, 0, 0},
		{"sine crest", sine, 0.25, 1},
		{"sine trough", sine, 0.75, -1},
		{"square high", square, 0.25, 1},
		{"square low", square, 0.5, -1},
		{"saw start", saw, 0, -1},
		{"saw middle", saw, 0.5, 0},
		{"saw rise", saw, 0.75, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape(tt.phase); !near(got, tt.want) {
				t.Errorf("shape(%v) = %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name                  string
		i, n, attack, release int
		want                  float64
	}{
		{"attack start", 0, 100, 10, 20, 0},
		{"attack half", 5, 100, 10, 20, 0.5},
		{"sustain", 50, 100, 10, 20, 1},
		{"release start", 80, 100, 10, 20, 1},
		{"release last", 99, 100, 10, 20, 0.05},
		{"no envelope", 0, 100, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := level(tt.i, tt.n, tt.attack, tt.release); !near(got, tt.want) {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoteLength(t *testing.T) {
	n := note{freq: 440, shape: sine, length: 10 * time.Millisecond, gain: 1}
	want := testRate.N(n.length)
	s := n.play(testRate)

	samples := make([][2]float64, want*2)
	if got, ok := s.Stream(samples); got != want || !ok {
		t.Errorf("First stream = %d, %v, want %d, true", got, ok, want)
	}
	if got, ok := s.Stream(samples); got != 0 || ok {
		t.Errorf("Drained stream = %d, %v", got, ok)
	}
}

func TestNoteEnvelopeAndGain(t *testing.T) {
	tests := []struct {
		name   string
		note   note
		check  int
		want   float64
		silent bool
	}{
		{"sustain at gain", note{100, square, 100 * time.Millisecond, 30 * time.Millisecond, 30 * time.Millisecond, 0.5}, 2205, 0.5, false},
		{"attack begins silent", note{100, square, 100 * time.Millisecond, 30 * time.Millisecond, 30 * time.Millisecond, 0.5}, 0, 0, true},
		{"flat note", note{100, square, 20 * time.Millisecond, 0, 0, 0.25}, 0, 0.25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([][2]float64, testRate.N(tt.note.length))
			n, _ := tt.note.play(testRate).Stream(samples)
			if n != len(samples) {
				t.Fatalf("Streamed %d of %d samples", n, len(samples))
			}
			got := samples[tt.check]
			if got[0] != got[1] {
				t.Errorf("Channels differ: %v", got)
			}
			if !near(math.Abs(got[0]), tt.want) {
				t.Errorf("Sample %d amplitude %v, want %v", tt.check, got[0], tt.want)
			}
			if !tt.silent {
				last := math.Abs(samples[n-1][0])
				if last > tt.want+1e-9 {
					t.Errorf("Last sample %v above gain %v", last, tt.want)
				}
			}
		})
	}
}

func TestHissIsSeeded(t *testing.T) {
	n := note{length: 10 * time.Millisecond, gain: 1}
	stream := func(seed uint64) [][2]float64 {
		s := make([][2]float64, 64)
		n.hiss(testRate, vmath.NewRand(seed)).Stream(s)
		return s
	}
	a, b := stream(3), stream(3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Noise sample %d differs for the same seed", i)
		}
		if a[i][0] < -1 || a[i][0] > 1 {
			t.Fatalf("Noise sample %d = %v", i, a[i][0])
		}
	}
	varies := false
	for i := 1; i < len(a); i++ {
		if a[i] != a[0] {
			varies = true
		}
	}
	if !varies {
		t.Error("Noise is constant")
	}
}

func TestCuesStayInRange(t *testing.T) {
	tests := []struct {
		name   string
		cue    beep.Streamer
		length time.Duration
	}{
		{"start", startCue(testRate), 400 * time.Millisecond},
		{"end", endCue(testRate), 700 * time.Millisecond},
		{"sweep", sweepCue(testRate, vmath.NewRand(1)), 300 * time.Millisecond},
		{"settle", settleCue(testRate), 250 * time.Millisecond},
		{"chime", chimeCue(testRate), 310 * time.Millisecond},
		{"buzz", buzzCue(testRate), 150 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 0
			loud := false
			buf := make([][2]float64, 512)
			for {
				n, ok := tt.cue.Stream(buf)
				for i := range n {
					if math.Abs(buf[i][0]) > 1 {
						t.Fatalf("Sample %d = %v clips", total+i, buf[i][0])
					}
					if buf[i][0] != 0 {
						loud = true
					}
				}
				total += n
				if !ok {
					break
				}
			}
			if total != testRate.N(tt.length) {
				t.Errorf("Cue lasted %d samples, want %d", total, testRate.N(tt.length))
			}
			if !loud {
				t.Error("Cue is silent")
			}
		})
	}
}
