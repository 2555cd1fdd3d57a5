package background

import (
	"testing"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/vmath"
)

const (
	testW   = 48
	testH   = 32
	testFPS = 4
)

var allKinds = []Kind{KindRandomPixel, KindInstant, KindConvert, KindGrid, KindCurtain, KindPolygon, KindNoise}

func uniformFrame(c render.RGB) *render.Frame {
	f := render.NewFrame(testW, testH)
	f.Fill(c)
	return f
}

// run steps a change until it finishes, failing after limit steps
func run(t *testing.T, c Change, bg *render.Frame, limit int) int {
	t.Helper()
	steps := 0
	for !c.Finished() {
		if !c.Working() {
			t.Fatal("Change stopped working before finishing")
		}
		c.NextStep(bg)
		steps++
		if steps > limit {
			t.Fatalf("%v did not finish in %d steps", c.Kind(), limit)
		}
	}
	return steps
}

func TestEveryKindSnapsToTarget(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			src := render.RGB{10, 20, 30}
			f := NewFactory(vmath.NewRand(uint64(kind)+1), testW, testH, testFPS, nil)
			c := f.CreateKind(kind, src)
			if c.Kind() != kind {
				t.Fatalf("Built %v, want %v", c.Kind(), kind)
			}

			bg := uniformFrame(src)
			run(t, c, bg, testW*testH+1)

			if c.Working() {
				t.Error("Finished change still working")
			}
			if !bg.Equal(uniformFrame(c.FinalColor())) {
				t.Error("Buffer not at the target color after finishing")
			}

			// Further steps are no-ops
			snapshot := bg.Clone()
			c.NextStep(bg)
			if !bg.Equal(snapshot) {
				t.Error("Finished change kept mutating the buffer")
			}
		})
	}
}

func TestInstantIsOneStep(t *testing.T) {
	f := NewFactory(vmath.NewRand(1), testW, testH, testFPS, nil)
	c := f.CreateKind(KindInstant, render.RGBBlack)
	if steps := run(t, c, uniformFrame(render.RGBBlack), 5); steps != 1 {
		t.Errorf("Instant change took %d steps", steps)
	}
}

func TestRandomPixelPaintsBatches(t *testing.T) {
	f := NewFactory(vmath.NewRand(3), testW, testH, testFPS, nil)
	c := f.CreateKind(KindRandomPixel, render.RGBBlack).(*sliceChange)

	area := testW * testH
	lo, hi := area/(testFPS*5), area/(testFPS*2)
	if c.perStep < lo || c.perStep > hi {
		t.Fatalf("Pixels per step %d outside [%d,%d]", c.perStep, lo, hi)
	}

	bg := uniformFrame(render.RGBBlack)
	c.NextStep(bg)
	painted := 0
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			if bg.At(x, y) == c.FinalColor() {
				painted++
			}
		}
	}
	// Black targets would make the count ambiguous
	if c.FinalColor() != render.RGBBlack && painted != c.perStep {
		t.Errorf("Painted %d pixels, want %d", painted, c.perStep)
	}
	if c.Remaining() != area-c.perStep {
		t.Errorf("Remaining %d, want %d", c.Remaining(), area-c.perStep)
	}
}

func TestCurtainDirection(t *testing.T) {
	// Find seeds producing each direction and check the first band lands on the right side
	seen := map[string]bool{}
	for seed := uint64(0); seed < 64 && len(seen) < 4; seed++ {
		f := NewFactory(vmath.NewRand(seed), testW, testH, 1, nil)
		c := f.CreateKind(KindCurtain, render.RGBBlack).(*sliceChange)
		target := c.FinalColor()
		if target == render.RGBBlack {
			continue
		}

		bg := uniformFrame(render.RGBBlack)
		c.NextStep(bg)

		var first render.RGB
		var dir string
		switch {
		case bg.At(testW/2, 0) == target && bg.At(testW/2, testH-1) != target:
			dir, first = "ud", bg.At(0, 0)
		case bg.At(testW/2, testH-1) == target && bg.At(testW/2, 0) != target:
			dir, first = "du", bg.At(0, testH-1)
		case bg.At(0, testH/2) == target && bg.At(testW-1, testH/2) != target:
			dir, first = "lr", bg.At(0, 0)
		case bg.At(testW-1, testH/2) == target && bg.At(0, testH/2) != target:
			dir, first = "rl", bg.At(testW-1, 0)
		default:
			t.Fatalf("Seed %d: first curtain step painted no edge band (%s)", seed, c)
		}
		if first != target {
			t.Errorf("Seed %d: band %s does not span the edge", seed, dir)
		}
		seen[dir] = true
	}
	if len(seen) < 2 {
		t.Errorf("Expected several curtain directions across seeds, saw %v", seen)
	}
}

func TestGridCoversBuffer(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		f := NewFactory(vmath.NewRand(seed), 37, 23, testFPS, nil)
		c := f.CreateKind(KindGrid, render.RGBBlack).(*sliceChange)
		bg := render.NewFrame(37, 23)
		for c.Remaining() > 1 {
			c.NextStep(bg)
		}
		if c.Finished() {
			t.Fatalf("Seed %d: finished before last cell", seed)
		}
		c.NextStep(bg)
		if !c.Finished() {
			t.Fatalf("Seed %d: did not finish on the step that emptied the queue", seed)
		}
	}
}

func TestConvertInterpolates(t *testing.T) {
	src := render.RGB{0, 100, 200}
	f := NewFactory(vmath.NewRand(5), testW, testH, testFPS, nil)
	c := f.CreateKind(KindConvert, src).(*Convert)
	target := c.FinalColor()

	bg := uniformFrame(src)
	steps := run(t, c, bg, 1000)
	if steps != c.Frames()+1 {
		t.Errorf("Convert finished in %d steps, want frames+1 = %d", steps, c.Frames()+1)
	}

	// Replay and check the midpoint lies between source and target
	c2 := NewFactory(vmath.NewRand(5), testW, testH, testFPS, nil).CreateKind(KindConvert, src).(*Convert)
	bg2 := uniformFrame(src)
	for i := 0; i < c2.Frames()/2; i++ {
		c2.NextStep(bg2)
	}
	mid := bg2.At(0, 0).Channels()
	s, d := src.Channels(), target.Channels()
	for i := range mid {
		lo, hi := min(s[i], d[i]), max(s[i], d[i])
		if mid[i] < lo || mid[i] > hi {
			t.Errorf("Channel %d = %d outside [%d,%d]", i, mid[i], lo, hi)
		}
	}
}

func TestPolygonFirstStep(t *testing.T) {
	src := render.RGB{1, 1, 1}
	f := NewFactory(vmath.NewRand(6), 64, 64, testFPS, nil)
	p := f.CreateKind(KindPolygon, src).(*Polygon)
	if p.FinalColor() == src {
		t.Skip("Target equals source")
	}

	bg := render.NewFrame(64, 64)
	p.NextStep(bg)

	covered := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if bg.At(x, y) == p.FinalColor() {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("First step painted no target pixels")
	}
	// Vertices sit inside the buffer, so the corner pixel is never fully covered
	if bg.At(0, 0) == p.FinalColor() {
		t.Error("Initial polygon already reaches the corner")
	}
}

func TestNoiseFlashHoldsFrame(t *testing.T) {
	f := NewFactory(vmath.NewRand(12), testW, testH, testFPS, nil)
	n := f.CreateKind(KindNoise, render.RGBBlack).(*Noise)

	bg := uniformFrame(render.RGBBlack)
	for i := 0; i < n.Frames(); i++ {
		before := bg.Clone()
		n.NextStep(bg)
		if n.Flash(i) && !bg.Equal(before) {
			t.Fatalf("Flash frame %d changed the buffer", i)
		}
		if !n.Flash(i) && bg.Equal(before) {
			t.Fatalf("Noise frame %d left the buffer untouched", i)
		}
	}
	if n.Finished() {
		t.Fatal("Finished before the snap step")
	}
	n.NextStep(bg)
	if !n.Finished() {
		t.Error("Expected finish after all noise frames")
	}
}

func TestFactoryDeterministic(t *testing.T) {
	describeN := func() []string {
		f := NewFactory(vmath.NewRand(77), testW, testH, testFPS, nil)
		var out []string
		for i := 0; i < 20; i++ {
			out = append(out, f.Create(render.RGBBlack).String())
		}
		return out
	}
	a, b := describeN(), describeN()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Change %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestFactoryWeights(t *testing.T) {
	weights := make([]float64, 7)
	weights[KindCurtain] = 1
	f := NewFactory(vmath.NewRand(1), testW, testH, testFPS, weights)
	for i := 0; i < 10; i++ {
		if k := f.Create(render.RGBBlack).Kind(); k != KindCurtain {
			t.Fatalf("Created %v with curtain-only weights", k)
		}
	}
}

func TestUnknownKindViolates(t *testing.T) {
	defer func() {
		if _, ok := core.AsViolation(recover()); !ok {
			t.Error("Expected contract violation")
		}
	}()
	NewFactory(vmath.NewRand(1), testW, testH, testFPS, nil).CreateKind(Kind(99), render.RGBBlack)
}
