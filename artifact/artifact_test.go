package artifact

import (
	"image"
	"strings"
	"testing"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/render"
)

func TestGeometryConstructors(t *testing.T) {
	e := NewEllipse(0, 0, 31, 10)
	if e.AxisX != 15 || e.AxisY != 5 {
		t.Errorf("Ellipse axes = (%d,%d), want (15,5)", e.AxisX, e.AxisY)
	}

	tests := []struct {
		size, radius int
	}{
		{10, 5},
		{5, 2}, // 2.5 rounds to even
		{7, 4}, // 3.5 rounds to even
		{31, 16},
	}
	for _, tt := range tests {
		if c := NewCircle(0, 0, tt.size); c.Radius != tt.radius {
			t.Errorf("Circle(%d) radius = %d, want %d", tt.size, c.Radius, tt.radius)
		}
	}
}

func TestWillPaint(t *testing.T) {
	const w, h = 100, 50
	tests := []struct {
		name string
		a    *Artifact
		want bool
	}{
		{"Rect inside", NewRectangle(10, 10, 5, 5), true},
		{"Rect left of canvas", NewRectangle(-20, 10, 10, 5), false},
		{"Rect touching left edge", NewRectangle(-10, 10, 10, 5), true},
		{"Rect at width", NewRectangle(100, 10, 5, 5), true},
		{"Rect past width", NewRectangle(101, 10, 5, 5), false},
		{"Circle above", NewCircle(50, -11, 20), false},
		{"Circle grazing top", NewCircle(50, -10, 20), true},
		{"Ellipse below", NewEllipse(50, 60, 10, 10), false},
		{"Ellipse reaching bottom", NewEllipse(50, 55, 10, 10), true},
		{"Polygon off right", NewPolygon([]image.Point{{120, 0}, {130, 0}, {125, 10}}), false},
		{"Polygon straddling", NewPolygon([]image.Point{{-10, -10}, {10, -10}, {0, 10}}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.WillPaint(w, h); got != tt.want {
				t.Errorf("WillPaint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickLifecycle(t *testing.T) {
	a := NewCircle(0, 0, 4)
	a.Lifespan = 3

	for i := 1; i <= 2; i++ {
		if a.Tick() {
			t.Fatalf("Died early at age %d", a.Age)
		}
	}
	if !a.Tick() {
		t.Fatal("Expected death when age reaches lifespan")
	}
	if !a.Dead || a.Age != 3 {
		t.Errorf("Expected dead at age 3, got dead=%v age=%d", a.Dead, a.Age)
	}
	if a.Tick() || a.Age != 3 {
		t.Error("Dead artifact kept aging")
	}
}

func TestMoveShiftsPolygonPoints(t *testing.T) {
	p := NewPolygon([]image.Point{{0, 0}, {10, 0}, {5, 5}})
	p.Move(2, -1)
	if p.X != 2 || p.Y != -1 || p.Points[2] != image.Pt(7, 4) {
		t.Errorf("Unexpected polygon after move: %v", p)
	}

	r := NewRectangle(1, 1, 2, 2)
	r.Move(-1, 3)
	if r.X != 0 || r.Y != 4 {
		t.Errorf("Rectangle origin = (%d,%d)", r.X, r.Y)
	}
}

func TestSetPointsMismatchViolates(t *testing.T) {
	p := NewPolygon([]image.Point{{0, 0}, {10, 0}, {5, 5}, {0, 5}})

	p.SetPoints([]image.Point{{1, 1}, {2, 2}, {3, 3}, {4, 4}})
	if p.X != 1 || p.Points[3] != image.Pt(4, 4) {
		t.Errorf("SetPoints did not apply: %v", p.Points)
	}

	defer func() {
		v, ok := core.AsViolation(recover())
		if !ok {
			t.Fatal("Expected contract violation")
		}
		if !strings.Contains(v.Detail, "mismatch") {
			t.Errorf("Unexpected detail %q", v.Detail)
		}
	}()
	p.SetPoints([]image.Point{{1, 1}, {2, 2}, {3, 3}})
}

func TestUnsupportedKindViolates(t *testing.T) {
	a := &Artifact{Kind: Kind(42)}
	defer func() {
		if _, ok := core.AsViolation(recover()); !ok {
			t.Error("Expected contract violation for unknown kind")
		}
	}()
	a.Draw(render.NewFrame(4, 4), render.NewPainter())
}

func TestDrawFillThenOutline(t *testing.T) {
	f := render.NewFrame(30, 30)
	fill, line := render.RGB{10, 10, 10}, render.RGB{250, 0, 0}

	NewRectangle(5, 5, 10, 10).Filled(fill).Outlined(line, 1).Draw(f, render.NewPainter())

	if got := f.At(10, 10); got != fill {
		t.Errorf("Interior = %v, want fill", got)
	}
	if got := f.At(5, 10); got != line {
		t.Errorf("Edge = %v, want outline", got)
	}
	if got := f.At(15, 15); got != line {
		t.Errorf("Far corner = %v, want outline (inclusive end)", got)
	}
}

func TestNilPaintDrawsNothing(t *testing.T) {
	f := render.NewFrame(20, 20)
	NewCircle(10, 10, 10).Draw(f, render.NewPainter())
	if !f.Equal(render.NewFrame(20, 20)) {
		t.Error("Artifact without paint changed the frame")
	}
}

func TestString(t *testing.T) {
	s := NewCircle(3, 4, 10).Filled(render.RGB{255, 0, 0}).String()
	if !strings.HasPrefix(s, "Circle. O:(3,4), R:5") || !strings.Contains(s, "#ff0000") {
		t.Errorf("Unexpected description %q", s)
	}
}
