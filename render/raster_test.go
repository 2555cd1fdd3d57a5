package render

import (
	"image"
	"testing"
)

func TestPainterFillRectInclusive(t *testing.T) {
	f := NewFrame(10, 10)
	p := NewPainter()
	c := RGB{1, 2, 3}

	p.FillRect(f, 5, 5, 2, 2, c)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x <= 5 && y >= 2 && y <= 5
			if got := f.At(x, y).Equal(c); got != inside {
				t.Fatalf("Pixel (%d,%d) painted=%v, want %v", x, y, got, inside)
			}
		}
	}
}

func TestPainterStrokeRectIsHollow(t *testing.T) {
	f := NewFrame(20, 20)
	p := NewPainter()
	c := RGB{200, 0, 0}

	p.StrokeRect(f, 4, 4, 15, 15, 1, c)

	if !f.At(4, 4).Equal(c) || !f.At(15, 10).Equal(c) {
		t.Error("Border pixels not painted")
	}
	if !f.At(10, 10).Equal(RGBBlack) {
		t.Error("Interior painted by outline")
	}
	if !f.At(3, 3).Equal(RGBBlack) {
		t.Error("Outline of thickness 1 bled outside")
	}
}

func TestPainterEllipses(t *testing.T) {
	tests := []struct {
		name       string
		draw       func(*Painter, *Frame, RGB)
		centreFull bool
	}{
		{
			name:       "Filled circle",
			draw:       func(p *Painter, f *Frame, c RGB) { p.FillEllipse(f, 20, 20, 10, 10, c) },
			centreFull: true,
		},
		{
			name:       "Filled ellipse",
			draw:       func(p *Painter, f *Frame, c RGB) { p.FillEllipse(f, 20, 20, 15, 6, c) },
			centreFull: true,
		},
		{
			name:       "Ring",
			draw:       func(p *Painter, f *Frame, c RGB) { p.StrokeEllipse(f, 20, 20, 10, 10, 3, c) },
			centreFull: false,
		},
	}

	c := RGB{0, 0, 255}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(40, 40)
			tt.draw(NewPainter(), f, c)

			if got := f.At(20, 20).Equal(c); got != tt.centreFull {
				t.Errorf("Centre painted=%v, want %v", got, tt.centreFull)
			}
			if !f.At(0, 0).Equal(RGBBlack) {
				t.Error("Corner should stay untouched")
			}
		})
	}
}

func TestPainterRingTouchesRadius(t *testing.T) {
	f := NewFrame(40, 40)
	c := RGB{9, 9, 9}
	NewPainter().StrokeEllipse(f, 20, 20, 10, 10, 3, c)
	if !f.At(30, 20).Equal(c) {
		t.Errorf("Expected ring pixel on the radius, got %v", f.At(30, 20))
	}
}

func TestPainterPolygon(t *testing.T) {
	f := NewFrame(30, 30)
	c := RGB{10, 200, 10}
	pts := []image.Point{{2, 2}, {27, 2}, {27, 27}, {2, 27}}

	NewPainter().FillPolygon(f, pts, c)

	if !f.At(15, 15).Equal(c) {
		t.Error("Polygon interior not painted")
	}
	if !f.At(0, 0).Equal(RGBBlack) {
		t.Error("Outside of polygon painted")
	}
}

func TestPainterOffCanvas(t *testing.T) {
	f := NewFrame(10, 10)
	p := NewPainter()
	c := RGB{1, 1, 1}

	// Shapes entirely outside must be no-ops
	p.FillEllipse(f, -100, -100, 5, 5, c)
	p.StrokeRect(f, 50, 50, 60, 60, 3, c)
	p.FillPolygon(f, []image.Point{{-50, -50}, {-40, -50}, {-40, -40}}, c)
	if !f.Equal(NewFrame(10, 10)) {
		t.Error("Off-canvas shapes painted pixels")
	}

	// Partially visible shape is clipped, not dropped
	p.FillEllipse(f, 0, 0, 4, 4, c)
	if !f.At(0, 0).Equal(c) {
		t.Error("Clipped circle missing its visible part")
	}
}

func TestPainterReuseAcrossSizes(t *testing.T) {
	f := NewFrame(64, 64)
	p := NewPainter()
	c := RGB{7, 7, 7}
	p.FillEllipse(f, 32, 32, 30, 30, c)
	p.FillEllipse(f, 5, 5, 2, 2, RGBWhite)
	if !f.At(5, 5).Equal(RGBWhite) {
		t.Error("Second shape on a smaller rasterizer not painted")
	}
	if !f.At(32, 32).Equal(c) {
		t.Error("First shape lost")
	}
}
