package sink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/status"
)

func solid(w, h int, c render.RGB) *render.Frame {
	f := render.NewFrame(w, h)
	f.Fill(c)
	return f
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -8 && d <= 8
}

// chunk is one parsed movi chunk
type chunk struct {
	offset int // relative to the movi fourcc
	data   []byte
}

func u32(b []byte, at int) uint32 { return binary.LittleEndian.Uint32(b[at:]) }

func TestAVIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")
	s, err := Open(path, 24, 32, 16, 90)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	colors := []render.RGB{{R: 200, G: 10, B: 10}, {R: 10, G: 200, B: 10}, {R: 10, G: 10, B: 200}}
	for _, c := range colors {
		if err := s.Write(solid(32, 16, c)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := s.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("Missing RIFF AVI signature")
	}
	if got := int(u32(data, 4)); got != len(data)-8 {
		t.Errorf("RIFF size %d, want %d", got, len(data)-8)
	}
	if string(data[24:28]) != "avih" || string(data[100:104]) != "strh" || string(data[164:168]) != "strf" {
		t.Fatal("Header chunks out of place")
	}
	if got := u32(data, 32); got != 1_000_000/24 {
		t.Errorf("Microseconds per frame %d", got)
	}
	if got := u32(data, 48); got != 3 {
		t.Errorf("avih total frames %d, want 3", got)
	}
	if w, h := u32(data, 64), u32(data, 68); w != 32 || h != 16 {
		t.Errorf("avih size %dx%d", w, h)
	}
	if string(data[108:112]) != "vids" || string(data[112:116]) != "MJPG" {
		t.Error("Stream is not MJPEG video")
	}
	if rate, length := u32(data, 132), u32(data, 140); rate != 24 || length != 3 {
		t.Errorf("strh rate %d length %d", rate, length)
	}
	if string(data[220:224]) != "movi" {
		t.Fatal("movi list not at the end of the header")
	}

	moviEnd := 220 + int(u32(data, 216))
	var chunks []chunk
	for pos := 224; pos < moviEnd; {
		if string(data[pos:pos+4]) != "00dc" {
			t.Fatalf("Unexpected chunk %q at %d", data[pos:pos+4], pos)
		}
		size := int(u32(data, pos+4))
		chunks = append(chunks, chunk{offset: pos - 220, data: data[pos+8 : pos+8+size]})
		pos += 8 + size + size&1
	}
	if len(chunks) != len(colors) {
		t.Fatalf("Found %d frames, want %d", len(chunks), len(colors))
	}

	for i, c := range chunks {
		img, err := jpeg.Decode(bytes.NewReader(c.data))
		if err != nil {
			t.Fatalf("Frame %d is not a JPEG: %v", i, err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
			t.Fatalf("Frame %d is %v", i, b)
		}
		r, g, bl, _ := img.At(16, 8).RGBA()
		want := colors[i]
		if !near(uint8(r>>8), want.R) || !near(uint8(g>>8), want.G) || !near(uint8(bl>>8), want.B) {
			t.Errorf("Frame %d center (%d,%d,%d), want %v", i, r>>8, g>>8, bl>>8, want)
		}
	}

	idx := moviEnd
	if string(data[idx:idx+4]) != "idx1" || int(u32(data, idx+4)) != 16*len(chunks) {
		t.Fatal("Index missing or wrong size")
	}
	for i, c := range chunks {
		e := idx + 8 + 16*i
		if string(data[e:e+4]) != "00dc" || u32(data, e+4) != indexKeyFrame {
			t.Errorf("Index entry %d malformed", i)
		}
		if int(u32(data, e+8)) != c.offset || int(u32(data, e+12)) != len(c.data) {
			t.Errorf("Index entry %d points to %d/%d, want %d/%d",
				i, u32(data, e+8), u32(data, e+12), c.offset, len(c.data))
		}
	}
}

func TestAVIRejectsWrongSize(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "v.avi"), 24, 16, 16, 90)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()
	if err := s.Write(solid(8, 8, render.RGBWhite)); err == nil {
		t.Error("Expected size mismatch error")
	}
}

func TestAVIWriteAfterRelease(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "v.avi"), 24, 8, 8, 90)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Release(); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(solid(8, 8, render.RGBWhite)); !errors.Is(err, errReleased) {
		t.Errorf("Write after release = %v", err)
	}
	if err := s.Release(); err != nil {
		t.Errorf("Second release = %v", err)
	}
}

func TestOpenCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "nested", "v.avi")
	s, err := Open(path, 24, 8, 8, 90)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Video not created: %v", err)
	}
}

// recordingSink counts calls and can fail
type recordingSink struct {
	writes, releases int
	err              error
}

func (r *recordingSink) Write(*render.Frame) error {
	r.writes++
	return r.err
}

func (r *recordingSink) Release() error {
	r.releases++
	return r.err
}

func TestMulti(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := Multi(a, b)
	for range 3 {
		if err := m.Write(solid(2, 2, render.RGBBlack)); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Release(); err != nil {
		t.Fatal(err)
	}
	if a.writes != 3 || b.writes != 3 || a.releases != 1 || b.releases != 1 {
		t.Errorf("Fan-out counts a=%+v b=%+v", a, b)
	}

	boom := errors.New("boom")
	bad, after := &recordingSink{err: boom}, &recordingSink{}
	m = Multi(bad, after)
	if err := m.Write(solid(2, 2, render.RGBBlack)); !errors.Is(err, boom) {
		t.Errorf("Write error = %v", err)
	}
	if after.writes != 0 {
		t.Error("Fan-out continued after a failing sink")
	}
	if err := m.Release(); !errors.Is(err, boom) || after.releases != 1 {
		t.Errorf("Release error = %v, later sink released %d times", err, after.releases)
	}

	if Multi(a) != Sink(a) {
		t.Error("Single sink should not be wrapped")
	}
}

func TestMemoryCopiesFrames(t *testing.T) {
	var m Memory
	f := solid(2, 2, render.RGBWhite)
	m.Write(f)
	f.Fill(render.RGBBlack)
	if m.Frames[0].At(0, 0) != render.RGBWhite {
		t.Error("Memory sink aliased the frame")
	}
	m.Release()
	if !m.Released {
		t.Error("Release not recorded")
	}
}

// MockScreen is a minimal tcell.Screen recording drawn cells
type MockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]tcell.Style
	runes         map[[2]int]rune
	shows         int
	finis         int
}

func newMockScreen(w, h int) *MockScreen {
	return &MockScreen{width: w, height: h, cells: map[[2]int]tcell.Style{}, runes: map[[2]int]rune{}}
}

func (m *MockScreen) Size() (int, int) { return m.width, m.height }
func (m *MockScreen) Show()            { m.shows++ }
func (m *MockScreen) Fini()            { m.finis++ }
func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = style
	m.runes[[2]int{x, y}] = mainc
}

func TestPreviewEveryN(t *testing.T) {
	screen := newMockScreen(20, 11)
	p := NewPreview(screen, 2, nil)
	for range 5 {
		p.Write(solid(40, 20, render.RGBWhite))
	}
	if screen.shows != 3 || p.Shown() != 3 {
		t.Errorf("Shown %d frames (screen %d), want 3", p.Shown(), screen.shows)
	}
	p.Release()
	if screen.finis != 1 {
		t.Error("Release did not restore the terminal")
	}
}

func TestPreviewHalfBlocks(t *testing.T) {
	// 4x4 frame, top half red and bottom half blue, on a 4x3 terminal
	f := solid(4, 4, render.RGB{R: 255})
	f.FillRect(image.Rect(0, 2, 4, 4), render.RGB{B: 255})

	reg := status.NewRegistry()
	reg.Counters.Get(status.Tick).Store(7)
	screen := newMockScreen(4, 3)
	p := NewPreview(screen, 1, reg)
	if err := p.Write(f); err != nil {
		t.Fatal(err)
	}

	fg, bg, _ := screen.cells[[2]int{0, 0}].Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Top cell fg %v bg %v, want red on red", fg, bg)
	}
	fg, bg, _ = screen.cells[[2]int{0, 1}].Decompose()
	if fg != tcell.NewRGBColor(0, 0, 255) || bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("Bottom cell fg %v bg %v, want blue on blue", fg, bg)
	}
	if screen.runes[[2]int{0, 0}] != upperHalf {
		t.Error("Cells not drawn with half blocks")
	}

	line := string([]rune{screen.runes[[2]int{0, 2}], screen.runes[[2]int{1, 2}]})
	if line != "ti" {
		t.Errorf("Status line starts with %q", line)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{1280, 720, 80, 46, 80, 45},
		{1280, 720, 200, 40, 71, 40},
		{10, 10, 4, 4, 4, 4},
		{1000, 1, 10, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fit(%d,%d,%d,%d) = %d,%d, want %d,%d",
				tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}
