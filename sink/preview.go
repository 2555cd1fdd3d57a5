package sink

import (
	"fmt"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/render"
	"github.com/lixenwraith/taor/status"
)

// upperHalf packs two vertical pixels per cell: foreground on top, background below
const upperHalf = '▀'

// Preview mirrors every Nth frame into the terminal, scaled to fit above a
// one-row status line
type Preview struct {
	screen  tcell.Screen
	every   int
	n       int
	stats   *status.Registry
	release func()
}

// OpenPreview takes over the terminal until Release
func OpenPreview(every int, stats *status.Registry) (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create preview screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize preview screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	p := NewPreview(screen, every, stats)
	p.release = core.OnCrash(screen.Fini)
	return p, nil
}

// NewPreview wraps an initialized screen
func NewPreview(screen tcell.Screen, every int, stats *status.Registry) *Preview {
	return &Preview{screen: screen, every: max(every, 1), stats: stats}
}

func (p *Preview) Write(f *render.Frame) error {
	p.n++
	if (p.n-1)%p.every != 0 {
		return nil
	}

	cols, rows := p.screen.Size()
	rows-- // status line
	if cols < 1 || rows < 1 {
		return nil
	}

	w, h := fit(f.Width(), f.Height(), cols, rows*2)
	img := transform.Resize(f.Image(), w, h, transform.NearestNeighbor)

	for y := 0; y < (h+1)/2; y++ {
		for x := 0; x < w; x++ {
			top := img.RGBAAt(x, 2*y)
			bottom := top
			if 2*y+1 < h {
				bottom = img.RGBAAt(x, 2*y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			p.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}

	if p.stats != nil {
		line := []rune(strings.Join(p.stats.Report(), "  "))
		for x := 0; x < cols; x++ {
			r := ' '
			if x < len(line) {
				r = line[x]
			}
			p.screen.SetContent(x, rows, r, nil, tcell.StyleDefault)
		}
	}

	p.screen.Show()
	return nil
}

// Shown is the number of frames drawn so far
func (p *Preview) Shown() int {
	return (p.n + p.every - 1) / p.every
}

// Release restores the terminal
func (p *Preview) Release() error {
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.screen.Fini()
	return nil
}

// fit scales w x h into maxW x maxH keeping the aspect ratio
func fit(w, h, maxW, maxH int) (int, int) {
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}
