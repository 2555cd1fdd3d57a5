package effect

import (
	"fmt"

	"github.com/lixenwraith/taor/parameter"
	"github.com/lixenwraith/taor/render"
)

// boomerang records length frames, then plays them back and forth until the
// replay has reached an end BoomerangBounces times, and starts recording again
type boomerang struct {
	length    int
	buffer    []*render.Frame
	index     int
	increment int
	bounces   int
}

func (b *boomerang) init(length int) {
	b.length = max(length, parameter.BoomerangMinLength)
	b.buffer = make([]*render.Frame, 0, b.length)
	b.increment = 1
	b.index = b.length - 1
}

func (b *boomerang) reset() {
	b.buffer = b.buffer[:0]
	b.bounces = 0
	b.index = b.length - 1
}

func (b *boomerang) process(img *render.Frame, _ int) *render.Frame {
	if len(b.buffer) < b.length {
		b.buffer = append(b.buffer, img.Clone())
		return img
	}
	if b.bounces >= parameter.BoomerangBounces {
		b.reset()
		return img
	}

	out := b.buffer[b.index].Clone()
	if b.index == 0 {
		b.increment = 1
		b.bounces++
	}
	if b.index == b.length-1 {
		b.increment = -1
		b.bounces++
	}
	b.index += b.increment
	return out
}

func (b *boomerang) describe(e *Effect) string {
	return fmt.Sprintf("Boomerang for %d seconds with effect length %d for %d times",
		e.seconds(), b.length, e.frames/(b.length*2))
}
