package engine

import (
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/taor/schedule"
)

// EventKind tags timeline events
type EventKind uint8

const (
	EventStart EventKind = iota
	EventBackgroundStart
	EventBackgroundFinish
	EventEffectStart
	EventEffectFinish
	EventEnd
)

var eventNames = [...]string{"start", "bg.start", "bg.finish", "effect.start", "effect.finish", "end"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a timeline entry emitted by the simulation
type Event struct {
	Tick  int
	Kind  EventKind
	Label string
}

// Observer receives timeline events synchronously, in tick order
// Observers must not retain or mutate simulation state
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ev Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Timeline prints events as "H:MM:SS : label"
type Timeline struct {
	w   io.Writer
	fps int
}

// NewTimeline writes to w, converting ticks with fps
func NewTimeline(w io.Writer, fps int) *Timeline {
	return &Timeline{w: w, fps: fps}
}

func (t *Timeline) Observe(ev Event) {
	if ev.Kind == EventStart {
		fmt.Fprintln(t.w, "=== Timeline ===")
	}
	fmt.Fprintf(t.w, "%s : %s\n", schedule.Timestamp(ev.Tick, t.fps), ev.Label)
}

// logObserver mirrors events into the debug log
type logObserver struct {
	runID string
}

func (l logObserver) Observe(ev Event) {
	log.Printf("[%s] tick %d %v: %s", l.runID, ev.Tick, ev.Kind, ev.Label)
}
