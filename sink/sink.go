// Package sink delivers finished frames to a video file, the terminal or memory
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/taor/render"
)

// Sink receives frames in tick order
// Write must not retain the frame after returning
type Sink interface {
	Write(f *render.Frame) error
	Release() error
}

// Open creates the MJPEG AVI file at path, creating parent directories
func Open(path string, fps, width, height, quality int) (Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create video file %s: %w", path, err)
	}
	w, err := NewAVIWriter(file, fps, width, height, quality)
	if err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

// multi writes to every sink in order
type multi []Sink

// Multi fans frames out to several sinks; a write error stops the fan-out
func Multi(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return multi(sinks)
}

func (m multi) Write(f *render.Frame) error {
	for _, s := range m {
		if err := s.Write(f); err != nil {
			return err
		}
	}
	return nil
}

// Release releases every sink and joins their errors
func (m multi) Release() error {
	var errs []error
	for _, s := range m {
		if err := s.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Memory keeps a copy of every frame
type Memory struct {
	Frames   []*render.Frame
	Released bool
}

func (m *Memory) Write(f *render.Frame) error {
	m.Frames = append(m.Frames, f.Clone())
	return nil
}

func (m *Memory) Release() error {
	m.Released = true
	return nil
}
