package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/taor/audio"
	"github.com/lixenwraith/taor/config"
	"github.com/lixenwraith/taor/engine"
	"github.com/lixenwraith/taor/sink"
	"github.com/lixenwraith/taor/status"
	"github.com/lixenwraith/taor/vmath"
)

const progressInterval = time.Second

// job is one video of a batch
type job struct {
	path   string
	seed   uint64
	frames int
	debug  bool
}

// runVideo renders one video, printing the banner and timeline to out
func runVideo(cfg config.Config, j job, out io.Writer) error {
	runID := uuid.NewString()

	fmt.Fprintln(out, "Creating Video")
	fmt.Fprintf(out, "  - file_name: %s\n", j.path)
	fmt.Fprintf(out, "  - img_width: %d\n", cfg.Width)
	fmt.Fprintf(out, "  - img_height: %d\n", cfg.Height)
	fmt.Fprintf(out, "  - total_frames: %d\n", j.frames)
	fmt.Fprintf(out, "  - seed: %d\n", j.seed)
	fmt.Fprintf(out, "  - generators_quantity: %d\n", cfg.Generators)
	fmt.Fprintf(out, "  - run_id: %s\n", runID)
	log.Printf("[%s] creating %s seed=%d frames=%d", runID, j.path, j.seed, j.frames)

	// The preview owns the terminal, so the timeline is held back until it is released
	timelineOut := out
	var held bytes.Buffer
	if cfg.Preview {
		timelineOut = &held
	}

	observers := []engine.Observer{engine.NewTimeline(timelineOut, cfg.FPS)}
	var track *audio.CueTrack
	if cfg.Soundtrack {
		track = audio.NewCueTrack(cfg.FPS, j.seed)
		observers = append(observers, track)
	}

	reg := status.NewRegistry()
	sim := engine.New(cfg, vmath.NewRand(j.seed), engine.Options{
		Name:      j.path,
		RunID:     runID,
		Observers: observers,
		Status:    reg,
	})

	fmt.Fprintln(out, "Created the following Generator(s):")
	for _, g := range sim.Generators() {
		fmt.Fprintln(out, g.Kind())
		if j.debug {
			fmt.Fprintln(out, g)
		}
	}
	if j.debug {
		st := sim.Settings()
		fmt.Fprintf(out, "max_repeated_frames = %d\n", st.MaxRepeated)
		fmt.Fprintln(out, "Global Movement")
		fmt.Fprintf(out, "  movement_x = %d\n", st.MoveX)
		fmt.Fprintf(out, "  movement_y = %d\n", st.MoveY)
		fmt.Fprintf(out, "  move_every_n_frames = %d\n", st.MoveEvery)
	}

	dst, err := openSinks(cfg, j.path, reg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	if j.debug {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reportProgress(ctx, reg, runID)
		}()
	}

	runErr := sim.Run(j.frames, dst)
	cancel()
	wg.Wait()

	if err := dst.Release(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to finalize video: %w", err))
	}
	if cfg.Preview {
		runErr = flushTimeline(out, &held, runErr)
	}
	if runErr != nil {
		return runErr
	}

	if track != nil {
		wav := soundtrackPath(j.path)
		if err := track.Save(wav); err != nil {
			return err
		}
		fmt.Fprintf(out, "Soundtrack saved to %s\n", wav)
	}

	if j.debug {
		fmt.Fprintf(out, "recycled_frames %d\n", sim.Recycled())
	}
	log.Printf("[%s] done: %s", runID, strings.Join(reg.Report(), " "))
	return nil
}

// flushTimeline prints the timeline held back during preview, joining a write
// failure to err
func flushTimeline(out io.Writer, held *bytes.Buffer, err error) error {
	if _, cerr := io.Copy(out, held); cerr != nil {
		err = errors.Join(err, fmt.Errorf("failed to print timeline: %w", cerr))
	}
	return err
}

// openSinks opens the video file and, when enabled, the terminal preview
func openSinks(cfg config.Config, path string, reg *status.Registry) (sink.Sink, error) {
	video, err := sink.Open(path, cfg.FPS, cfg.Width, cfg.Height, cfg.JPEGQuality)
	if err != nil {
		return nil, err
	}
	if !cfg.Preview {
		return video, nil
	}

	preview, err := sink.OpenPreview(cfg.PreviewEvery, reg)
	if err != nil {
		video.Release()
		return nil, err
	}
	return sink.Multi(video, preview), nil
}

// reportProgress logs the status registry until ctx is done
func reportProgress(ctx context.Context, reg *status.Registry, runID string) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Printf("[%s] %s", runID, strings.Join(reg.Report(), " "))
		}
	}
}
