package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/taor/config"
	"github.com/lixenwraith/taor/core"
	"github.com/lixenwraith/taor/parameter"
)

// options are the parsed command line
type options struct {
	seed       uint64
	seeded     bool
	imagePath  string
	debug      bool
	quantity   int
	frames     int
	configPath string
	preview    bool
	soundtrack bool
	generators int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("taor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Create random videos. --seed gives reproducible results; the video is named after")
		fmt.Fprintln(stderr, "the current epoch time unless --image_path is given.")
		fs.PrintDefaults()
	}

	const (
		seedUsage     = "seed of the random stream; incremented for each following video"
		pathUsage     = "base name of the video file (default ./results/<epoch>)"
		debugUsage    = "print generator parameters and write logs/taor.log"
		quantityUsage = "number of videos to generate"
		framesUsage   = "number of frames per video"
	)
	fs.Uint64Var(&o.seed, "seed", 0, seedUsage)
	fs.Uint64Var(&o.seed, "s", 0, seedUsage)
	fs.StringVar(&o.imagePath, "image_path", "", pathUsage)
	fs.StringVar(&o.imagePath, "i", "", pathUsage)
	fs.BoolVar(&o.debug, "debug", false, debugUsage)
	fs.BoolVar(&o.debug, "d", false, debugUsage)
	fs.IntVar(&o.quantity, "quantity", 1, quantityUsage)
	fs.IntVar(&o.quantity, "q", 1, quantityUsage)
	fs.IntVar(&o.frames, "frames", parameter.DefaultFrames, framesUsage)
	fs.IntVar(&o.frames, "f", parameter.DefaultFrames, framesUsage)
	fs.StringVar(&o.configPath, "config", "", "YAML file overriding the engine defaults")
	fs.BoolVar(&o.preview, "preview", false, "mirror frames into the terminal while rendering")
	fs.BoolVar(&o.soundtrack, "soundtrack", false, "write a WAV cue track next to each video")
	fs.IntVar(&o.generators, "generators", 0, "number of generators (default from config)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" || f.Name == "s" {
			o.seeded = true
		}
	})

	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.quantity < 1 {
		return o, fmt.Errorf("quantity must be at least 1, got %d", o.quantity)
	}
	if o.frames < 1 {
		return o, fmt.Errorf("frames must be at least 1, got %d", o.frames)
	}
	return o, nil
}

// loadConfig applies the config file and the flag overrides
func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.generators > 0 {
		cfg.Generators = o.generators
	}
	cfg.Preview = cfg.Preview || o.preview
	cfg.Soundtrack = cfg.Soundtrack || o.soundtrack
	return cfg, cfg.Validate()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Restore the terminal and print the stack on contract violations
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if logFile := setupLogging(o.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 2
	}

	for i := range o.quantity {
		seed := o.seed + uint64(i)
		if !o.seeded {
			seed = uint64(time.Now().UnixNano())
		}
		j := job{
			path:   outputPath(o.imagePath, time.Now(), o.seeded, seed, o.quantity, i),
			seed:   seed,
			frames: o.frames,
			debug:  o.debug,
		}
		if err := runVideo(cfg, j, stdout); err != nil {
			fmt.Fprintf(stderr, "Failed to create %s: %v\n", j.path, err)
			return 1
		}
	}
	return 0
}
