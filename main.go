package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	log "github.com/mgutz/logxi/v1"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/chime"
	"github.com/iburimskiy/screensaver/internal/config"
	"github.com/iburimskiy/screensaver/internal/effect"
	"github.com/iburimskiy/screensaver/internal/game"
	"github.com/iburimskiy/screensaver/internal/pump"
	"github.com/iburimskiy/screensaver/internal/record"
	"github.com/iburimskiy/screensaver/internal/scheduler"
	"github.com/iburimskiy/screensaver/internal/terminal"
)

const windowTitle = "Screensaver - Click/Space: next effect, H: overlay, Esc/Q: quit"

var (
	logger = log.New("screensaver")

	configPath  = flag.String("config", "", "YAML configuration file")
	pickConfig  = flag.Bool("pick-config", false, "choose the configuration file in a dialog")
	backend     = flag.String("backend", config.BackendWindow, "display backend: window, terminal or gif")
	effectList  = flag.String("effects", "", "comma separated effect rotation (default all effects)")
	autoAdvance = flag.Duration("auto-advance", config.DefaultAutoAdvance, "how long each effect stays on screen")
	fps         = flag.Float64("fps", config.DefaultTargetFPS, "target frames per second")
	debounce    = flag.Duration("debounce", config.DefaultDebounce, "minimum gap between accepted touches")
	seed        = flag.Int64("seed", 1, "seed for the effects' random streams")
	iterations  = flag.Int("iterations", 0, "escape time cutoff for the fractals, 0 keeps each fractal's default")
	out         = flag.String("out", "", "output file for the gif backend")
	frames      = flag.Int("frames", config.DefaultRecordFrames, "number of frames recorded by the gif backend")
	chimeOn     = flag.Bool("chime", false, "play a short tone on every effect switch")
	overlay     = flag.Bool("overlay", false, "show the effect name and rotation progress in the window")
	list        = flag.Bool("list", false, "print the available effects and exit")
	verbose     = flag.Bool("v", false, "enable debug logging")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Rotates through animated effects on a 320x240 display, in a window, a terminal or a GIF.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options given on the command line override the configuration file.")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {
	flag.Parse()
	if *verbose {
		logger.SetLevel(log.LevelDebug)
	}

	if *list {
		for _, id := range effect.All() {
			fmt.Println(id)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail(*backend, err)
	}
	if err := run(cfg); err != nil {
		fail(cfg.Backend, err)
	}
}

func fail(backend string, err error) {
	logger.Error("screensaver failed", "err", err)
	if backend == config.BackendWindow {
		_ = zenity.Error(err.Error(), zenity.Title("Screensaver"))
	}
	os.Exit(1)
}

func loadConfig() (config.Config, error) {
	file := *configPath
	if *pickConfig {
		picked, err := zenity.SelectFile(
			zenity.Title("Open Screensaver Configuration"),
			zenity.FileFilters{{
				Name:     "YAML",
				Patterns: []string{"*.yaml", "*.yml"},
			}},
		)
		switch {
		case errors.Is(err, zenity.ErrCanceled):
			logger.Info("no configuration picked, using defaults")
		case err != nil:
			return config.Config{}, errors.Wrap(err, "pick configuration")
		default:
			file = picked
		}
	}

	cfg := config.Default()
	if file != "" {
		loaded, err := config.Load(file)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		logger.Info("configuration loaded", "path", file)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "effects":
			cfg.Effects = config.SplitEffects(*effectList)
		case "auto-advance":
			cfg.AutoAdvanceSeconds = autoAdvance.Seconds()
		case "fps":
			cfg.TargetFPS = *fps
		case "debounce":
			cfg.TouchDebounceSeconds = debounce.Seconds()
		case "seed":
			cfg.Seed = *seed
		case "iterations":
			cfg.Iterations = *iterations
		case "out":
			cfg.Record.Path = *out
		case "frames":
			cfg.Record.Frames = *frames
		case "chime":
			cfg.Chime.Enabled = *chimeOn
		case "overlay":
			cfg.Overlay = *overlay
		}
	})
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	effects, err := cfg.Build()
	if err != nil {
		return err
	}
	sched, err := scheduler.New(effects, cfg.Scheduler())
	if err != nil {
		return err
	}
	logger.Info("starting", "backend", cfg.Backend, "effects", len(effects), "fps", cfg.TargetFPS)

	switch cfg.Backend {
	case config.BackendTerminal:
		return runTerminal(cfg, sched)
	case config.BackendGIF:
		return runRecord(cfg, sched)
	default:
		return runWindow(cfg, sched)
	}
}

func addChime(cfg config.Config, p *pump.Pump) {
	if !cfg.Chime.Enabled {
		return
	}
	c, err := chime.Open(cfg.Chime.Volume, cfg.Chime.Frequency)
	if err != nil {
		logger.Warn("chime disabled", "err", err)
		return
	}
	p.AddListener(c)
}

func runWindow(cfg config.Config, sched *scheduler.Scheduler) error {
	g := game.New(cfg.Overlay)
	p := pump.New(sched, g, g, nil, 0)
	g.Attach(p)
	addChime(cfg, p)
	return game.Run(g, windowTitle)
}

func runTerminal(cfg config.Config, sched *scheduler.Scheduler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := terminal.Open()
	if err != nil {
		return err
	}
	defer term.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go term.Listen(ctx, cancel)

	p := pump.New(sched, term, term, nil, cfg.FrameInterval()/4)
	addChime(cfg, p)
	return p.Run(ctx)
}

// runRecord renders on a stepped clock, one frame interval per step, so
// the output only depends on the configuration.
func runRecord(cfg config.Config, sched *scheduler.Scheduler) error {
	rec := record.New(config.DisplayWidth, config.DisplayHeight, cfg.Record.Frames, cfg.FrameInterval())
	p := pump.New(sched, rec, nil, &pump.StepClock{Step: cfg.FrameInterval()}, 0)
	if err := p.Run(context.Background()); errors.Cause(err) != record.ErrFull {
		return err
	}
	return rec.Save(cfg.Record.Path)
}
