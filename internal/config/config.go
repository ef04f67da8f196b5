package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/iburimskiy/screensaver/internal/effect"
	"github.com/iburimskiy/screensaver/internal/scheduler"
)

const (
	DisplayWidth  = 320
	DisplayHeight = 240

	// Window is the native display scaled up for desktop monitors
	WindowScale = 3

	// Rotation and pacing
	DefaultAutoAdvance = 10 * time.Second
	DefaultTargetFPS   = 15
	DefaultDebounce    = 500 * time.Millisecond

	// Transition chime
	DefaultChimeVolume    = -1.5
	DefaultChimeFrequency = 523.25

	DefaultRecordFrames = 300

	BackendWindow   = "window"
	BackendTerminal = "terminal"
	BackendGIF      = "gif"
)

type Chime struct {
	Enabled   bool    `yaml:"enabled"`
	Volume    float64 `yaml:"volume"`
	Frequency float64 `yaml:"frequency"`
}

type Record struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
}

// Config is the on-disk configuration. Durations are kept in seconds so
// the file stays readable.
type Config struct {
	Effects              []string `yaml:"effects"`
	AutoAdvanceSeconds   float64  `yaml:"auto_advance_seconds"`
	TargetFPS            float64  `yaml:"target_fps"`
	TouchDebounceSeconds float64  `yaml:"touch_debounce_seconds"`
	Seed                 int64    `yaml:"seed"`
	Iterations           int      `yaml:"iterations"`
	Backend              string   `yaml:"backend"`
	Overlay              bool     `yaml:"overlay"`
	Chime                Chime    `yaml:"chime"`
	Record               Record   `yaml:"record"`
}

func Default() Config {
	names := make([]string, 0, len(effect.All()))
	for _, id := range effect.All() {
		names = append(names, id.String())
	}
	return Config{
		Effects:              names,
		AutoAdvanceSeconds:   DefaultAutoAdvance.Seconds(),
		TargetFPS:            DefaultTargetFPS,
		TouchDebounceSeconds: DefaultDebounce.Seconds(),
		Seed:                 1,
		Backend:              BackendWindow,
		Chime:                Chime{Volume: DefaultChimeVolume, Frequency: DefaultChimeFrequency},
		Record:               Record{Path: "screensaver.gif", Frames: DefaultRecordFrames},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Parse(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return errors.Wrap(err, "decode yaml")
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := c.EffectIDs(); err != nil {
		return err
	}
	if c.AutoAdvanceSeconds <= 0 {
		return errors.Errorf("auto_advance_seconds must be positive, got %v", c.AutoAdvanceSeconds)
	}
	if c.TargetFPS <= 0 {
		return errors.Errorf("target_fps must be positive, got %v", c.TargetFPS)
	}
	if c.TouchDebounceSeconds < 0 {
		return errors.Errorf("touch_debounce_seconds must not be negative, got %v", c.TouchDebounceSeconds)
	}
	if c.Iterations < 0 {
		return errors.Errorf("iterations must not be negative, got %d", c.Iterations)
	}
	switch c.Backend {
	case BackendWindow, BackendTerminal, BackendGIF:
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if c.Backend == BackendGIF {
		if c.Record.Path == "" {
			return errors.New("record.path is required for the gif backend")
		}
		if c.Record.Frames <= 0 {
			return errors.Errorf("record.frames must be positive, got %d", c.Record.Frames)
		}
	}
	if c.Chime.Frequency < 0 {
		return errors.Errorf("chime.frequency must not be negative, got %v", c.Chime.Frequency)
	}
	return nil
}

// EffectIDs resolves the configured effect names in order.
func (c Config) EffectIDs() ([]effect.ID, error) {
	if len(c.Effects) == 0 {
		return nil, scheduler.ErrNoEffects
	}
	ids := make([]effect.ID, 0, len(c.Effects))
	for _, name := range c.Effects {
		id, err := effect.ParseID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SplitEffects parses a comma separated effect list as given on the
// command line.
func SplitEffects(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TargetFPS)
}

func (c Config) Scheduler() scheduler.Options {
	return scheduler.Options{
		AutoAdvance:   seconds(c.AutoAdvanceSeconds),
		FrameInterval: c.FrameInterval(),
		Debounce:      seconds(c.TouchDebounceSeconds),
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// Build constructs the configured effects. Each gets its own seed derived
// from the base seed and its position so repeated names still differ.
func (c Config) Build() ([]*effect.Effect, error) {
	ids, err := c.EffectIDs()
	if err != nil {
		return nil, err
	}
	list := make([]*effect.Effect, 0, len(ids))
	for i, id := range ids {
		e, err := effect.New(id, effect.WithSeed(c.Seed+int64(i)), effect.WithIterations(c.Iterations))
		if err != nil {
			return nil, errors.Wrapf(err, "effect %d", i)
		}
		list = append(list, e)
	}
	return list, nil
}
