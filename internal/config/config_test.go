package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/effect"
	"github.com/iburimskiy/screensaver/internal/scheduler"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	ids, err := cfg.EffectIDs()
	if err != nil {
		t.Fatalf("EffectIDs: %v", err)
	}
	if len(ids) != len(effect.All()) || ids[0] != effect.Plasma {
		t.Fatalf("expected every effect in order, got %v", ids)
	}
	opts := cfg.Scheduler()
	if opts.AutoAdvance != DefaultAutoAdvance || opts.Debounce != DefaultDebounce {
		t.Fatalf("unexpected scheduler options %+v", opts)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg := Default()
	data := []byte(`
effects: [fire, Matrix, julia]
auto_advance_seconds: 30
target_fps: 10
touch_debounce_seconds: 0.25
seed: 99
backend: terminal
chime:
  enabled: true
`)
	if err := Parse(data, &cfg); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ids, _ := cfg.EffectIDs()
	want := []effect.ID{effect.Fire, effect.Matrix, effect.Julia}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("effect %d: expected %v, got %v", i, want[i], ids[i])
		}
	}
	opts := cfg.Scheduler()
	if opts.AutoAdvance != 30*time.Second || opts.FrameInterval != 100*time.Millisecond || opts.Debounce != 250*time.Millisecond {
		t.Fatalf("unexpected scheduler options %+v", opts)
	}
	if !cfg.Chime.Enabled || cfg.Chime.Frequency != DefaultChimeFrequency {
		t.Fatalf("expected nested defaults kept, got %+v", cfg.Chime)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "colour: red", "field colour not found"},
		{"unknown effect", "effects: [lava]", "unknown effect"},
		{"no effects", "effects: []", scheduler.ErrNoEffects.Error()},
		{"zero fps", "target_fps: 0", "target_fps"},
		{"negative debounce", "touch_debounce_seconds: -1", "touch_debounce_seconds"},
		{"zero auto advance", "auto_advance_seconds: 0", "auto_advance_seconds"},
		{"backend", "backend: vga", "unknown backend"},
		{"gif frames", "backend: gif\nrecord: {path: out.gif, frames: 0}", "record.frames"},
	}
	for _, tt := range tests {
		cfg := Default()
		err := Parse([]byte(tt.yaml), &cfg)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screensaver.yaml")
	if err := os.WriteFile(path, []byte("effects: [starfield]\nseed: 5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Effects) != 1 || cfg.Seed != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestBuildSeedsEachEffect(t *testing.T) {
	cfg := Default()
	cfg.Effects = []string{"fire", "fire"}
	list, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, e := range list {
		for f := 0; f < 5; f++ {
			e.AdvanceOneFrame()
		}
	}
	if string(list[0].Buffer().Pix) == string(list[1].Buffer().Pix) {
		t.Fatalf("expected distinct seeds for repeated effects")
	}
}

func TestSplitEffects(t *testing.T) {
	got := SplitEffects(" plasma, ,fire,")
	if len(got) != 2 || got[0] != "plasma" || got[1] != "fire" {
		t.Fatalf("unexpected split %q", got)
	}
}
