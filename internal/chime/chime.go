// Package chime plays a short tone whenever the screensaver switches
// effects. The pitch climbs a semitone per position in the rotation.
package chime

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/effect"
)

var logger = log.New("chime")

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 180 * time.Millisecond
	amplitude  = 0.5
)

// Player is something that can queue a stream for playback.
type Player func(s ...beep.Streamer)

type Chime struct {
	play      Player
	volume    float64
	frequency float64
}

// Open initialises the speaker and returns a chime playing through it.
func Open(volume, frequency float64) (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	return New(speaker.Play, volume, frequency), nil
}

// New builds a chime on top of any player. volume is in beep's
// logarithmic base-2 scale.
func New(play Player, volume, frequency float64) *Chime {
	return &Chime{play: play, volume: volume, frequency: frequency}
}

// EffectSwitched implements pump.SwitchListener.
func (c *Chime) EffectSwitched(index int, id effect.ID) {
	freq := c.frequency * math.Pow(2, float64(index%12)/12)
	logger.Debug("chime", "effect", id.String(), "frequency", freq)
	c.play(&effects.Volume{
		Streamer: Tone(sampleRate, freq, toneLength),
		Base:     2,
		Volume:   c.volume,
	})
}

// Tone is a sine wave with a linear fade out, d long.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	step := 2 * math.Pi * freq / float64(sr)
	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := 1 - float64(pos)/float64(total)
			if env < 0 {
				env = 0
			}
			v := amplitude * env * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	}))
}
