// Package record captures presented frames into an animated GIF.
package record

import (
	"image"
	"image/gif"
	"io"
	"os"
	"time"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/iburimskiy/screensaver/internal/pump"
)

var logger = log.New("record")

// ErrFull is returned by Present once the frame limit was reached. Run
// loops treat it as the end of the recording.
var ErrFull = errors.New("recording complete")

// Recorder is a pump surface that collects frames at the native display
// size. Each frame keeps the effect's own palette.
type Recorder struct {
	width, height int
	limit         int
	delay         int
	anim          gif.GIF
}

// New records at most limit frames of width x height pixels, each
// shown for interval.
func New(width, height, limit int, interval time.Duration) *Recorder {
	delay := int(interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	return &Recorder{width: width, height: height, limit: limit, delay: delay}
}

func (r *Recorder) Frames() int { return len(r.anim.Image) }

func (r *Recorder) Present(f pump.Frame) error {
	if len(r.anim.Image) >= r.limit {
		return ErrFull
	}
	src := f.Buffer.Paletted(f.Palette)
	dst := image.NewPaletted(image.Rect(0, 0, r.width, r.height), src.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	r.anim.Image = append(r.anim.Image, dst)
	r.anim.Delay = append(r.anim.Delay, r.delay)
	if len(r.anim.Image) == r.limit {
		return ErrFull
	}
	return nil
}

func (r *Recorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return errors.New("no frames recorded")
	}
	return errors.Wrap(gif.EncodeAll(w, &r.anim), "encode gif")
}

// Save writes the recording to path.
func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create recording")
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close recording")
	}
	logger.Info("recording saved", "path", path, "frames", len(r.anim.Image))
	return nil
}
