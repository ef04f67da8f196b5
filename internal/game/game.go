// Package game shows the screensaver in a desktop window through ebiten.
package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/config"
	"github.com/iburimskiy/screensaver/internal/pump"
)

var logger = log.New("game")

const (
	displayWidth  = config.DisplayWidth
	displayHeight = config.DisplayHeight
)

// Game is both the ebiten game and the pump's surface and touch source.
// ebiten calls Update and Draw on one goroutine, so the pump runs there
// too.
type Game struct {
	pump *pump.Pump

	// latest presented frame
	frame  pump.Frame
	pixels []byte
	img    *ebiten.Image
	dirty  bool

	// overlay
	overlay     bool
	elapsed     time.Duration
	autoAdvance time.Duration
	colorPhase  float64

	// input
	touched  bool
	touchIDs []ebiten.TouchID
	prevKey  map[ebiten.Key]bool
}

func New(overlay bool) *Game {
	return &Game{
		overlay: overlay,
		prevKey: map[ebiten.Key]bool{},
	}
}

// Attach hands the game the pump it drives from Update.
func (g *Game) Attach(p *pump.Pump) {
	g.pump = p
	g.autoAdvance = p.Scheduler().AutoAdvance()
}

// Present keeps a copy of the frame for the next Draw.
func (g *Game) Present(f pump.Frame) error {
	g.frame = f
	g.pixels = f.Buffer.RGBA(f.Palette, g.pixels)
	g.dirty = true
	return nil
}

// Touched reports the input sampled at the start of the current Update.
func (g *Game) Touched() bool { return g.touched }

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyH) {
		g.overlay = !g.overlay
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	g.touched = len(g.touchIDs) > 0 ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsKeyPressed(ebiten.KeySpace)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		logger.Debug("click", "effect", g.frame.Effect)
	}

	if g.pump == nil {
		return nil
	}
	if _, err := g.pump.Step(); err != nil {
		return err
	}
	g.elapsed = g.pump.Scheduler().SinceTransition(g.pump.Now())
	g.colorPhase += 1.0 / 600
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame.Buffer == nil {
		return
	}
	w, h := g.frame.Buffer.Width, g.frame.Buffer.Height
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = ebiten.NewImage(w, h)
		g.dirty = true
	}
	if g.dirty {
		g.img.WritePixels(g.pixels)
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.frame.Scale), float64(g.frame.Scale))
	screen.DrawImage(g.img, op)

	if g.overlay {
		ebitenutil.DebugPrintAt(screen, g.frame.Effect.String(), 6, 4)
		g.drawProgressBar(screen)
	}
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	if g.autoAdvance <= 0 {
		return
	}

	barHeight := 6
	barY := displayHeight - 26
	barWidth := displayWidth - 16
	barX := 8

	progress := clamp01(float64(g.elapsed) / float64(g.autoAdvance))

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), 1, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	if progress > 0 {
		fillWidth := progress * float64(barWidth)
		hue := (g.colorPhase + progress/2) * 360
		r, gr, b := colorful.Hsv(wrapHue(hue), 0.8, 0.9).RGB255()
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(fillWidth), float32(barHeight), color.RGBA{R: r, G: gr, B: b, A: 180}, false)
	}

	indicatorX := float64(barX) + progress*float64(barWidth)
	vector.DrawFilledCircle(screen, float32(indicatorX), float32(barY+barHeight/2), 4, color.RGBA{R: 255, G: 255, B: 255, A: 255}, false)

	elapsed := formatDuration(g.elapsed)
	total := formatDuration(g.autoAdvance)
	ebitenutil.DebugPrintAt(screen, elapsed, barX, barY+barHeight+2)
	ebitenutil.DebugPrintAt(screen, total, barX+barWidth-len(total)*6, barY+barHeight+2)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return displayWidth, displayHeight
}

// Run opens the window and blocks until it is closed or the pump fails.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(displayWidth*config.WindowScale, displayHeight*config.WindowScale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run window")
	}
	return nil
}
