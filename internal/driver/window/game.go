// Package window runs the game in a desktop window through ebiten. One
// simulation tick runs per rendered frame.
package window

import (
	"context"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/driver/viewport"
	"github.com/topdown/shooter/internal/game"
	"github.com/topdown/shooter/internal/input"
)

type Options struct {
	TPS            int    // frames (and ticks) per second
	MaxTicks       uint64 // 0 = until the window closes
	ExitOnGameOver bool
	Assets         fs.FS // optional image directory
}

// keymap lists the keys forwarded to the simulation.
var keymap = map[ebiten.Key]input.Key{
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
}

var mousemap = map[ebiten.MouseButton]input.MouseButton{
	ebiten.MouseButtonLeft:   input.MouseLeft,
	ebiten.MouseButtonRight:  input.MouseRight,
	ebiten.MouseButtonMiddle: input.MouseMiddle,
}

// Game implements ebiten.Game over a game.App.
type Game struct {
	ctx    context.Context
	app    *game.App
	opts   Options
	assets *Assets
	log    *zap.Logger

	cursorX, cursorY int
	hadFocus         bool
	flushErrors      int
}

func New(ctx context.Context, app *game.App, opts Options, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("driver", "window"))
	return &Game{
		ctx:      ctx,
		app:      app,
		opts:     opts,
		assets:   NewAssets(opts.Assets, log),
		log:      log,
		cursorX:  -1,
		cursorY:  -1,
		hadFocus: true,
	}
}

// Run opens the window and blocks until it closes or a stop condition hits.
func (g *Game) Run() error {
	if err := g.app.Startup(); err != nil {
		return err
	}
	w := g.app.Window()
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(int(w.Width), int(w.Height))
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	if g.opts.TPS > 0 {
		ebiten.SetTPS(g.opts.TPS)
	}
	g.log.Info("window opened", zap.String("title", w.Title), zap.Float64("width", w.Width), zap.Float64("height", w.Height))

	err := ebiten.RunGame(g)
	g.log.Info("window closed", zap.Uint64("tick", g.app.Ticks()), zap.Int("flush_errors", g.flushErrors))
	return err
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.capture()
	if err := g.app.Tick(); err != nil {
		g.flushErrors++
	}

	if g.opts.MaxTicks > 0 && g.app.Ticks() >= g.opts.MaxTicks {
		return ebiten.Termination
	}
	if g.opts.ExitOnGameOver && g.app.Over() {
		return ebiten.Termination
	}
	return nil
}

// capture forwards this frame's OS input to the simulation queue.
func (g *Game) capture() {
	q := g.app.Input()
	vp := g.viewport()

	// buttons released while unfocused never report a release
	focused := ebiten.IsFocused()
	if !focused && g.hadFocus {
		for _, b := range mousemap {
			q.PushButton(b, input.Released)
		}
		for _, k := range keymap {
			q.PushKey(k, input.Released)
		}
	}
	g.hadFocus = focused

	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		p := vp.ScreenToWindow(float64(x), float64(y))
		q.PushCursor(p.X, p.Y)
	}
	for eb, b := range mousemap {
		if inpututil.IsMouseButtonJustPressed(eb) {
			q.PushButton(b, input.Pressed)
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			q.PushButton(b, input.Released)
		}
	}
	for ek, k := range keymap {
		if inpututil.IsKeyJustPressed(ek) {
			q.PushKey(k, input.Pressed)
		}
		if inpututil.IsKeyJustReleased(ek) {
			q.PushKey(k, input.Released)
		}
	}
}

func (g *Game) viewport() viewport.Viewport {
	w := g.app.Window()
	return viewport.Viewport{Width: w.Width, Height: w.Height}
}

var background = color.RGBA{R: 16, G: 18, B: 28, A: 255}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	vp := g.viewport()

	g.app.Drawables(func(d game.Drawable) {
		img := g.assets.Load(d.Sprite.Image)
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(d.Sprite.Width/float64(b.Dx()), d.Sprite.Height/float64(b.Dy()))
		op.GeoM.Rotate(viewport.ScreenAngle(d.Transform.Rotation))
		x, y := vp.WorldToScreen(d.Transform.Translation)
		op.GeoM.Translate(x, y)
		if d.Hidden {
			op.ColorScale.ScaleAlpha(0.35)
		}
		screen.DrawImage(img, op)
	})

	s := g.app.Session()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("kills %d", s.Kills))
	if s.Over {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", int(vp.Width)/2-27, int(vp.Height)/2-8)
	}
}

// Layout reports the logical screen size. A resizable window resizes the
// world with it unless the new size is too small to place enemies.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.app.Window()
	if w.Resizable && outsideWidth > 0 && outsideHeight > 0 {
		if err := g.app.Resize(float64(outsideWidth), float64(outsideHeight)); err == nil {
			return outsideWidth, outsideHeight
		}
	}
	return int(w.Width), int(w.Height)
}

var _ ebiten.Game = (*Game)(nil)
