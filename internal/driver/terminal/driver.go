// Package terminal plays the game in a terminal through tcell. Mouse
// position steers the ship; the left button or space fires.
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/component"
	"github.com/topdown/shooter/internal/driver/viewport"
	"github.com/topdown/shooter/internal/game"
	"github.com/topdown/shooter/internal/input"
)

// Terminals report key presses but not releases. A key counts as held for
// this long after its last press or auto-repeat.
const keyHold = 150 * time.Millisecond

type Options struct {
	Interval       time.Duration
	MaxTicks       uint64
	ExitOnGameOver bool
}

type Driver struct {
	app    *game.App
	screen tcell.Screen
	opts   Options
	log    *zap.Logger

	grid      viewport.Grid
	mouseDown bool
	held      map[input.Key]time.Time
	now       func() time.Time

	flushErrors int
}

// New wraps an initialised screen. The caller owns screen and calls Fini.
func New(app *game.App, screen tcell.Screen, opts Options, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	d := &Driver{
		app:    app,
		screen: screen,
		opts:   opts,
		log:    log.With(zap.String("driver", "terminal")),
		held:   make(map[input.Key]time.Time),
		now:    time.Now,
	}
	d.resize()
	return d
}

// Run drives the game until the player quits, ctx is done, or a stop
// condition in Options is met.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.app.Startup(); err != nil {
		return err
	}
	d.screen.EnableMouse()
	defer d.screen.DisableMouse()
	d.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()
	d.log.Info("terminal loop started", zap.Int("cols", d.grid.Cols), zap.Int("rows", d.grid.Rows))
	defer func() {
		d.log.Info("terminal loop stopped", zap.Uint64("tick", d.app.Ticks()), zap.Int("flush_errors", d.flushErrors))
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.Handle(ev) {
				d.log.Info("player quit", zap.Uint64("tick", d.app.Ticks()))
				return nil
			}
		case <-ticker.C:
			d.releaseStaleKeys()
			if err := d.app.Tick(); err != nil {
				d.flushErrors++
			}
			d.Draw()
			if d.opts.MaxTicks > 0 && d.app.Ticks() >= d.opts.MaxTicks {
				return nil
			}
			if d.opts.ExitOnGameOver && d.app.Over() {
				return nil
			}
		}
	}
}

// Handle translates one terminal event into input samples. It returns
// false when the player asked to quit.
func (d *Driver) Handle(ev tcell.Event) bool {
	q := d.app.Input()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		}
		if k := keyOf(ev); k != input.KeyUnknown {
			if _, down := d.held[k]; !down {
				q.PushKey(k, input.Pressed)
			}
			d.held[k] = d.now()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if y < d.grid.Rows {
			p := d.grid.CellToWindow(x, y)
			q.PushCursor(p.X, p.Y)
		}
		down := ev.Buttons()&tcell.Button1 != 0
		if down != d.mouseDown {
			d.mouseDown = down
			if down {
				q.PushButton(input.MouseLeft, input.Pressed)
			} else {
				q.PushButton(input.MouseLeft, input.Released)
			}
		}
	case *tcell.EventResize:
		d.resize()
		d.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			d.releaseAll()
		}
	}
	return true
}

func keyOf(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return input.KeySpace
		case 'w':
			return input.KeyW
		case 'a':
			return input.KeyA
		case 's':
			return input.KeyS
		case 'd':
			return input.KeyD
		}
	}
	return input.KeyUnknown
}

func (d *Driver) releaseStaleKeys() {
	now := d.now()
	for k, at := range d.held {
		if now.Sub(at) >= keyHold {
			delete(d.held, k)
			d.app.Input().PushKey(k, input.Released)
		}
	}
}

func (d *Driver) releaseAll() {
	for k := range d.held {
		delete(d.held, k)
		d.app.Input().PushKey(k, input.Released)
	}
	if d.mouseDown {
		d.mouseDown = false
		d.app.Input().PushButton(input.MouseLeft, input.Released)
	}
}

// resize maps the world window onto every row but the status line.
func (d *Driver) resize() {
	w := d.app.Window()
	cols, rows := d.screen.Size()
	d.grid = viewport.Grid{
		Viewport: viewport.Viewport{Width: w.Width, Height: w.Height},
		Cols:     max(cols, 1),
		Rows:     max(rows-1, 1),
	}
}

var (
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBullet = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGhost  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleOver   = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true).Bold(true)
)

var arrows = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// arrowFor picks the glyph closest to a counter-clockwise rotation from +Y.
func arrowFor(rotation float64) rune {
	oct := int(math.Round(rotation/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	return arrows[oct]
}

// Draw renders the current world and the status line.
func (d *Driver) Draw() {
	d.screen.Clear()
	d.app.Drawables(func(e game.Drawable) {
		cx, cy, ok := d.grid.WorldToCell(e.Transform.Translation)
		if !ok {
			return
		}
		var (
			r     rune
			style tcell.Style
		)
		switch e.Sprite.Image {
		case component.ImagePlayer:
			r, style = arrowFor(e.Transform.Rotation), stylePlayer
		case component.ImageBullet:
			r, style = '•', styleBullet
		case component.ImageEnemy:
			r, style = 'O', styleEnemy
			if e.Hidden {
				r, style = '·', styleGhost
			}
		default:
			r, style = '?', tcell.StyleDefault
		}
		d.screen.SetContent(cx, cy, r, nil, style)
	})
	d.drawStatus()
	d.screen.Show()
}

func (d *Driver) drawStatus() {
	cols, rows := d.screen.Size()
	s := d.app.Session()
	c := d.app.Counts()
	line := fmt.Sprintf(" tick %d  kills %d  enemies %d  bullets %d ", d.app.Ticks(), s.Kills, c.Enemies, c.Bullets)
	style := styleStatus
	if s.Over {
		line = " GAME OVER " + line
		style = styleOver
	}
	text := []rune(line)
	y := rows - 1
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		d.screen.SetContent(x, y, r, nil, style)
	}
}
