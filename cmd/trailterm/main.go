// Command trailterm draws the cursor trail in a terminal with mouse reporting
// turned on. Move the mouse over the window; press q or Esc to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/trailfolio/internal/trail"
)

// cellRenderer paints one glyph per marker, dimming the color by opacity.
type cellRenderer struct {
	screen tcell.Screen
	colors [2]tcell.Color
}

func newCellRenderer(screen tcell.Screen, cfg trail.Config) *cellRenderer {
	return &cellRenderer{
		screen: screen,
		colors: [2]tcell.Color{tcell.GetColor(cfg.Colors[0]), tcell.GetColor(cfg.Colors[1])},
	}
}

func dim(c tcell.Color, opacity float64) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(
		int32(float64(r)*opacity),
		int32(float64(g)*opacity),
		int32(float64(b)*opacity),
	)
}

func (r *cellRenderer) Render(markers []trail.Marker) {
	r.screen.Clear()
	// tail first so the head ends up on top
	for i := len(markers) - 1; i >= 0; i-- {
		m := markers[i]
		x := int(math.Round(m.Left))
		y := int(math.Round(m.Top))
		style := tcell.StyleDefault.Foreground(dim(r.colors[i%2], m.Opacity))
		r.screen.SetContent(x, y, '●', nil, style)
	}
	r.drawStatus()
	r.screen.Show()
}

func (r *cellRenderer) drawStatus() {
	_, h := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, ch := range "q: quit" {
		r.screen.SetContent(i, h-1, ch, nil, style)
	}
}

func main() {
	cfg := trail.DefaultConfig()
	var fps int
	flag.IntVar(&cfg.Length, "length", cfg.Length, "Number of dots in the trail")
	flag.Float64Var(&cfg.MoveAlpha, "move-alpha", cfg.MoveAlpha, "Relaxation applied on mouse movement")
	flag.Float64Var(&cfg.TickAlpha, "tick-alpha", cfg.TickAlpha, "Relaxation applied every frame")
	flag.IntVar(&cfg.MinViewportWidth, "min-width", 40, "Disable the trail below this many columns")
	flag.IntVar(&fps, "fps", 60, "Frames per second")
	flag.Parse()

	// cells, not pixels: center each glyph on its dot
	cfg.Radius = 0
	if fps > 0 {
		cfg.FrameInterval = time.Second / time.Duration(fps)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid trail settings: %v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := trail.NewLoop(cfg.FrameInterval)
	width, _ := screen.Size()
	effect := trail.NewEffect(cfg, trail.NewChain(cfg), loop, newCellRenderer(screen, cfg), width)
	loop.Post(effect.Mount)

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventMouse:
				x, y := ev.Position()
				loop.Post(func() { effect.PointerMove(float64(x), float64(y)) })
			case *tcell.EventResize:
				screen.Sync()
				w, _ := ev.Size()
				loop.Post(func() { effect.Resize(w) })
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			}
		}
	}()

	loop.Run(ctx)
	effect.Unmount()
}
