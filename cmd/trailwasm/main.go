//go:build js && wasm

// Command trailwasm runs the page effects in the browser: the cursor trail,
// the scroll-progress bar and the theme toggle.
//
//	GOOS=js GOARCH=wasm go build -o static/trail.wasm ./cmd/trailwasm
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" static/
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"syscall/js"

	"github.com/Zachkp/trailfolio/internal/scroll"
	"github.com/Zachkp/trailfolio/internal/theme"
	"github.com/Zachkp/trailfolio/internal/trail"
)

var (
	window   = js.Global()
	document = js.Global().Get("document")
)

// frameScheduler drives ticks from requestAnimationFrame. The browser runs
// frame callbacks and input handlers on the same thread.
type frameScheduler struct{}

func (frameScheduler) Schedule(tick func()) (stop func()) {
	var id js.Value
	stopped := false

	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		if stopped {
			return nil
		}
		tick()
		id = window.Call("requestAnimationFrame", frame)
		return nil
	})
	id = window.Call("requestAnimationFrame", frame)

	return func() {
		if stopped {
			return
		}
		stopped = true
		window.Call("cancelAnimationFrame", id)
		frame.Release()
	}
}

// domRenderer positions one fixed div per marker. Elements are created on the
// first frame so nothing is added to the page while the effect is gated off.
type domRenderer struct {
	root  js.Value
	size  string
	marks []js.Value
}

func newDOMRenderer(root js.Value, cfg trail.Config) *domRenderer {
	if root.IsNull() {
		root = document.Get("body")
	}
	return &domRenderer{root: root, size: fmt.Sprintf("%gpx", cfg.Radius*2)}
}

func (r *domRenderer) ensure(n int) {
	for len(r.marks) < n {
		el := document.Call("createElement", "div")
		el.Set("className", "trail-dot")
		style := el.Get("style")
		style.Set("width", r.size)
		style.Set("height", r.size)
		r.root.Call("appendChild", el)
		r.marks = append(r.marks, el)
	}
}

func (r *domRenderer) Render(markers []trail.Marker) {
	if markers == nil {
		for _, el := range r.marks {
			el.Get("style").Set("display", "none")
		}
		return
	}

	r.ensure(len(markers))
	for i, m := range markers {
		style := r.marks[i].Get("style")
		style.Set("display", "block")
		style.Set("transform", fmt.Sprintf("translate(%.2fpx, %.2fpx)", m.Left, m.Top))
		style.Set("opacity", fmt.Sprintf("%.3f", m.Opacity))
		style.Set("background", m.Color)
	}
}

func loadConfig() trail.Config {
	cfg := trail.DefaultConfig()
	raw := document.Get("body").Get("dataset").Get("trail")
	if raw.Type() != js.TypeString {
		return cfg
	}
	if err := json.Unmarshal([]byte(raw.String()), &cfg); err != nil {
		log.Printf("Ignoring trail config: %v", err)
		return trail.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Ignoring trail config: %v", err)
		return trail.DefaultConfig()
	}
	return cfg
}

func updateProgress(bar js.Value) {
	if bar.IsNull() {
		return
	}
	p := scroll.Progress(
		window.Get("scrollY").Float(),
		document.Get("documentElement").Get("scrollHeight").Float(),
		window.Get("innerHeight").Float(),
	)
	bar.Get("style").Set("width", fmt.Sprintf("%.2f%%", p))
}

// toggleTheme flips the class on <html> right away and tells the server.
// A failed save only costs persistence.
func toggleTheme() {
	root := document.Get("documentElement")
	current, err := theme.Parse(root.Get("className").String())
	if err != nil {
		current = theme.Default
	}
	next := current.Toggle()
	root.Set("className", next.String())

	headers := map[string]any{"Content-Type": "application/x-www-form-urlencoded"}
	window.Call("fetch", "/theme", map[string]any{
		"method":      "POST",
		"headers":     headers,
		"body":        "theme=" + next.String(),
		"credentials": "same-origin",
	}).Call("catch", js.FuncOf(func(js.Value, []js.Value) any { return nil }))
}

func listen(target js.Value, event string, fn func(js.Value)) {
	target.Call("addEventListener", event, js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	}), map[string]any{"passive": true})
}

func main() {
	cfg := loadConfig()

	effect := trail.NewEffect(
		cfg,
		trail.NewChain(cfg),
		frameScheduler{},
		newDOMRenderer(document.Call("getElementById", "trail"), cfg),
		window.Get("innerWidth").Int(),
	)
	effect.Mount()

	bar := document.Call("getElementById", "scroll-progress")
	updateProgress(bar)

	listen(window, "mousemove", func(ev js.Value) {
		effect.PointerMove(ev.Get("clientX").Float(), ev.Get("clientY").Float())
	})
	listen(window, "scroll", func(js.Value) { updateProgress(bar) })
	listen(window, "resize", func(js.Value) {
		effect.Resize(window.Get("innerWidth").Int())
		updateProgress(bar)
	})
	listen(window, "pagehide", func(js.Value) { effect.Unmount() })

	if btn := document.Call("getElementById", "theme-toggle"); !btn.IsNull() {
		listen(btn, "click", func(js.Value) { toggleTheme() })
	}

	select {}
}
