package trail

// Scheduler repeatedly invokes tick at the platform's display cadence until
// the returned stop function is called. Stop is idempotent and no tick runs
// after it returns. Ticks must arrive on the same logical thread as pointer
// events.
type Scheduler interface {
	Schedule(tick func()) (stop func())
}

// Gate disables the effect on narrow viewports.
type Gate struct {
	MinWidth int
}

func (g Gate) Allows(width int) bool {
	return width >= g.MinWidth
}

// Effect ties a follower chain to its pointer source, redraw driver and
// renderer. The driver runs only while the effect is mounted and the viewport
// passes the gate.
type Effect struct {
	cfg      Config
	gate     Gate
	follower Follower
	sched    Scheduler
	renderer Renderer

	width   int
	mounted bool
	stop    func()
}

func NewEffect(cfg Config, follower Follower, sched Scheduler, renderer Renderer, width int) *Effect {
	return &Effect{
		cfg:      cfg,
		gate:     Gate{MinWidth: cfg.MinViewportWidth},
		follower: follower,
		sched:    sched,
		renderer: renderer,
		width:    width,
	}
}

func (e *Effect) Mount() {
	e.mounted = true
	e.sync()
}

// Unmount stops the driver. Safe to call repeatedly.
func (e *Effect) Unmount() {
	e.mounted = false
	e.sync()
}

// Resize re-evaluates the gate, so crossing the threshold mid-session turns
// the effect off or back on.
func (e *Effect) Resize(width int) {
	e.width = width
	e.sync()
}

func (e *Effect) Enabled() bool {
	return e.mounted && e.gate.Allows(e.width)
}

// Running reports whether the redraw driver is currently scheduled.
func (e *Effect) Running() bool {
	return e.stop != nil
}

func (e *Effect) PointerMove(x, y float64) {
	if !e.Enabled() {
		return
	}
	e.follower.OnPointerMove(x, y)
}

func (e *Effect) tick() {
	e.follower.OnTick()
	e.renderer.Render(Markers(e.follower.Dots(), e.cfg))
}

func (e *Effect) sync() {
	want := e.Enabled()
	switch {
	case want && e.stop == nil:
		e.stop = e.sched.Schedule(e.tick)
	case !want && e.stop != nil:
		e.stop()
		e.stop = nil
		// clear whatever the last frame left on screen
		e.renderer.Render(nil)
	}
}
